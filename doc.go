// SPDX-License-Identifier: EPL-2.0

// Package mixprobe analyzes recorded audio and produces an objective
// assessment of its production quality: a fixed vector of acoustic metrics
// plus human-readable improvement suggestions derived from them.
//
// # Pipeline
//
// Analysis flows through two pure stages. The feature extraction engine
// (package features) turns decoded PCM into 13 named metrics: tempo,
// estimated key, loudness and dynamic range, spectral shape statistics and
// the harmonic/percussive energy split. The suggestion engine (package
// suggest) evaluates a declarative rule table against that vector and
// returns categorized, severity-tagged feedback. This package assembles
// both into a Result.
//
// # Quick Start
//
// The simplest way to analyze a file is AnalyzeSource:
//
//	// Decode an audio file
//	decoder := wav.Decoder{}
//	file, _ := os.Open("mix.wav")
//	src, _ := decoder.Decode(file)
//
//	// Normalize to mono at the analysis rate and analyze
//	result, err := mixprobe.AnalyzeSource(src, 4096)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(result.Features.TempoBPM, result.Features.EstimatedKey)
//	for _, s := range result.Suggestions {
//	    fmt.Printf("[%s] %s\n", s.Category, s.Message)
//	}
//
// # Supported Formats
//
// The decoder layer supports the following inputs:
//   - WAV (PCM 16-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM 16-bit) via formats/aiff
//   - FLAC via formats/flac
//
// All decoders return an audio.Source; audio.Capture collects a Source into
// the audio.Buffer the pipeline consumes. Callers with already-decoded PCM
// can build a Buffer directly and call Analyze.
//
// # Determinism and Concurrency
//
// Both pipeline stages are pure functions with no shared mutable state:
// identical input yields an identical Result, and independent analyses may
// run concurrently without synchronization. Errors split into two kinds:
// features.ErrInsufficientAudio describes unusable input (reject it to the
// user), while features.ErrNonFiniteSamples signals an upstream decoder bug
// (surface it as an internal fault).
//
// See the individual subpackages for more detailed documentation.
package mixprobe
