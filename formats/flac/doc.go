// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC audio file decoding.
//
// This package uses github.com/mewkiz/flac to decode FLAC files. FLAC is a
// free lossless audio compression format, common for masters and archival
// copies, which is exactly the material mix analysis is usually run on.
//
// # Decoding FLAC Files
//
// Use the Decoder to read FLAC files:
//
//	decoder := flac.Decoder{}
//	file, _ := os.Open("mix.flac")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	// Read samples as float32 in range [-1.0, 1.0]
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// The decoder returns an audio.Source providing interleaved float32
// samples normalized to [-1.0, 1.0], regardless of the stored bit depth
// (8 to 32 bits per sample are supported).
//
// # Channel Layout
//
// For stereo files, samples are interleaved:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// To convert to mono:
//
//	flacSource, _ := decoder.Decode(file)
//	mono := audio.NewMonoMixer(flacSource)
//
// # Limitations
//
// Note:
//   - FLAC encoding is not supported (decoding only)
//   - Reading is frame-based (whole FLAC frames are decoded at once and
//     buffered between ReadSamples calls)
package flac
