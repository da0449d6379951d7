// SPDX-License-Identifier: EPL-2.0

// Package features converts decoded audio into a fixed vector of acoustic
// metrics describing the production quality of a mix.
//
// The single entry point is Extract:
//
//	vec, err := features.Extract(buf)
//	if err != nil {
//	    // errors.Is(err, features.ErrInsufficientAudio): input too short
//	    // errors.Is(err, features.ErrNonFiniteSamples):  decoder bug upstream
//	}
//
// Extract is a pure function: no internal state survives a call, no I/O is
// performed, and identical buffers produce identical vectors. Multiple
// extractions may run concurrently on independent buffers without
// synchronization.
//
// # Metrics
//
// The 13 fields of FeatureVector cover loudness (rms_db, lufs_approx,
// dynamic_range_db), spectral shape (centroid, rolloff, bandwidth,
// contrast, zero-crossing rate, first MFCC), musical structure (tempo_bpm,
// estimated_key) and the harmonic/percussive energy split.
//
// # Reproducibility
//
// All frame-based statistics use the exported FrameSize and HopLength
// constants. They are part of the contract, not tuning details: two builds
// with the same constants produce bit-identical vectors for the same input.
//
// # Degenerate input
//
// Silence above the minimum length is a valid input, not an error. It maps
// to defined sentinels: DBFloor for the loudness fields, KeyUnknown for the
// key, DefaultTempoBPM for the tempo, zero for rates and spectral means,
// and an even harmonic/percussive split so the two ratios still sum to 1.
// No field of a successfully extracted vector is ever NaN or Inf.
package features
