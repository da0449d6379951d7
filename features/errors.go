// SPDX-License-Identifier: EPL-2.0

package features

import "errors"

var (
	// ErrInsufficientAudio reports input too short or degenerate to analyze.
	// Callers may surface it to the user (reject the upload); it describes
	// the input, not a fault in the pipeline.
	ErrInsufficientAudio = errors.New("insufficient audio to analyze")

	// ErrNonFiniteSamples reports NaN or Inf samples in the buffer. Decoders
	// must only emit finite values, so this indicates an upstream bug and
	// should be treated as an internal error.
	ErrNonFiniteSamples = errors.New("buffer contains non-finite samples")
)
