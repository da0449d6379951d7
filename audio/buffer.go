// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Buffer holds fully decoded PCM audio: interleaved float64 samples in
// [-1, 1], the sample rate in Hz, and the channel count. It is the input
// contract of the analysis pipeline: the pipeline only reads it and keeps
// no reference once analysis returns.
//
// A Buffer must be non-empty with Channels >= 1; callers constructing one
// directly own that invariant. Buffers produced by Capture always satisfy it.
type Buffer struct {
	Samples    []float64
	SampleRate int
	Channels   int
}

// Frames returns the number of per-channel sample frames in the buffer.
func (b *Buffer) Frames() int {
	if b.Channels <= 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// Mono returns the buffer as a single channel, averaging channels per frame.
// Mono input returns the sample slice itself without copying; multi-channel
// input allocates a new slice.
func (b *Buffer) Mono() []float64 {
	if b.Channels <= 1 {
		return b.Samples
	}

	frames := b.Frames()
	out := make([]float64, frames)
	inv := 1.0 / float64(b.Channels)

	for f := 0; f < frames; f++ {
		sum := float64(0)
		base := f * b.Channels
		for c := 0; c < b.Channels; c++ {
			sum += b.Samples[base+c]
		}
		out[f] = sum * inv
	}

	return out
}

// Capture drains src to completion and collects everything into a Buffer.
// bufferSize controls the read chunk size (4096 is a good default; values
// <= 0 fall back to it).
//
// Capture is the bridge between the streaming decoder layer and the
// whole-track analysis functions, which need the complete signal at once.
func Capture(src Source, bufferSize int) (*Buffer, error) {
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	out := &Buffer{
		SampleRate: src.SampleRate(),
		Channels:   src.Channels(),
	}
	buf := make([]float32, bufferSize)

	for {
		n, err := src.ReadSamples(buf)
		for i := 0; i < n; i++ {
			out.Samples = append(out.Samples, float64(buf[i]))
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	if len(out.Samples) == 0 {
		return nil, ErrEmptySource
	}

	return out, nil
}
