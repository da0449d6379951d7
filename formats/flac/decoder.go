// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/ik5/mixprobe/audio"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

// flacStream is an interface for flac.Stream to allow testing
type flacStream interface {
	ParseNext() (*frame.Frame, error)
}

type source struct {
	stream     flacStream
	sampleRate int
	channels   int
	scale      float32

	// interleaved samples decoded from the last FLAC frame but not yet
	// delivered to the caller
	pending []float32
	offset  int
	eof     bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int {
	if cap(s.pending) > 0 {
		return cap(s.pending)
	}
	return 4096
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	written := 0
	for written < len(dst) {
		if s.offset >= len(s.pending) {
			if err := s.decodeFrame(); err != nil {
				if err == io.EOF {
					if written == 0 {
						return 0, io.EOF
					}
					return written, io.EOF
				}
				return written, fmt.Errorf("%w", err)
			}
		}

		n := copy(dst[written:], s.pending[s.offset:])
		s.offset += n
		written += n
	}

	return written, nil
}

// decodeFrame parses the next FLAC frame and interleaves its per-channel
// subframes into the pending buffer.
func (s *source) decodeFrame() error {
	if s.eof {
		return io.EOF
	}

	f, err := s.stream.ParseNext()
	if err == io.EOF {
		s.eof = true
		return io.EOF
	}
	if err != nil {
		return err
	}

	if len(f.Subframes) == 0 {
		return ErrMissingSubframes
	}

	blockSize := len(f.Subframes[0].Samples)
	needed := blockSize * s.channels
	if cap(s.pending) < needed {
		s.pending = make([]float32, needed)
	}
	s.pending = s.pending[:needed]
	s.offset = 0

	for ch := 0; ch < s.channels && ch < len(f.Subframes); ch++ {
		samples := f.Subframes[ch].Samples
		for i, v := range samples {
			s.pending[i*s.channels+ch] = float32(v) * s.scale
		}
	}

	return nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	info := stream.Info
	if info == nil {
		return nil, ErrMissingStreamInfo
	}

	bps := int(info.BitsPerSample)
	if bps < 4 || bps > 32 {
		return nil, ErrUnsupportedBitDepth
	}

	return &source{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		scale:      1.0 / float32(int64(1)<<(bps-1)),
	}, nil
}
