// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrMissingStreamInfo   = errors.New("flac stream has no StreamInfo block")
	ErrMissingSubframes    = errors.New("flac frame has no subframes")
	ErrUnsupportedBitDepth = errors.New("unsupported flac bit depth")
)
