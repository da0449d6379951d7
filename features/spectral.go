// SPDX-License-Identifier: EPL-2.0

package features

import (
	"math"
	"sort"

	"github.com/r9y9/gossp"
	"github.com/r9y9/gossp/stft"
)

const (
	// rolloffPercentile is the fraction of per-frame magnitude energy below
	// the reported rolloff frequency.
	rolloffPercentile = 0.85

	contrastBands    = 6
	contrastFMin     = 200.0
	contrastQuantile = 0.02
)

// magnitudeSpectrogram computes the short-time magnitude spectrum of a mono
// signal using FrameSize/HopLength framing with a Hann window. Each frame
// keeps the FrameSize/2+1 non-redundant bins.
func magnitudeSpectrogram(samples []float64) [][]float64 {
	s := stft.New(HopLength, FrameSize)
	amplitude, _ := gossp.SplitSpectrogram(s.STFT(samples))

	half := FrameSize/2 + 1
	for i := range amplitude {
		amplitude[i] = amplitude[i][:half]
	}

	return amplitude
}

// powerSpectrogram squares a magnitude spectrogram in place-compatible copy.
func powerSpectrogram(mag [][]float64) [][]float64 {
	power := make([][]float64, len(mag))
	for i, frame := range mag {
		row := make([]float64, len(frame))
		for k, m := range frame {
			row[k] = m * m
		}
		power[i] = row
	}
	return power
}

// binFreq maps an STFT bin index to its center frequency in Hz.
func binFreq(k, sampleRate int) float64 {
	return float64(k) * float64(sampleRate) / FrameSize
}

// spectralMeans reduces the framewise centroid, rolloff and bandwidth to
// single scalars by averaging across frames. Silent frames contribute zero,
// so a fully silent signal reports 0 for all three.
func spectralMeans(mag [][]float64, sampleRate int) (centroid, rolloffPct, bandwidth float64) {
	if len(mag) == 0 {
		return 0, 0, 0
	}

	nyquist := float64(sampleRate) / 2
	var cSum, rSum, bSum float64

	for _, frame := range mag {
		var total float64
		for _, m := range frame {
			total += m
		}
		if total < eps {
			continue
		}

		// Energy-weighted mean frequency.
		var c float64
		for k, m := range frame {
			c += binFreq(k, sampleRate) * m
		}
		c /= total

		// Frequency below which rolloffPercentile of the energy lies.
		target := rolloffPercentile * total
		rolloffHz := nyquist
		var cum float64
		for k, m := range frame {
			cum += m
			if cum >= target {
				rolloffHz = binFreq(k, sampleRate)
				break
			}
		}

		// Energy-weighted spread around the centroid.
		var b float64
		for k, m := range frame {
			d := binFreq(k, sampleRate) - c
			b += m * d * d
		}
		b = math.Sqrt(b / total)

		cSum += c
		rSum += rolloffHz / nyquist * 100
		bSum += b
	}

	n := float64(len(mag))
	return cSum / n, rSum / n, bSum / n
}

// spectralContrast measures the mean dB gap between spectral peaks and
// valleys across contrastBands octave-spaced sub-bands starting at
// contrastFMin. Peaks and valleys are the top and bottom contrastQuantile
// of bins within a band.
func spectralContrast(mag [][]float64, sampleRate int) float64 {
	if len(mag) == 0 {
		return 0
	}

	// Octave band edges, clamped to the available spectrum.
	nyquist := float64(sampleRate) / 2
	type band struct{ lo, hi int }
	var bands []band

	edge := contrastFMin
	for _b := 0; _b < contrastBands; _b++ {
		next := edge * 2
		if next > nyquist {
			next = nyquist
		}
		lo := int(edge * FrameSize / float64(sampleRate))
		hi := int(next * FrameSize / float64(sampleRate))
		if hi > len(mag[0]) {
			hi = len(mag[0])
		}
		if hi-lo >= 2 {
			bands = append(bands, band{lo, hi})
		}
		edge = next
	}

	if len(bands) == 0 {
		return 0
	}

	var sum float64
	var count int
	scratch := make([]float64, 0, len(mag[0]))

	for _, frame := range mag {
		for _, bd := range bands {
			scratch = scratch[:0]
			scratch = append(scratch, frame[bd.lo:bd.hi]...)
			sort.Float64s(scratch)

			q := int(contrastQuantile * float64(len(scratch)))
			if q < 1 {
				q = 1
			}

			var valley, peak float64
			for i := 0; i < q; i++ {
				valley += scratch[i]
				peak += scratch[len(scratch)-1-i]
			}
			valley /= float64(q)
			peak /= float64(q)

			sum += 20 * math.Log10((peak+eps)/(valley+eps))
			count++
		}
	}

	return sum / float64(count)
}

// zeroCrossingRate is the mean per-frame fraction of adjacent samples that
// change sign. Zero samples count as non-negative, so silence reports 0.
func zeroCrossingRate(samples []float64) float64 {
	var sum float64
	var frames int

	for start := 0; start+FrameSize <= len(samples); start += HopLength {
		frame := samples[start : start+FrameSize]
		var crossings int
		for i := 1; i < len(frame); i++ {
			if (frame[i-1] >= 0) != (frame[i] >= 0) {
				crossings++
			}
		}
		sum += float64(crossings) / float64(len(frame)-1)
		frames++
	}

	if frames == 0 {
		return 0
	}
	return sum / float64(frames)
}

// rmsDB is the mean framewise RMS amplitude converted to dBFS, floored at
// DBFloor for silence.
func rmsDB(samples []float64) float64 {
	var sum float64
	var frames int

	for start := 0; start+FrameSize <= len(samples); start += HopLength {
		var energy float64
		for _, s := range samples[start : start+FrameSize] {
			energy += s * s
		}
		sum += math.Sqrt(energy / FrameSize)
		frames++
	}

	if frames == 0 {
		return DBFloor
	}
	return ampToDB(sum / float64(frames))
}

// peakDB is the absolute peak amplitude in dBFS, floored at DBFloor.
func peakDB(samples []float64) float64 {
	var peak float64
	for _, s := range samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	return ampToDB(peak)
}

// ampToDB converts a linear amplitude to dBFS, clamping to DBFloor so a
// zero amplitude never produces -Inf.
func ampToDB(a float64) float64 {
	if a <= 0 {
		return DBFloor
	}
	db := 20 * math.Log10(a)
	if db < DBFloor {
		return DBFloor
	}
	return db
}
