// SPDX-License-Identifier: EPL-2.0

package features

import "math"

const (
	numMelFilters = 40
	melFMin       = 0.0

	// logFloor keeps the log of near-silent mel energies bounded.
	logFloor = 1e-10
)

// hzToMel and melToHz use the O'Shaughnessy formulation (700 Hz break
// frequency), the common convention for MFCC front ends.
func hzToMel(f float64) float64 {
	return 1127.0 * math.Log(1.0+f/700.0)
}

func melToHz(m float64) float64 {
	return 700.0 * (math.Exp(m/1127.0) - 1.0)
}

// melFilterbank builds numMelFilters triangular filters over bins
// [0, FrameSize/2], equally spaced on the mel scale between melFMin and
// Nyquist. filters[m][k] is the weight of bin k in filter m.
func melFilterbank(bins, sampleRate int) [][]float64 {
	nyquist := float64(sampleRate) / 2
	melLo := hzToMel(melFMin)
	melHi := hzToMel(nyquist)

	// numMelFilters triangles need numMelFilters+2 edge points.
	edges := make([]float64, numMelFilters+2)
	for i := range edges {
		mel := melLo + (melHi-melLo)*float64(i)/float64(numMelFilters+1)
		edges[i] = melToHz(mel) * FrameSize / float64(sampleRate)
	}

	filters := make([][]float64, numMelFilters)
	for m := 0; m < numMelFilters; m++ {
		row := make([]float64, bins)
		left, center, right := edges[m], edges[m+1], edges[m+2]

		for k := 0; k < bins; k++ {
			fk := float64(k)
			switch {
			case fk <= left || fk >= right:
				// outside the triangle
			case fk <= center:
				if center > left {
					row[k] = (fk - left) / (center - left)
				}
			default:
				if right > center {
					row[k] = (right - fk) / (right - center)
				}
			}
		}
		filters[m] = row
	}

	return filters
}

// firstMFCCMean computes the mean of the first mel-frequency cepstral
// coefficient across frames: mel-filtered log power followed by an
// orthonormal DCT-II. Only coefficient zero feeds the feature vector, so
// higher coefficients are never materialized.
func firstMFCCMean(power [][]float64, sampleRate int) float64 {
	if len(power) == 0 {
		return 0
	}

	filters := melFilterbank(len(power[0]), sampleRate)
	scale := math.Sqrt(1.0 / float64(numMelFilters))

	var sum float64
	for _, frame := range power {
		var c0 float64
		for _, filter := range filters {
			var energy float64
			for k, w := range filter {
				if w != 0 {
					energy += w * frame[k]
				}
			}
			if energy < logFloor {
				energy = logFloor
			}
			c0 += math.Log(energy)
		}
		sum += c0 * scale
	}

	return sum / float64(len(power))
}
