// SPDX-License-Identifier: EPL-2.0

package features

import "sort"

// hpssKernel is the median filter length used for harmonic/percussive
// enhancement, in frames (time direction) and bins (frequency direction).
const hpssKernel = 17

// harmonicPercussiveRatios separates the power spectrogram into harmonic
// (sustained, stable across time) and percussive (broadband, stable across
// frequency) energy using median-filter enhancement and soft masks. The two
// ratios always sum to 1; a spectrogram with no energy splits evenly.
func harmonicPercussiveRatios(power [][]float64) (harmonic, percussive float64) {
	if len(power) == 0 || len(power[0]) == 0 {
		return 0.5, 0.5
	}

	frames := len(power)
	bins := len(power[0])
	half := hpssKernel / 2

	var energyH, energyP float64
	window := make([]float64, 0, hpssKernel)

	for t := 0; t < frames; t++ {
		for k := 0; k < bins; k++ {
			// Harmonic enhancement: median across time at fixed frequency.
			window = window[:0]
			for dt := -half; dt <= half; dt++ {
				if t+dt >= 0 && t+dt < frames {
					window = append(window, power[t+dt][k])
				}
			}
			h := median(window)

			// Percussive enhancement: median across frequency within a frame.
			window = window[:0]
			for dk := -half; dk <= half; dk++ {
				if k+dk >= 0 && k+dk < bins {
					window = append(window, power[t][k+dk])
				}
			}
			p := median(window)

			// Soft Wiener-style mask from the squared enhanced estimates.
			h2 := h * h
			p2 := p * p
			if h2+p2 < eps {
				continue
			}
			maskH := h2 / (h2 + p2)

			energyH += power[t][k] * maskH
			energyP += power[t][k] * (1 - maskH)
		}
	}

	total := energyH + energyP
	if total < eps {
		return 0.5, 0.5
	}

	return energyH / total, energyP / total
}

// median sorts the window in place. Window sizes are at most hpssKernel.
func median(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}
	sort.Float64s(window)
	return window[len(window)/2]
}
