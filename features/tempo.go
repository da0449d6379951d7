// SPDX-License-Identifier: EPL-2.0

package features

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// Tempo search window in BPM. Estimates outside it are folded back onto the
// best autocorrelation lag inside the window.
const (
	minTempoBPM = 30.0
	maxTempoBPM = 300.0
)

// onsetEnvelope derives an onset-strength signal from the magnitude
// spectrogram: the half-wave rectified spectral flux between consecutive
// frames. One value per frame transition.
func onsetEnvelope(mag [][]float64) []float64 {
	if len(mag) < 2 {
		return nil
	}

	env := make([]float64, len(mag)-1)
	for t := 1; t < len(mag); t++ {
		var flux float64
		prev := mag[t-1]
		for k, m := range mag[t] {
			if d := m - prev[k]; d > 0 {
				flux += d
			}
		}
		env[t-1] = flux
	}

	return env
}

// estimateTempo picks the BPM whose beat period maximizes the
// autocorrelation of the onset envelope. Silence or an envelope with no
// onset structure yields DefaultTempoBPM, a low-confidence best estimate,
// never an error.
func estimateTempo(env []float64, sampleRate int) float64 {
	if len(env) < 4 {
		return DefaultTempoBPM
	}

	var mean, peak float64
	for _, e := range env {
		mean += e
		if e > peak {
			peak = e
		}
	}
	mean /= float64(len(env))
	if peak < 1e-8 {
		return DefaultTempoBPM
	}

	frameRate := float64(sampleRate) / HopLength
	minLag := int(math.Ceil(frameRate * 60.0 / maxTempoBPM))
	maxLag := int(math.Floor(frameRate * 60.0 / minTempoBPM))
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(env) {
		maxLag = len(env) - 1
	}
	if maxLag <= minLag {
		return DefaultTempoBPM
	}

	acf := autocorrelate(env, mean)

	// When the beat period is not an integer number of frames, the
	// correlation mass of adjacent beats smears across two neighboring
	// lags while the two-beat lag stays sharp, so a raw argmax can land
	// an octave low. Score each lag over a 3-wide window, then take the
	// SMALLEST lag whose score is near the maximum; multiples of the true
	// period never beat the period itself under that rule.
	score := func(lag int) float64 {
		s := acf[lag]
		if lag-1 >= 0 {
			s += acf[lag-1]
		}
		if lag+1 < len(acf) {
			s += acf[lag+1]
		}
		return s
	}

	smax := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		if s := score(lag); s > smax {
			smax = s
		}
	}
	if smax <= 0 {
		return DefaultTempoBPM
	}

	bestLag := 0
	for lag := minLag; lag <= maxLag; lag++ {
		if score(lag) >= 0.9*smax {
			bestLag = lag
			break
		}
	}
	if bestLag == 0 {
		return DefaultTempoBPM
	}

	// Refine within the smeared pair: pick the strongest raw lag among
	// the immediate neighbors of the winning window.
	refined := bestLag
	for lag := bestLag - 1; lag <= bestLag+1; lag++ {
		if lag < minLag || lag > maxLag {
			continue
		}
		if acf[lag] > acf[refined] {
			refined = lag
		}
	}

	return 60.0 * frameRate / float64(refined)
}

// autocorrelate computes the autocorrelation of env (mean removed) via the
// Wiener-Khinchin theorem: FFT, power spectrum, inverse FFT.
func autocorrelate(env []float64, mean float64) []float64 {
	n := nextPow2(2 * len(env))
	padded := make([]float64, n)
	for i, e := range env {
		padded[i] = e - mean
	}

	spectrum := fft.FFTReal(padded)
	power := make([]complex128, len(spectrum))
	for i, c := range spectrum {
		re := real(c)
		im := imag(c)
		power[i] = complex(re*re+im*im, 0)
	}

	inv := fft.IFFT(power)
	acf := make([]float64, len(env))
	for i := range acf {
		acf[i] = real(inv[i])
	}

	return acf
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
