// SPDX-License-Identifier: EPL-2.0

package features

import "math"

// chromaFMin is the lowest frequency folded into the chroma vector (A0).
// Bins below it are dominated by DC and rumble, not pitch.
const chromaFMin = 27.5

// chromaEnergyMin is the total chroma energy below which no key is reported.
const chromaEnergyMin = 1e-9

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Krumhansl-Kessler key profiles: perceived stability of each pitch class
// relative to the tonic, for major and minor modes.
var (
	majorProfile = [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorProfile = [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

// chromaVector folds spectral energy onto the 12 pitch classes, summed over
// all frames. Bin frequencies map to pitch classes through the equal
// tempered scale referenced to A4 = 440 Hz.
func chromaVector(mag [][]float64, sampleRate int) [12]float64 {
	var chroma [12]float64
	nyquist := float64(sampleRate) / 2

	for _, frame := range mag {
		for k, m := range frame {
			f := binFreq(k, sampleRate)
			if f < chromaFMin || f >= nyquist {
				continue
			}
			midi := math.Round(12*math.Log2(f/440.0) + 69)
			pc := ((int(midi) % 12) + 12) % 12
			chroma[pc] += m * m
		}
	}

	return chroma
}

// estimateKey correlates the chroma vector against the 24 rotated key
// profiles and returns the best match, e.g. "A minor". Ties prefer the
// major mode. Near-zero chroma energy (silence, unpitched noise floors)
// returns KeyUnknown.
func estimateKey(chroma [12]float64) string {
	var total float64
	for _, c := range chroma {
		total += c
	}
	if total < chromaEnergyMin {
		return KeyUnknown
	}

	bestKey := KeyUnknown
	bestScore := math.Inf(-1)

	// Majors first so equal scores resolve to the major mode.
	for tonic := 0; tonic < 12; tonic++ {
		if score := profileCorrelation(chroma, majorProfile, tonic); score > bestScore {
			bestScore = score
			bestKey = noteNames[tonic] + " major"
		}
	}
	for tonic := 0; tonic < 12; tonic++ {
		if score := profileCorrelation(chroma, minorProfile, tonic); score > bestScore {
			bestScore = score
			bestKey = noteNames[tonic] + " minor"
		}
	}

	return bestKey
}

// profileCorrelation is the Pearson correlation between the chroma vector
// and a key profile rotated so the profile's tonic sits at pitch class
// tonic.
func profileCorrelation(chroma [12]float64, profile [12]float64, tonic int) float64 {
	var meanC, meanP float64
	for i := 0; i < 12; i++ {
		meanC += chroma[i]
		meanP += profile[i]
	}
	meanC /= 12
	meanP /= 12

	var num, varC, varP float64
	for i := 0; i < 12; i++ {
		dc := chroma[i] - meanC
		dp := profile[(i-tonic+12)%12] - meanP
		num += dc * dp
		varC += dc * dc
		varP += dp * dp
	}

	denom := math.Sqrt(varC * varP)
	if denom < eps {
		return 0
	}
	return num / denom
}
