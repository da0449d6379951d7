// SPDX-License-Identifier: EPL-2.0

package features

import (
	"math"
	"testing"
)

func TestMelScaleRoundTrip(t *testing.T) {
	t.Parallel()

	for _, f := range []float64{0, 100, 440, 1000, 8000, 11025} {
		back := melToHz(hzToMel(f))
		if math.Abs(back-f) > 1e-6 {
			t.Errorf("melToHz(hzToMel(%v)) = %v, want %v", f, back, f)
		}
	}

	if hzToMel(1000) <= hzToMel(100) {
		t.Error("mel scale is not monotonically increasing")
	}
}

func TestMelFilterbank(t *testing.T) {
	t.Parallel()

	bins := FrameSize/2 + 1
	filters := melFilterbank(bins, 22050)

	if len(filters) != numMelFilters {
		t.Fatalf("melFilterbank() returned %d filters, want %d", len(filters), numMelFilters)
	}

	for m, row := range filters {
		if len(row) != bins {
			t.Fatalf("filter %d has %d bins, want %d", m, len(row), bins)
		}

		nonzero := false
		for k, w := range row {
			if w < 0 || w > 1 {
				t.Fatalf("filter %d bin %d weight = %v, want in [0,1]", m, k, w)
			}
			if w > 0 {
				nonzero = true
			}
		}
		if !nonzero {
			t.Errorf("filter %d has no nonzero weights", m)
		}
	}
}

func TestFirstMFCCMean_Empty(t *testing.T) {
	t.Parallel()

	if got := firstMFCCMean(nil, 22050); got != 0 {
		t.Errorf("firstMFCCMean(nil) = %v, want 0", got)
	}
}

func TestFirstMFCCMean_SilenceHitsLogFloor(t *testing.T) {
	t.Parallel()

	power := make([][]float64, 8)
	for i := range power {
		power[i] = make([]float64, FrameSize/2+1)
	}

	// Every filter energy clamps to the log floor, so c0 is exactly
	// sqrt(numMelFilters) * ln(logFloor).
	want := math.Sqrt(float64(numMelFilters)) * math.Log(logFloor)

	got := firstMFCCMean(power, 22050)
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("firstMFCCMean(silence) = %v, want %v", got, want)
	}
}

func TestFirstMFCCMean_MoreEnergyRaisesCoefficient(t *testing.T) {
	t.Parallel()

	quiet := make([][]float64, 4)
	loud := make([][]float64, 4)
	for i := range quiet {
		quiet[i] = make([]float64, FrameSize/2+1)
		loud[i] = make([]float64, FrameSize/2+1)
		for k := range loud[i] {
			quiet[i][k] = 1e-4
			loud[i][k] = 1.0
		}
	}

	q := firstMFCCMean(quiet, 22050)
	l := firstMFCCMean(loud, 22050)
	if l <= q {
		t.Errorf("firstMFCCMean(loud) = %v <= firstMFCCMean(quiet) = %v, want higher", l, q)
	}
}
