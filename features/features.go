// SPDX-License-Identifier: EPL-2.0

package features

import (
	"fmt"
	"math"

	"github.com/ik5/mixprobe/audio"
)

// Analysis constants. Frame-based statistics depend directly on these
// values, so they are part of the numeric contract: changing FrameSize or
// HopLength changes every spectral field of the vector.
const (
	// FrameSize is the STFT window length in samples.
	FrameSize = 2048
	// HopLength is the hop between consecutive analysis frames in samples.
	HopLength = 512
	// DBFloor is the decibel value substituted for a silent signal instead
	// of -Inf.
	DBFloor = -96.0
	// MinDuration is the shortest buffer Extract accepts, in seconds.
	MinDuration = 0.5
	// DefaultTempoBPM is reported when the signal has no usable onset
	// structure (silence, pure tones).
	DefaultTempoBPM = 120.0
	// KeyUnknown is reported when chroma energy is too low to estimate a key.
	KeyUnknown = "unknown"

	// lufsOffset is the fixed calibration applied to RMS dB for the LUFS
	// approximation. Not a BS.1770 meter.
	lufsOffset = -23.0

	eps = 1e-10
)

// FeatureVector is the fixed 13-field result of feature extraction. All
// fields are finite for any accepted input; ratios lie in [0, 1] and
// percentages in [0, 100]. The JSON names are the contract consumed by
// storage and presentation layers.
type FeatureVector struct {
	TempoBPM            float64 `json:"tempo_bpm"`
	EstimatedKey        string  `json:"estimated_key"`
	RMSDB               float64 `json:"rms_db"`
	LUFSApprox          float64 `json:"lufs_approx"`
	SpectralCentroidHz  float64 `json:"spectral_centroid_hz"`
	SpectralRolloffPct  float64 `json:"spectral_rolloff_pct"`
	ZeroCrossingRate    float64 `json:"zero_crossing_rate"`
	SpectralBandwidthHz float64 `json:"spectral_bandwidth_hz"`
	DynamicRangeDB      float64 `json:"dynamic_range_db"`
	SpectralContrast    float64 `json:"spectral_contrast"`
	MFCCMean            float64 `json:"mfcc_mean"`
	HarmonicRatio       float64 `json:"harmonic_ratio"`
	PercussiveRatio     float64 `json:"percussive_ratio"`
}

// Extract computes the full feature vector from a decoded buffer.
//
// Extract is deterministic and side-effect free: the same buffer always
// yields the same vector, and concurrent calls on independent buffers need
// no synchronization.
//
// It fails with ErrInsufficientAudio when the buffer is empty, shorter than
// MinDuration, or holds fewer than FrameSize mono frames, and with
// ErrNonFiniteSamples when any sample is NaN or Inf (a violated decoder
// contract, not a property of the music). On success the vector is always
// complete; there are no partial results.
func Extract(buf *audio.Buffer) (FeatureVector, error) {
	var v FeatureVector

	if buf == nil || len(buf.Samples) == 0 {
		return v, fmt.Errorf("%w: empty buffer", ErrInsufficientAudio)
	}

	for i, s := range buf.Samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return v, fmt.Errorf("%w: sample index %d", ErrNonFiniteSamples, i)
		}
	}

	mono := buf.Mono()
	if buf.Duration() < MinDuration || len(mono) < FrameSize {
		return v, fmt.Errorf("%w: %.3fs of audio, need at least %.1fs and %d frames",
			ErrInsufficientAudio, buf.Duration(), MinDuration, FrameSize)
	}

	sr := buf.SampleRate
	mag := magnitudeSpectrogram(mono)
	power := powerSpectrogram(mag)

	rms := rmsDB(mono)
	peak := peakDB(mono)

	v.RMSDB = rms
	v.LUFSApprox = math.Max(rms+lufsOffset, DBFloor)
	v.DynamicRangeDB = math.Max(peak-rms, 0)

	v.SpectralCentroidHz, v.SpectralRolloffPct, v.SpectralBandwidthHz = spectralMeans(mag, sr)
	v.SpectralContrast = spectralContrast(mag, sr)
	v.ZeroCrossingRate = zeroCrossingRate(mono)
	v.MFCCMean = firstMFCCMean(power, sr)
	v.HarmonicRatio, v.PercussiveRatio = harmonicPercussiveRatios(power)
	v.EstimatedKey = estimateKey(chromaVector(mag, sr))
	v.TempoBPM = estimateTempo(onsetEnvelope(mag), sr)

	return v, nil
}
