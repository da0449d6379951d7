// SPDX-License-Identifier: EPL-2.0

package suggest

import "github.com/ik5/mixprobe/features"

// Category groups suggestions by the aspect of the mix they address.
// Evaluate returns suggestions in ascending Category order, so the numeric
// values double as the fixed output ordering.
type Category int

const (
	Loudness Category = iota
	DynamicRange
	FrequencyBalance
	HighFrequencyContent
	HarmonicContent
	Tempo
	Key
)

var categoryNames = [...]string{
	Loudness:             "Loudness",
	DynamicRange:         "DynamicRange",
	FrequencyBalance:     "FrequencyBalance",
	HighFrequencyContent: "HighFrequencyContent",
	HarmonicContent:      "HarmonicContent",
	Tempo:                "Tempo",
	Key:                  "Key",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// MarshalText renders the category name, so serialized results carry
// readable categories instead of enum numbers.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Severity distinguishes advisory notes from findings worth acting on.
type Severity int

const (
	Info Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "info"
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Op is the comparison a rule applies to its feature dimension.
type Op int

const (
	// OpBelow fires when the dimension value is strictly below Threshold.
	OpBelow Op = iota
	// OpAbove fires when the dimension value is strictly above Threshold.
	OpAbove
	// OpKeyUnknown fires when no key could be estimated. Threshold unused.
	OpKeyUnknown
)

// Rule is one declarative entry of the suggestion table: a trigger over a
// single feature dimension, the category and severity of the resulting
// suggestion, and its message. Message is a fmt template receiving the
// triggering value (OpKeyUnknown messages are emitted verbatim).
type Rule struct {
	Dimension string
	Op        Op
	Threshold float64
	Category  Category
	Severity  Severity
	Message   string
}

// Feature dimension names, matching the FeatureVector JSON contract.
const (
	DimRMSDB           = "rms_db"
	DimDynamicRangeDB  = "dynamic_range_db"
	DimCentroidHz      = "spectral_centroid_hz"
	DimRolloffPct      = "spectral_rolloff_pct"
	DimHarmonicRatio   = "harmonic_ratio"
	DimPercussiveRatio = "percussive_ratio"
	DimTempoBPM        = "tempo_bpm"
	DimEstimatedKey    = "estimated_key"
)

// Thresholds are the tuning parameters behind the default rule table. They
// are configuration, not constants: build a custom Rules table from
// modified values to recalibrate the engine (tests do exactly that).
type Thresholds struct {
	QuietRMSDB        float64 // below: mix is too quiet
	LoudRMSDB         float64 // above: mix risks clipping
	CompressedRangeDB float64 // below: over-compressed
	WideRangeDB       float64 // above: very wide dynamics
	CentroidLowHz     float64 // below: low-end heavy
	CentroidHighHz    float64 // above: overly bright
	RolloffLowPct     float64 // below: dull top end
	RolloffHighPct    float64 // above: possible harshness
	HarmonicLow       float64 // below: percussive/noisy
	PercussiveHigh    float64 // above: tonal content buried
	TempoSlowBPM      float64 // below: advisory only
	TempoFastBPM      float64 // above: advisory only
}

// DefaultThresholds returns the calibration the default rule table uses.
func DefaultThresholds() Thresholds {
	return Thresholds{
		QuietRMSDB:        -20.0,
		LoudRMSDB:         -6.0,
		CompressedRangeDB: 6.0,
		WideRangeDB:       20.0,
		CentroidLowHz:     2000.0,
		CentroidHighHz:    4000.0,
		RolloffLowPct:     60.0,
		RolloffHighPct:    90.0,
		HarmonicLow:       0.5,
		PercussiveHigh:    0.6,
		TempoSlowBPM:      60.0,
		TempoFastBPM:      180.0,
	}
}

// Rules builds the full rule table from t, in the fixed category order.
// Each dimension owns a small group of mutually exclusive rules, so at most
// one suggestion per group fires for a given vector.
func Rules(t Thresholds) []Rule {
	return []Rule{
		{DimRMSDB, OpBelow, t.QuietRMSDB, Loudness, Warning,
			"Track is quiet (RMS %.1f dB). Consider raising the overall gain or normalizing to improve perceived loudness."},
		{DimRMSDB, OpAbove, t.LoudRMSDB, Loudness, Warning,
			"Track may be too loud (RMS %.1f dB). Watch for clipping and consider easing the gain."},
		{DimDynamicRangeDB, OpBelow, t.CompressedRangeDB, DynamicRange, Warning,
			"Very compressed (dynamic range %.1f dB). Easing compression preserves more natural dynamics."},
		{DimDynamicRangeDB, OpAbove, t.WideRangeDB, DynamicRange, Info,
			"Wide dynamics (dynamic range %.1f dB). Fine for dynamic material, but check consistency for streaming targets."},
		{DimCentroidHz, OpBelow, t.CentroidLowHz, FrequencyBalance, Warning,
			"Low-end heavy mix (centroid %.0f Hz). Consider boosting presence or trimming low frequencies for clarity."},
		{DimCentroidHz, OpAbove, t.CentroidHighHz, FrequencyBalance, Warning,
			"Bright mix (centroid %.0f Hz). Prominent highs can cause harshness and listener fatigue."},
		{DimRolloffPct, OpBelow, t.RolloffLowPct, HighFrequencyContent, Info,
			"Limited high-frequency content (rolloff %.1f%%). The mix may sound dull; consider adding air."},
		{DimRolloffPct, OpAbove, t.RolloffHighPct, HighFrequencyContent, Warning,
			"Extended high-frequency content (rolloff %.1f%%). Check that the top end stays musical rather than harsh."},
		{DimHarmonicRatio, OpBelow, t.HarmonicLow, HarmonicContent, Warning,
			"Low harmonic content (ratio %.2f). The track leans percussive or noisy; check for distortion if unintended."},
		{DimPercussiveRatio, OpAbove, t.PercussiveHigh, HarmonicContent, Warning,
			"Strongly percussive content (ratio %.2f). Tonal elements may be getting buried."},
		{DimTempoBPM, OpBelow, t.TempoSlowBPM, Tempo, Info,
			"Slow tempo (%.0f BPM). Make sure the timing feels intentional."},
		{DimTempoBPM, OpAbove, t.TempoFastBPM, Tempo, Info,
			"Fast tempo (%.0f BPM). Watch that clarity is not lost at this pace."},
		{DimEstimatedKey, OpKeyUnknown, 0, Key, Info,
			"No key could be estimated from the harmonic content."},
	}
}

// DefaultRules is the rule table built from DefaultThresholds.
func DefaultRules() []Rule {
	return Rules(DefaultThresholds())
}

// dimensionValue extracts the named numeric dimension from a vector.
// Unknown dimensions read as 0 and simply never fire sensible rules.
func dimensionValue(v features.FeatureVector, dim string) float64 {
	switch dim {
	case DimRMSDB:
		return v.RMSDB
	case DimDynamicRangeDB:
		return v.DynamicRangeDB
	case DimCentroidHz:
		return v.SpectralCentroidHz
	case DimRolloffPct:
		return v.SpectralRolloffPct
	case DimHarmonicRatio:
		return v.HarmonicRatio
	case DimPercussiveRatio:
		return v.PercussiveRatio
	case DimTempoBPM:
		return v.TempoBPM
	}
	return 0
}
