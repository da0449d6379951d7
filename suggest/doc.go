// SPDX-License-Identifier: EPL-2.0

// Package suggest maps a feature vector to categorized, prioritized
// production feedback.
//
// The engine is a pure interpreter over a declarative rule table: each rule
// watches one feature dimension and emits at most one suggestion when its
// threshold trips. There is no control flow to extend; adding feedback
// means adding a Rule.
//
//	engine := suggest.Default()
//	for _, s := range engine.Evaluate(vec) {
//	    fmt.Printf("[%s/%s] %s\n", s.Category, s.Severity, s.Message)
//	}
//
// Suggestions come back in a fixed category order (Loudness, DynamicRange,
// FrequencyBalance, HighFrequencyContent, HarmonicContent, Tempo, Key)
// regardless of which rules fired, so output stays deterministic and easy
// to scan. An empty slice means no rule tripped: a clean mix.
//
// Thresholds are tuning parameters, not code: DefaultThresholds documents
// the stock calibration, and Rules(custom) builds a recalibrated table for
// NewEngine.
package suggest
