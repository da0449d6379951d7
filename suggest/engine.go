// SPDX-License-Identifier: EPL-2.0

package suggest

import (
	"fmt"
	"sort"

	"github.com/ik5/mixprobe/features"
)

// Suggestion is one piece of rendered feedback. Dimension and Value record
// what triggered it, so consumers can trace a message back to the metric.
type Suggestion struct {
	Category  Category `json:"category"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	Dimension string   `json:"dimension"`
	Value     float64  `json:"value"`
}

// Engine evaluates a static rule table against feature vectors. It holds no
// mutable state after construction, so one Engine may serve any number of
// concurrent Evaluate calls.
type Engine struct {
	rules []Rule
}

// NewEngine builds an engine over the given rule table. The table is copied;
// later mutation of the argument does not affect the engine.
func NewEngine(rules []Rule) *Engine {
	owned := make([]Rule, len(rules))
	copy(owned, rules)
	return &Engine{rules: owned}
}

// Default returns an engine over DefaultRules.
func Default() *Engine {
	return NewEngine(DefaultRules())
}

// Evaluate runs every rule against the vector and returns the fired
// suggestions in the fixed category order (Loudness first, Key last).
// Rules never suppress each other. An empty result is the valid "clean mix"
// outcome, not a failure; Evaluate never returns an error for a well-formed
// vector.
func (e *Engine) Evaluate(v features.FeatureVector) []Suggestion {
	var out []Suggestion

	for _, r := range e.rules {
		if s, ok := r.evaluate(v); ok {
			out = append(out, s)
		}
	}

	// The default table is already ordered, but custom tables keep the
	// category-order guarantee too.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Category < out[j].Category
	})

	return out
}

func (r Rule) evaluate(v features.FeatureVector) (Suggestion, bool) {
	if r.Op == OpKeyUnknown {
		if v.EstimatedKey != features.KeyUnknown {
			return Suggestion{}, false
		}
		return Suggestion{
			Category:  r.Category,
			Severity:  r.Severity,
			Message:   r.Message,
			Dimension: r.Dimension,
		}, true
	}

	val := dimensionValue(v, r.Dimension)
	fired := (r.Op == OpBelow && val < r.Threshold) ||
		(r.Op == OpAbove && val > r.Threshold)
	if !fired {
		return Suggestion{}, false
	}

	return Suggestion{
		Category:  r.Category,
		Severity:  r.Severity,
		Message:   fmt.Sprintf(r.Message, val),
		Dimension: r.Dimension,
		Value:     val,
	}, true
}
