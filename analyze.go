// SPDX-License-Identifier: EPL-2.0

package mixprobe

import (
	"fmt"

	"github.com/ik5/mixprobe/audio"
	"github.com/ik5/mixprobe/features"
	"github.com/ik5/mixprobe/suggest"
)

// AnalysisRate is the sample rate AnalyzeSource brings audio to before
// feature extraction. Analyzing at one fixed rate keeps the spectral
// metrics comparable across inputs recorded at different rates.
const AnalysisRate = 22050

// Result is the assembled outcome of one analysis: the feature vector, the
// suggestions derived from it, and the metadata of the analyzed audio. The
// caller owns it exclusively; the pipeline keeps no reference.
type Result struct {
	Features        features.FeatureVector `json:"features"`
	Suggestions     []suggest.Suggestion   `json:"suggestions"`
	DurationSeconds float64                `json:"duration_seconds"`
	SampleRate      int                    `json:"sample_rate"`
	Channels        int                    `json:"channels"`
}

// Analyzer runs the analysis pipeline: feature extraction followed by
// suggestion evaluation. It is stateless apart from its rule table and safe
// for concurrent use.
type Analyzer struct {
	engine *suggest.Engine
}

// New returns an Analyzer with the default suggestion rules.
func New() *Analyzer {
	return &Analyzer{engine: suggest.Default()}
}

// NewWithEngine returns an Analyzer using a custom suggestion engine, for
// callers that recalibrated the rule thresholds.
func NewWithEngine(engine *suggest.Engine) *Analyzer {
	return &Analyzer{engine: engine}
}

// Analyze extracts features from the buffer and evaluates the suggestion
// rules against them.
//
// Errors pass through from extraction: features.ErrInsufficientAudio for
// input too short to analyze, features.ErrNonFiniteSamples for a violated
// decoder contract. Suggestion evaluation never fails; an empty suggestion
// list means a clean mix.
func (a *Analyzer) Analyze(buf *audio.Buffer) (*Result, error) {
	vec, err := features.Extract(buf)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &Result{
		Features:        vec,
		Suggestions:     a.engine.Evaluate(vec),
		DurationSeconds: buf.Duration(),
		SampleRate:      buf.SampleRate,
		Channels:        buf.Channels,
	}, nil
}

// AnalyzeSource is the high-level convenience entry point: it normalizes
// any decoded source and analyzes it.
//
// This function creates a processing pipeline:
//  1. Resamples the source audio to AnalysisRate using cubic interpolation
//  2. Converts the resampled audio to mono by averaging channels
//  3. Captures all samples into a Buffer
//  4. Runs Analyze on the captured buffer
//
// bufferSize controls the read chunk size (4096 is a good default). For
// more control over the intake pipeline, build a Buffer yourself with
// audio.Capture and call Analyze directly.
//
// Example:
//
//	src, _ := decoder.Decode(file)
//	result, err := analyzer.AnalyzeSource(src, 4096)
//	if err != nil {
//	    return err
//	}
//	// result.Features and result.Suggestions describe the mix
func (a *Analyzer) AnalyzeSource(src audio.Source, bufferSize int) (*Result, error) {
	resampler := audio.NewResampler(src, AnalysisRate)
	mono := audio.NewMonoMixer(resampler)

	buf, err := audio.Capture(mono, bufferSize)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return a.Analyze(buf)
}

// Analyze runs the pipeline on a buffer with the default suggestion rules.
func Analyze(buf *audio.Buffer) (*Result, error) {
	return New().Analyze(buf)
}

// AnalyzeSource runs the intake and analysis pipeline on a source with the
// default suggestion rules.
func AnalyzeSource(src audio.Source, bufferSize int) (*Result, error) {
	return New().AnalyzeSource(src, bufferSize)
}
