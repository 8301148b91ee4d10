// Package engine wires the four pipeline stages together:
// detect -> classify -> correlate -> recommend. Stages after detection are
// independent of each other; a correlation failure never blocks
// recommendations.
package engine

import (
	"context"

	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/domain"
	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/engine/classify"
	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/engine/correlate"
	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/engine/detector"
	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/engine/recommend"
)

// Config aggregates the per-stage configurations.
type Config struct {
	Detector    detector.Config  `json:"detector"`
	Classifier  classify.Config  `json:"classifier"`
	Correlator  correlate.Config `json:"correlator"`
	Recommender recommend.Config `json:"recommender"`
}

func DefaultConfig() Config {
	return Config{
		Detector:    detector.DefaultConfig(),
		Classifier:  classify.DefaultConfig(),
		Correlator:  correlate.DefaultConfig(),
		Recommender: recommend.DefaultConfig(),
	}
}

// Engine is the full failure-pattern pipeline. Stateless across calls; safe
// for concurrent use.
type Engine struct {
	detector    *detector.Detector
	classifier  *classify.Classifier
	correlator  *correlate.Analyzer
	recommender *recommend.Engine
}

// New validates the detector config eagerly and assembles the pipeline.
func New(cfg Config) (*Engine, error) {
	det, err := detector.New(cfg.Detector)
	if err != nil {
		return nil, err
	}
	return &Engine{
		detector:    det,
		classifier:  classify.New(cfg.Classifier),
		correlator:  correlate.New(cfg.Correlator),
		recommender: recommend.New(cfg.Recommender),
	}, nil
}

// PipelineResult carries every stage's output. When detection fails the
// downstream fields are empty and Detection.Err explains why.
type PipelineResult struct {
	Detection       domain.DetectionResult              `json:"detection"`
	Classifications []domain.ClassificationResult       `json:"classifications"`
	Correlation     domain.CorrelationResult            `json:"correlation"`
	Patterns        []domain.PatternWithRecommendations `json:"patterns"`
}

// Run executes the pipeline over one dataset. Classification refines each
// pattern's severity with the configured business cutoffs before
// recommendations are generated; correlation runs on the raw detector
// output and its failure leaves the other stages' results intact.
func (e *Engine) Run(ctx context.Context, points []domain.TimeSeriesPoint, window domain.AnalysisWindow, equip domain.EquipmentContext) PipelineResult {
	detection := e.detector.DetectAnomalies(ctx, points, window)
	if !detection.Success {
		return PipelineResult{Detection: detection}
	}

	classifications := e.classifier.ClassifyPatterns(detection.Patterns)

	refined := make([]domain.DetectedPattern, len(detection.Patterns))
	copy(refined, detection.Patterns)
	for i, c := range classifications {
		refined[i].Severity = c.Severity
	}

	correlation := e.correlator.AnalyzeCorrelations(ctx, detection.Patterns)
	recommendations := e.recommender.GenerateRecommendations(refined, equip)

	return PipelineResult{
		Detection:       detection,
		Classifications: classifications,
		Correlation:     correlation,
		Patterns:        recommendations,
	}
}

// DetectAnomalies exposes the detection stage alone.
func (e *Engine) DetectAnomalies(ctx context.Context, points []domain.TimeSeriesPoint, window domain.AnalysisWindow) domain.DetectionResult {
	return e.detector.DetectAnomalies(ctx, points, window)
}

// ClassifyPatterns exposes the classification stage alone.
func (e *Engine) ClassifyPatterns(patterns []domain.DetectedPattern) []domain.ClassificationResult {
	return e.classifier.ClassifyPatterns(patterns)
}

// AnalyzeCorrelations exposes the correlation stage alone.
func (e *Engine) AnalyzeCorrelations(ctx context.Context, patterns []domain.DetectedPattern) domain.CorrelationResult {
	return e.correlator.AnalyzeCorrelations(ctx, patterns)
}

// GenerateRecommendations exposes the recommendation stage alone.
func (e *Engine) GenerateRecommendations(patterns []domain.DetectedPattern, equip domain.EquipmentContext) []domain.PatternWithRecommendations {
	return e.recommender.GenerateRecommendations(patterns, equip)
}
