// Package classify assigns severity tiers and numeric risk scores to
// detected patterns. It never rejects input: every pattern gets exactly one
// result, in input order.
package classify

import (
	"math"

	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/domain"
)

// Config holds the tier cutoffs. They are deployment tuning, not constants:
// a site with noisy sensors raises them, a critical facility lowers them.
type Config struct {
	CriticalConfidence float64 `json:"critical_confidence"`
	CriticalPeakScore  float64 `json:"critical_peak_score"`
	WarningConfidence  float64 `json:"warning_confidence"`
	WarningPeakScore   float64 `json:"warning_peak_score"`
}

// DefaultConfig mirrors the detection-time coarse tiers.
func DefaultConfig() Config {
	return Config{
		CriticalConfidence: 90,
		CriticalPeakScore:  3.0,
		WarningConfidence:  70,
		WarningPeakScore:   2.0,
	}
}

// Classifier tiers patterns against its configured cutoffs.
type Classifier struct {
	cfg Config
}

func New(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// ClassifyPatterns returns one result per input pattern, order-preserving.
//
// The risk score blends confidence (50%), peak z magnitude (30%, saturating
// at 5 standard deviations) and pattern duration (20%, saturating at 10
// anomalous points) onto a 0-100 scale.
func (c *Classifier) ClassifyPatterns(patterns []domain.DetectedPattern) []domain.ClassificationResult {
	results := make([]domain.ClassificationResult, 0, len(patterns))
	for _, p := range patterns {
		peak := p.PeakSeverityScore()
		results = append(results, domain.ClassificationResult{
			PatternID: p.PatternID,
			Severity:  c.tier(p.ConfidenceScore, peak),
			RiskScore: riskScore(p.ConfidenceScore, peak, len(p.DataPoints)),
		})
	}
	return results
}

// tier requires both high confidence and high magnitude for critical;
// moderate values of either give warning.
func (c *Classifier) tier(confidence, peak float64) domain.Severity {
	switch {
	case confidence >= c.cfg.CriticalConfidence && peak > c.cfg.CriticalPeakScore:
		return domain.SeverityCritical
	case confidence >= c.cfg.WarningConfidence && peak > c.cfg.WarningPeakScore:
		return domain.SeverityWarning
	default:
		return domain.SeverityInfo
	}
}

func riskScore(confidence, peak float64, duration int) float64 {
	magnitude := math.Min(peak/5.0, 1.0)
	persistence := math.Min(float64(duration)/10.0, 1.0)
	score := 0.5*confidence + 30*magnitude + 20*persistence
	return math.Min(100, math.Max(0, score))
}
