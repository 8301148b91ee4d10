package detector

import (
	"time"

	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/domain"
)

// Algorithm selects the baseline strategy used to score readings.
type Algorithm string

const (
	// AlgorithmStatisticalZScore scores each reading against the mean and
	// standard deviation of its time-of-day bucket.
	AlgorithmStatisticalZScore Algorithm = "statistical_zscore"
	// AlgorithmSeasonalDecomposition removes the trend and daily seasonal
	// component first, then scores the residual.
	AlgorithmSeasonalDecomposition Algorithm = "seasonal_decomposition"
)

// OutlierHandling controls how extreme readings affect the baseline.
type OutlierHandling string

const (
	// OutlierCap clips extremes before re-baselining so a single spike cannot
	// corrupt the statistics used to score its neighbours.
	OutlierCap OutlierHandling = "cap"
	// OutlierRemove excludes extremes from the baseline entirely; they are
	// still scored and reported as patterns.
	OutlierRemove OutlierHandling = "remove"
	// OutlierFlag keeps extremes in the baseline unmodified.
	OutlierFlag OutlierHandling = "flag"
)

// ConfidenceMethod selects how pattern confidence is derived.
type ConfidenceMethod string

const (
	ConfidenceStatistical ConfidenceMethod = "statistical"
	ConfidenceEnsemble    ConfidenceMethod = "ensemble"
)

// Config tunes the anomaly detector. Validated eagerly by New; an invalid
// config never reaches data processing.
//
// Sensitivity scales the effective z threshold linearly:
// effective = ThresholdMultiplier * (1.5 - 0.1*Sensitivity), so 5 is neutral,
// 10 halves the threshold and 1 raises it by 40%.
//
// LookbackPeriod bounds the scoring region: readings older than
// window.End - LookbackPeriod still feed the baseline but are not flagged.
type Config struct {
	Algorithm           Algorithm        `json:"algorithm_type"`
	Sensitivity         int              `json:"sensitivity"`
	ThresholdMultiplier float64          `json:"threshold_multiplier"`
	MinimumDataPoints   int              `json:"minimum_data_points"`
	LookbackPeriod      time.Duration    `json:"lookback_period"`
	SeasonalAdjustment  bool             `json:"seasonal_adjustment"`
	OutlierHandling     OutlierHandling  `json:"outlier_handling"`
	ConfidenceMethod    ConfidenceMethod `json:"confidence_method"`
}

// DefaultConfig returns the deployment defaults.
func DefaultConfig() Config {
	return Config{
		Algorithm:           AlgorithmStatisticalZScore,
		Sensitivity:         5,
		ThresholdMultiplier: 2.0,
		MinimumDataPoints:   10,
		LookbackPeriod:      24 * time.Hour,
		SeasonalAdjustment:  false,
		OutlierHandling:     OutlierCap,
		ConfidenceMethod:    ConfidenceStatistical,
	}
}

// Validate reports the first problem found as an InvalidConfiguration error.
func (c Config) Validate() error {
	switch c.Algorithm {
	case AlgorithmStatisticalZScore, AlgorithmSeasonalDecomposition:
	default:
		return domain.NewEngineErrorf(domain.ErrCodeInvalidConfiguration, "unknown algorithm_type %q", c.Algorithm)
	}
	if c.Sensitivity < 1 || c.Sensitivity > 10 {
		return domain.NewEngineErrorf(domain.ErrCodeInvalidConfiguration, "sensitivity must be in 1-10, got %d", c.Sensitivity)
	}
	if c.ThresholdMultiplier <= 0 {
		return domain.NewEngineErrorf(domain.ErrCodeInvalidConfiguration, "threshold_multiplier must be positive, got %g", c.ThresholdMultiplier)
	}
	if c.MinimumDataPoints < 1 {
		return domain.NewEngineErrorf(domain.ErrCodeInvalidConfiguration, "minimum_data_points must be at least 1, got %d", c.MinimumDataPoints)
	}
	if c.LookbackPeriod <= 0 {
		return domain.NewEngineErrorf(domain.ErrCodeInvalidConfiguration, "lookback_period must be positive, got %s", c.LookbackPeriod)
	}
	switch c.OutlierHandling {
	case OutlierCap, OutlierRemove, OutlierFlag:
	default:
		return domain.NewEngineErrorf(domain.ErrCodeInvalidConfiguration, "unknown outlier_handling %q", c.OutlierHandling)
	}
	switch c.ConfidenceMethod {
	case ConfidenceStatistical, ConfidenceEnsemble:
	default:
		return domain.NewEngineErrorf(domain.ErrCodeInvalidConfiguration, "unknown confidence_method %q", c.ConfidenceMethod)
	}
	return nil
}

// effectiveThreshold is the |z| cutoff after applying sensitivity scaling.
func (c Config) effectiveThreshold() float64 {
	return c.ThresholdMultiplier * (1.5 - 0.1*float64(c.Sensitivity))
}
