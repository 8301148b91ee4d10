package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/domain"
)

func pattern(id string, confidence float64, scores ...float64) domain.DetectedPattern {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	dps := make([]domain.DataPoint, 0, len(scores))
	for i, s := range scores {
		dps = append(dps, domain.DataPoint{
			Timestamp:     base.Add(time.Duration(i) * time.Minute),
			Value:         100,
			SeverityScore: s,
		})
	}
	return domain.DetectedPattern{
		PatternID:       id,
		SensorID:        "s1",
		EquipmentType:   domain.EquipmentHVAC,
		ConfidenceScore: confidence,
		DataPoints:      dps,
	}
}

func TestClassifyPatternsOneToOne(t *testing.T) {
	patterns := []domain.DetectedPattern{
		pattern("a", 95, 4.2),
		pattern("b", 75, 2.5, 2.8),
		pattern("c", 40, 1.1),
	}

	results := New(DefaultConfig()).ClassifyPatterns(patterns)
	require.Len(t, results, len(patterns))
	for i, r := range results {
		assert.Equal(t, patterns[i].PatternID, r.PatternID)
		assert.GreaterOrEqual(t, r.RiskScore, 0.0)
		assert.LessOrEqual(t, r.RiskScore, 100.0)
	}
}

func TestClassifyPatternsTiers(t *testing.T) {
	c := New(DefaultConfig())

	results := c.ClassifyPatterns([]domain.DetectedPattern{
		pattern("critical", 95, 4.2),       // high confidence and high magnitude
		pattern("conf-only", 95, 2.2),      // confident but small deviation
		pattern("magnitude-only", 60, 4.5), // big deviation, low confidence
		pattern("warning", 80, 2.5),
		pattern("info", 40, 1.0),
	})

	assert.Equal(t, domain.SeverityCritical, results[0].Severity)
	assert.NotEqual(t, domain.SeverityCritical, results[1].Severity)
	assert.NotEqual(t, domain.SeverityCritical, results[2].Severity)
	assert.Equal(t, domain.SeverityWarning, results[3].Severity)
	assert.Equal(t, domain.SeverityInfo, results[4].Severity)
}

func TestClassifyPatternsConfigurableCutoffs(t *testing.T) {
	strict := New(Config{
		CriticalConfidence: 99,
		CriticalPeakScore:  5.0,
		WarningConfidence:  95,
		WarningPeakScore:   4.0,
	})

	results := strict.ClassifyPatterns([]domain.DetectedPattern{pattern("a", 95, 4.2)})
	require.Len(t, results, 1)
	assert.Equal(t, domain.SeverityInfo, results[0].Severity)
}

func TestClassifyPatternsRiskOrdering(t *testing.T) {
	results := New(DefaultConfig()).ClassifyPatterns([]domain.DetectedPattern{
		pattern("strong", 95, 4.0, 4.5, 4.2, 3.8),
		pattern("weak", 55, 1.2),
	})
	assert.Greater(t, results[0].RiskScore, results[1].RiskScore)
}

func TestClassifyPatternsEmptyInput(t *testing.T) {
	results := New(DefaultConfig()).ClassifyPatterns(nil)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}
