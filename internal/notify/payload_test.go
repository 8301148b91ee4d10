package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/domain"
)

func patternWith(id string, severity domain.Severity) domain.PatternWithRecommendations {
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return domain.PatternWithRecommendations{
		DetectedPattern: domain.DetectedPattern{
			PatternID:       id,
			SensorID:        "hvac-3a",
			EquipmentType:   domain.EquipmentHVAC,
			FloorNumber:     3,
			ConfidenceScore: 92.5,
			Severity:        severity,
			DataPoints: []domain.DataPoint{
				{Timestamp: base, Value: 110, SeverityScore: 3.2},
				{Timestamp: base.Add(15 * time.Minute), Value: 118, SeverityScore: 4.4},
			},
		},
		Recommendations: []domain.Recommendation{{
			ActionType:         "replace_filter",
			Description:        "Replace clogged air filter",
			EstimatedCost:      150,
			EstimatedSavings:   1200,
			SuccessProbability: 85,
			Priority:           domain.PriorityHigh,
		}},
	}
}

func TestBuildPayloadsSeverityThreshold(t *testing.T) {
	patterns := []domain.PatternWithRecommendations{
		patternWith("p-info", domain.SeverityInfo),
		patternWith("p-warn", domain.SeverityWarning),
		patternWith("p-crit", domain.SeverityCritical),
	}

	out := BuildPayloads(patterns, domain.SeverityWarning)
	require.Len(t, out, 2)
	assert.Equal(t, "p-warn", out[0].PatternID)
	assert.Equal(t, "p-crit", out[1].PatternID)

	assert.Len(t, BuildPayloads(patterns, domain.SeverityInfo), 3)
	assert.Len(t, BuildPayloads(patterns, domain.SeverityCritical), 1)
}

func TestBuildPayloadsSubject(t *testing.T) {
	out := BuildPayloads([]domain.PatternWithRecommendations{
		patternWith("p1", domain.SeverityCritical),
	}, domain.SeverityInfo)
	require.Len(t, out, 1)
	assert.Equal(t, "[CRITICAL] HVAC anomaly on floor 3 (sensor hvac-3a)", out[0].Subject)
}

func TestBuildPayloadsMessageContent(t *testing.T) {
	out := BuildPayloads([]domain.PatternWithRecommendations{
		patternWith("p1", domain.SeverityWarning),
	}, domain.SeverityInfo)
	require.Len(t, out, 1)

	msg := out[0].Message
	assert.Contains(t, msg, "Sensor: hvac-3a")
	assert.Contains(t, msg, "Severity: warning")
	assert.Contains(t, msg, "Confidence: 92.5%")
	assert.Contains(t, msg, "4.40 standard deviations across 2 readings")
	assert.Contains(t, msg, "Recommended actions:")
	assert.Contains(t, msg, "Replace clogged air filter")
	assert.NotContains(t, msg, "exceeds budget")
}

func TestBuildPayloadsBudgetAnnotation(t *testing.T) {
	p := patternWith("p1", domain.SeverityCritical)
	p.Recommendations[0].ExceedsBudget = true

	out := BuildPayloads([]domain.PatternWithRecommendations{p}, domain.SeverityInfo)
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Message, "(exceeds budget)")
}

func TestBuildPayloadsEmptyInput(t *testing.T) {
	assert.Empty(t, BuildPayloads(nil, domain.SeverityInfo))
}
