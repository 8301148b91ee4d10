package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/domain"
)

func pattern(equipment domain.EquipmentType, severity domain.Severity, confidence float64) domain.DetectedPattern {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return domain.DetectedPattern{
		PatternID:       string(equipment) + "-" + string(severity),
		SensorID:        "s1",
		EquipmentType:   equipment,
		FloorNumber:     4,
		ConfidenceScore: confidence,
		Severity:        severity,
		DataPoints: []domain.DataPoint{
			{Timestamp: base, Value: 120, SeverityScore: 4.1},
		},
	}
}

func defaultContext() domain.EquipmentContext {
	return domain.EquipmentContext{
		OperationalCriticality: domain.CriticalityMedium,
		EquipmentAgeMonths:     36,
		FailureHistory:         2,
	}
}

func TestCatalogCoversAllEquipmentAndSeverities(t *testing.T) {
	severities := []domain.Severity{domain.SeverityInfo, domain.SeverityWarning, domain.SeverityCritical}
	for _, equipment := range domain.AllEquipmentTypes {
		for _, severity := range severities {
			assert.NotEmptyf(t, candidates(equipment, severity),
				"no actions for %s/%s", equipment, severity)
		}
	}
}

func TestGenerateRecommendationsOneToOne(t *testing.T) {
	patterns := []domain.DetectedPattern{
		pattern(domain.EquipmentHVAC, domain.SeverityCritical, 95),
		pattern(domain.EquipmentWater, domain.SeverityWarning, 80),
		pattern(domain.EquipmentLighting, domain.SeverityInfo, 50),
	}

	out := New(DefaultConfig()).GenerateRecommendations(patterns, defaultContext())
	require.Len(t, out, len(patterns))
	for i, p := range out {
		assert.Equal(t, patterns[i].PatternID, p.PatternID)
	}
}

func TestGenerateRecommendationsBounds(t *testing.T) {
	var patterns []domain.DetectedPattern
	severities := []domain.Severity{domain.SeverityInfo, domain.SeverityWarning, domain.SeverityCritical}
	for _, equipment := range domain.AllEquipmentTypes {
		for _, severity := range severities {
			patterns = append(patterns, pattern(equipment, severity, 85))
		}
	}

	out := New(DefaultConfig()).GenerateRecommendations(patterns, defaultContext())
	for _, p := range out {
		require.NotEmpty(t, p.Recommendations)
		for _, r := range p.Recommendations {
			assert.Greater(t, r.EstimatedCost, 0.0)
			assert.Greater(t, r.EstimatedSavings, 0.0)
			assert.Greater(t, r.TimeToImplementHours, 0.0)
			assert.GreaterOrEqual(t, r.SuccessProbability, 0.0)
			assert.LessOrEqual(t, r.SuccessProbability, 100.0)
			assert.NotEmpty(t, r.ActionType)
			assert.NotEmpty(t, r.Description)
		}
	}
}

func TestGenerateRecommendationsPriorityOrdering(t *testing.T) {
	equip := defaultContext()
	equip.OperationalCriticality = domain.CriticalityHigh

	out := New(DefaultConfig()).GenerateRecommendations(
		[]domain.DetectedPattern{pattern(domain.EquipmentHVAC, domain.SeverityCritical, 96)}, equip)
	require.Len(t, out, 1)
	recs := out[0].Recommendations
	require.NotEmpty(t, recs)

	assert.Equal(t, domain.PriorityHigh, recs[0].Priority)
	for i := 1; i < len(recs); i++ {
		assert.LessOrEqual(t, recs[i].Priority.Rank(), recs[i-1].Priority.Rank())
	}
}

func TestGenerateRecommendationsBudgetFlag(t *testing.T) {
	budget := 1.0
	equip := defaultContext()
	equip.BudgetConstraint = &budget

	out := New(DefaultConfig()).GenerateRecommendations(
		[]domain.DetectedPattern{pattern(domain.EquipmentPower, domain.SeverityCritical, 92)}, equip)
	require.Len(t, out, 1)
	require.NotEmpty(t, out[0].Recommendations, "flag policy keeps unaffordable actions")
	for _, r := range out[0].Recommendations {
		assert.True(t, r.ExceedsBudget)
	}
}

func TestGenerateRecommendationsBudgetFilter(t *testing.T) {
	budget := 1.0
	equip := defaultContext()
	equip.BudgetConstraint = &budget

	cfg := DefaultConfig()
	cfg.BudgetPolicy = BudgetFilter
	out := New(cfg).GenerateRecommendations(
		[]domain.DetectedPattern{pattern(domain.EquipmentPower, domain.SeverityCritical, 92)}, equip)
	require.Len(t, out, 1, "pattern survives even with every action filtered")
	assert.Empty(t, out[0].Recommendations)
}

func TestGenerateRecommendationsUnknownEquipment(t *testing.T) {
	p := pattern("Elevator", domain.SeverityCritical, 90)
	out := New(DefaultConfig()).GenerateRecommendations([]domain.DetectedPattern{p}, defaultContext())
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Recommendations)
}

func TestSuccessProbabilityDeclinesWithAge(t *testing.T) {
	young := defaultContext()
	young.EquipmentAgeMonths = 6
	old := defaultContext()
	old.EquipmentAgeMonths = 240

	p := []domain.DetectedPattern{pattern(domain.EquipmentHVAC, domain.SeverityCritical, 90)}
	e := New(DefaultConfig())

	youngProb := e.GenerateRecommendations(p, young)[0].Recommendations[0].SuccessProbability
	oldProb := e.GenerateRecommendations(p, old)[0].Recommendations[0].SuccessProbability
	assert.Greater(t, youngProb, oldProb)
}

func TestEstimatedSavingsScaleWithCriticality(t *testing.T) {
	low := defaultContext()
	low.OperationalCriticality = domain.CriticalityLow
	high := defaultContext()
	high.OperationalCriticality = domain.CriticalityHigh

	p := []domain.DetectedPattern{pattern(domain.EquipmentWater, domain.SeverityCritical, 90)}
	e := New(DefaultConfig())

	lowSavings := e.GenerateRecommendations(p, low)[0].Recommendations[0].EstimatedSavings
	highSavings := e.GenerateRecommendations(p, high)[0].Recommendations[0].EstimatedSavings
	assert.Greater(t, highSavings, lowSavings)
}
