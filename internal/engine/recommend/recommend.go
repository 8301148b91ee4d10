// Package recommend turns detected patterns plus equipment context into
// prioritized, cost-justified maintenance actions.
package recommend

import (
	"math"
	"sort"

	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/domain"
)

// BudgetPolicy decides what happens to recommendations whose estimated cost
// exceeds the context's budget constraint.
type BudgetPolicy string

const (
	// BudgetFlag keeps over-budget recommendations, marks them
	// ExceedsBudget, and sorts them after affordable ones of the same
	// priority. Default: silently dropping actions hides critical work.
	BudgetFlag BudgetPolicy = "flag"
	// BudgetFilter drops over-budget recommendations entirely.
	BudgetFilter BudgetPolicy = "filter"
)

// Config tunes the recommendation engine.
type Config struct {
	BudgetPolicy BudgetPolicy `json:"budget_policy"`
	// DowntimeCostPerHour anchors the savings estimate; deployment tuning.
	DowntimeCostPerHour float64 `json:"downtime_cost_per_hour"`
}

func DefaultConfig() Config {
	return Config{
		BudgetPolicy:        BudgetFlag,
		DowntimeCostPerHour: 450,
	}
}

// Engine generates recommendations. Stateless; safe for concurrent use.
type Engine struct {
	cfg Config
}

func New(cfg Config) *Engine {
	if cfg.BudgetPolicy != BudgetFilter {
		cfg.BudgetPolicy = BudgetFlag
	}
	if cfg.DowntimeCostPerHour <= 0 {
		cfg.DowntimeCostPerHour = DefaultConfig().DowntimeCostPerHour
	}
	return &Engine{cfg: cfg}
}

// GenerateRecommendations returns one entry per input pattern, in order. A
// pattern with no viable actions keeps an empty recommendation list rather
// than being dropped. Never fails for valid input.
func (e *Engine) GenerateRecommendations(patterns []domain.DetectedPattern, equip domain.EquipmentContext) []domain.PatternWithRecommendations {
	out := make([]domain.PatternWithRecommendations, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, domain.PatternWithRecommendations{
			DetectedPattern: p,
			Recommendations: e.recommendFor(p, equip),
		})
	}
	return out
}

func (e *Engine) recommendFor(p domain.DetectedPattern, equip domain.EquipmentContext) []domain.Recommendation {
	templates := candidates(p.EquipmentType, p.Severity)
	recs := make([]domain.Recommendation, 0, len(templates))

	for _, t := range templates {
		cost := estimateCost(t, equip)
		rec := domain.Recommendation{
			ActionType:           t.actionType,
			Description:          t.description,
			EstimatedCost:        cost,
			EstimatedSavings:     e.estimateSavings(p, equip),
			TimeToImplementHours: t.baseHours,
			SuccessProbability:   successProbability(t, p, equip),
		}
		rec.Priority = priorityFor(p, equip, rec)

		if equip.BudgetConstraint != nil && rec.EstimatedCost > *equip.BudgetConstraint {
			if e.cfg.BudgetPolicy == BudgetFilter {
				continue
			}
			rec.ExceedsBudget = true
		}
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() > b.Priority.Rank()
		}
		if a.ExceedsBudget != b.ExceedsBudget {
			return !a.ExceedsBudget
		}
		return a.ROI() > b.ROI()
	})
	return recs
}

// estimateCost scales the template cost with action complexity and
// equipment age: parts and labour both climb as units approach end of life.
// The age factor saturates at 2x after twenty years.
func estimateCost(t actionTemplate, equip domain.EquipmentContext) float64 {
	ageFactor := 1 + math.Min(float64(equip.EquipmentAgeMonths)/240.0, 1.0)
	cost := t.baseCost * t.complexity * ageFactor
	if cost <= 0 {
		cost = t.baseCost
	}
	return round2(cost)
}

// estimateSavings is the avoided-downtime value of acting on the pattern:
// downtime cost x expected outage hours for the severity, weighted by
// operational criticality and failure history, scaled up for buildings with
// long operating days.
func (e *Engine) estimateSavings(p domain.DetectedPattern, equip domain.EquipmentContext) float64 {
	var outageHours float64
	switch p.Severity {
	case domain.SeverityCritical:
		outageHours = 12
	case domain.SeverityWarning:
		outageHours = 4
	default:
		outageHours = 1
	}

	weight := criticalityWeight(equip.OperationalCriticality)
	history := 1 + 0.1*math.Min(float64(equip.FailureHistory), 10)

	savings := e.cfg.DowntimeCostPerHour * outageHours * weight * history
	if bp := equip.BuildingProfile; bp != nil && bp.OperationalHours > 0 {
		savings *= 1 + math.Min(float64(bp.OperationalHours)/8760.0, 1.0)
	}
	return round2(math.Max(savings, 1))
}

// successProbability starts from the action's base rate, rises with
// detection confidence and falls with equipment age and failure history.
func successProbability(t actionTemplate, p domain.DetectedPattern, equip domain.EquipmentContext) float64 {
	prob := t.baseProbability
	prob += 0.1 * (p.ConfidenceScore - 50)
	prob -= float64(equip.EquipmentAgeMonths) / 24.0
	prob -= 2 * math.Min(float64(equip.FailureHistory), 10)
	return round2(math.Min(99, math.Max(5, prob)))
}

// priorityFor assigns high to critical patterns with strong ROI or high
// operational criticality, low to info-tier patterns with weak ROI.
func priorityFor(p domain.DetectedPattern, equip domain.EquipmentContext, rec domain.Recommendation) domain.Priority {
	critical := p.Severity == domain.SeverityCritical
	switch {
	case critical && (rec.ROI() > 1 || equip.OperationalCriticality == domain.CriticalityHigh):
		return domain.PriorityHigh
	case critical || p.Severity == domain.SeverityWarning || rec.ROI() > 1:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func criticalityWeight(c domain.Criticality) float64 {
	switch c {
	case domain.CriticalityHigh:
		return 1.5
	case domain.CriticalityMedium:
		return 1.0
	default:
		return 0.7
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
