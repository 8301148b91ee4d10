package domain

import "time"

// EquipmentType identifies the class of building equipment a sensor monitors.
type EquipmentType string

const (
	EquipmentHVAC     EquipmentType = "HVAC"
	EquipmentLighting EquipmentType = "Lighting"
	EquipmentPower    EquipmentType = "Power"
	EquipmentWater    EquipmentType = "Water"
	EquipmentSecurity EquipmentType = "Security"
)

// AllEquipmentTypes lists every equipment type; lookup tables keyed by
// equipment type are checked against this slice for completeness.
var AllEquipmentTypes = []EquipmentType{
	EquipmentHVAC,
	EquipmentLighting,
	EquipmentPower,
	EquipmentWater,
	EquipmentSecurity,
}

func (e EquipmentType) Valid() bool {
	switch e {
	case EquipmentHVAC, EquipmentLighting, EquipmentPower, EquipmentWater, EquipmentSecurity:
		return true
	}
	return false
}

// Granularity is the baseline bucket resolution of an analysis window.
type Granularity string

const (
	GranularityMinute Granularity = "minute"
	GranularityHour   Granularity = "hour"
	GranularityDay    Granularity = "day"
)

func (g Granularity) Valid() bool {
	switch g {
	case GranularityMinute, GranularityHour, GranularityDay:
		return true
	}
	return false
}

// Severity is the coarse business tier assigned to a detected pattern.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Rank orders severities so callers can threshold on them (info < warning < critical).
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// TimeSeriesPoint is a single sensor reading. Produced by the external feed,
// never mutated by the engine.
type TimeSeriesPoint struct {
	Timestamp     time.Time     `json:"timestamp"`
	Value         float64       `json:"value"`
	SensorID      string        `json:"sensor_id"`
	EquipmentType EquipmentType `json:"equipment_type"`
	FloorNumber   int           `json:"floor_number,omitempty"`
}

// AnalysisWindow bounds an analysis and sets its baseline resolution.
type AnalysisWindow struct {
	Start       time.Time   `json:"start_time"`
	End         time.Time   `json:"end_time"`
	Granularity Granularity `json:"granularity"`
}

func (w AnalysisWindow) Validate() error {
	if !w.Start.Before(w.End) {
		return NewEngineError(ErrCodeInvalidConfiguration, "analysis window start must precede end")
	}
	if !w.Granularity.Valid() {
		return NewEngineError(ErrCodeInvalidConfiguration, "unknown granularity: "+string(w.Granularity))
	}
	return nil
}

// DataPoint is one anomalous reading inside a detected pattern. SeverityScore
// is the |z-score| of the reading against its baseline bucket.
type DataPoint struct {
	Timestamp     time.Time `json:"timestamp"`
	Value         float64   `json:"value"`
	SeverityScore float64   `json:"severity_score"`
}

// DetectedPattern is the detector's unit of output: one or more closely
// spaced anomalous readings from a single sensor. Read-only downstream.
type DetectedPattern struct {
	PatternID       string        `json:"pattern_id"`
	SensorID        string        `json:"sensor_id"`
	EquipmentType   EquipmentType `json:"equipment_type"`
	FloorNumber     int           `json:"floor_number,omitempty"`
	ConfidenceScore float64       `json:"confidence_score"`
	Severity        Severity      `json:"severity"`
	DataPoints      []DataPoint   `json:"data_points"`
	DetectedAt      time.Time     `json:"detected_at"`
}

// PeakSeverityScore returns the largest severity score across the pattern's
// data points, 0 for an empty pattern.
func (p DetectedPattern) PeakSeverityScore() float64 {
	var peak float64
	for _, dp := range p.DataPoints {
		if dp.SeverityScore > peak {
			peak = dp.SeverityScore
		}
	}
	return peak
}

// Start returns the timestamp of the pattern's first data point.
func (p DetectedPattern) Start() time.Time {
	if len(p.DataPoints) == 0 {
		return time.Time{}
	}
	return p.DataPoints[0].Timestamp
}

// End returns the timestamp of the pattern's last data point.
func (p DetectedPattern) End() time.Time {
	if len(p.DataPoints) == 0 {
		return time.Time{}
	}
	return p.DataPoints[len(p.DataPoints)-1].Timestamp
}

// ClassificationResult refines one detected pattern with a numeric risk score.
type ClassificationResult struct {
	PatternID string   `json:"pattern_id"`
	Severity  Severity `json:"severity"`
	RiskScore float64  `json:"risk_score"`
}

// TemporalCorrelation records the best-aligning lag between two patterns.
// A positive lag means pattern A leads pattern B.
type TemporalCorrelation struct {
	PatternA    string        `json:"pattern_id_a"`
	PatternB    string        `json:"pattern_id_b"`
	Lag         time.Duration `json:"lag"`
	Correlation float64       `json:"correlation"`
}

// CorrelationResult holds the pairwise correlation structure of a pattern
// set. Matrix rows/columns follow PatternIDs order; nil entries mark pairs
// whose windows never overlap (incomparable, as opposed to uncorrelated).
type CorrelationResult struct {
	Success              bool                  `json:"success"`
	PatternIDs           []string              `json:"pattern_ids"`
	Matrix               [][]*float64          `json:"correlation_matrix"`
	TemporalCorrelations []TemporalCorrelation `json:"temporal_correlations"`
	ProcessingTimeMS     int64                 `json:"processing_time_ms"`
	Err                  *EngineError          `json:"error,omitempty"`
}

// Criticality is how essential a piece of equipment is to building operation.
type Criticality string

const (
	CriticalityLow    Criticality = "low"
	CriticalityMedium Criticality = "medium"
	CriticalityHigh   Criticality = "high"
)

// BuildingProfile is optional building metadata used to scale savings estimates.
type BuildingProfile struct {
	Floors           int `json:"floors"`
	SensorCount      int `json:"sensor_count"`
	OperationalHours int `json:"operational_hours"`
}

// EquipmentContext carries the equipment and building facts the
// recommendation engine weighs against detected patterns.
type EquipmentContext struct {
	OperationalCriticality Criticality      `json:"operational_criticality"`
	EquipmentAgeMonths     int              `json:"equipment_age_months"`
	LastMaintenance        time.Time        `json:"last_maintenance_date"`
	FailureHistory         int              `json:"failure_history"`
	BudgetConstraint       *float64         `json:"budget_constraints,omitempty"`
	BuildingProfile        *BuildingProfile `json:"building_profile,omitempty"`
}

// Priority orders maintenance recommendations.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// Recommendation is a single cost-annotated maintenance action.
// ExceedsBudget is set when a budget constraint exists and the estimated
// cost is above it; under the flag budget policy such recommendations are
// kept but marked.
type Recommendation struct {
	ActionType           string   `json:"action_type"`
	Priority             Priority `json:"priority"`
	EstimatedCost        float64  `json:"estimated_cost"`
	EstimatedSavings     float64  `json:"estimated_savings"`
	TimeToImplementHours float64  `json:"time_to_implement_hours"`
	SuccessProbability   float64  `json:"success_probability"`
	Description          string   `json:"description"`
	ExceedsBudget        bool     `json:"exceeds_budget,omitempty"`
}

// ROI is (savings - cost) / cost.
func (r Recommendation) ROI() float64 {
	if r.EstimatedCost <= 0 {
		return 0
	}
	return (r.EstimatedSavings - r.EstimatedCost) / r.EstimatedCost
}

// PatternWithRecommendations pairs a detected pattern with its maintenance
// actions. Recommendations may be empty; the pattern is never omitted.
type PatternWithRecommendations struct {
	DetectedPattern
	Recommendations []Recommendation `json:"recommendations"`
}

// StatisticalSummary describes the dataset a detection ran over.
type StatisticalSummary struct {
	PointCount  int     `json:"point_count"`
	SensorCount int     `json:"sensor_count"`
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"std_dev"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	BucketCount int     `json:"bucket_count"`
	AnomalyRate float64 `json:"anomaly_rate"`
}

// PerformanceMetrics reports how long a detection took.
type PerformanceMetrics struct {
	DurationMS      int64   `json:"duration_ms"`
	PointsPerSecond float64 `json:"points_per_second"`
}

// DetectionResult is the anomaly detector's structured output. On failure
// Success is false and Err carries a typed engine error; no partial patterns
// are returned.
type DetectionResult struct {
	Success  bool               `json:"success"`
	Patterns []DetectedPattern  `json:"patterns"`
	Summary  StatisticalSummary `json:"statistical_summary"`
	Metrics  PerformanceMetrics `json:"performance_metrics"`
	Err      *EngineError       `json:"error,omitempty"`
}
