// Package notify builds the payloads handed to the external notification
// dispatcher. Delivery, channel selection and retry all stay outside this
// module; the engine's obligation ends at a complete, well-formed payload.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/domain"
)

// Payload is one dispatch-ready notification for a pattern at or above the
// caller's severity threshold.
type Payload struct {
	PatternID   string                            `json:"pattern_id"`
	Severity    domain.Severity                   `json:"severity"`
	Subject     string                            `json:"subject"`
	Message     string                            `json:"message"`
	Pattern     domain.PatternWithRecommendations `json:"pattern"`
	GeneratedAt time.Time                         `json:"generated_at"`
}

// BuildPayloads returns one payload per pattern whose severity is at or
// above minSeverity, in input order.
func BuildPayloads(patterns []domain.PatternWithRecommendations, minSeverity domain.Severity) []Payload {
	var out []Payload
	for _, p := range patterns {
		if p.Severity.Rank() < minSeverity.Rank() {
			continue
		}
		out = append(out, Payload{
			PatternID:   p.PatternID,
			Severity:    p.Severity,
			Subject:     subject(p),
			Message:     message(p),
			Pattern:     p,
			GeneratedAt: time.Now().UTC(),
		})
	}
	return out
}

func subject(p domain.PatternWithRecommendations) string {
	return fmt.Sprintf("[%s] %s anomaly on floor %d (sensor %s)",
		strings.ToUpper(string(p.Severity)), p.EquipmentType, p.FloorNumber, p.SensorID)
}

func message(p domain.PatternWithRecommendations) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Failure pattern detected\n\n")
	fmt.Fprintf(&b, "Sensor: %s\nEquipment: %s\nFloor: %d\n", p.SensorID, p.EquipmentType, p.FloorNumber)
	fmt.Fprintf(&b, "Severity: %s\nConfidence: %.1f%%\n", p.Severity, p.ConfidenceScore)
	fmt.Fprintf(&b, "Peak deviation: %.2f standard deviations across %d readings\n",
		p.PeakSeverityScore(), len(p.DataPoints))
	if !p.Start().IsZero() {
		fmt.Fprintf(&b, "Window: %s - %s\n", p.Start().Format(time.RFC3339), p.End().Format(time.RFC3339))
	}

	if len(p.Recommendations) > 0 {
		fmt.Fprintf(&b, "\nRecommended actions:\n")
		for _, r := range p.Recommendations {
			fmt.Fprintf(&b, "  [%s] %s: est. cost %.2f, est. savings %.2f, success %.0f%%",
				r.Priority, r.Description, r.EstimatedCost, r.EstimatedSavings, r.SuccessProbability)
			if r.ExceedsBudget {
				b.WriteString(" (exceeds budget)")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
