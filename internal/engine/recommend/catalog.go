package recommend

import "github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/domain"

// actionTemplate is one candidate maintenance action before costing.
// Complexity scales the base cost; baseProbability is the success rate for
// new equipment with no failure history.
type actionTemplate struct {
	actionType      string
	description     string
	baseCost        float64
	baseHours       float64
	complexity      float64
	baseProbability float64
}

// catalog maps equipment type x severity to candidate actions. It is
// exhaustive over domain.AllEquipmentTypes and all three severities; the
// package test walks the full cross product.
var catalog = map[domain.EquipmentType]map[domain.Severity][]actionTemplate{
	domain.EquipmentHVAC: {
		domain.SeverityCritical: {
			{"emergency_inspection", "Dispatch technician for immediate HVAC inspection", 450, 4, 1.0, 92},
			{"replace_filter", "Replace clogged air filters restricting airflow", 120, 1.5, 0.6, 88},
			{"recalibrate_controls", "Recalibrate thermostat and damper controls", 300, 3, 0.8, 85},
		},
		domain.SeverityWarning: {
			{"inspect_airflow", "Inspect duct airflow and balance registers", 180, 2, 0.7, 90},
			{"clean_coils", "Clean evaporator and condenser coils", 220, 3, 0.7, 87},
		},
		domain.SeverityInfo: {
			{"schedule_routine_check", "Add unit to next routine maintenance round", 90, 1, 0.5, 95},
		},
	},
	domain.EquipmentLighting: {
		domain.SeverityCritical: {
			{"replace_ballast", "Replace failing ballast or driver", 160, 1.5, 0.6, 90},
			{"inspect_circuit", "Inspect lighting circuit for intermittent faults", 240, 2.5, 0.8, 84},
		},
		domain.SeverityWarning: {
			{"replace_lamps", "Replace degraded lamps in affected zone", 110, 1, 0.5, 93},
		},
		domain.SeverityInfo: {
			{"schedule_survey", "Schedule lighting-level survey for the floor", 70, 1, 0.4, 96},
		},
	},
	domain.EquipmentPower: {
		domain.SeverityCritical: {
			{"inspect_distribution_panel", "Inspect distribution panel for overload damage", 520, 4, 1.0, 88},
			{"thermal_scan", "Run infrared thermal scan of feeders and breakers", 380, 3, 0.8, 91},
			{"load_rebalance", "Rebalance loads across phases", 340, 5, 0.9, 82},
		},
		domain.SeverityWarning: {
			{"tighten_connections", "Torque-check and tighten panel connections", 200, 2, 0.6, 92},
			{"load_audit", "Audit circuit loading against rated capacity", 260, 3, 0.7, 89},
		},
		domain.SeverityInfo: {
			{"log_consumption_review", "Review consumption logs for slow drift", 80, 1, 0.4, 95},
		},
	},
	domain.EquipmentWater: {
		domain.SeverityCritical: {
			{"isolate_leak", "Isolate suspected leak and inspect supply line", 400, 3, 0.9, 89},
			{"replace_valve", "Replace malfunctioning control valve", 310, 2.5, 0.8, 86},
		},
		domain.SeverityWarning: {
			{"pressure_test", "Pressure-test the affected riser", 230, 2, 0.7, 90},
		},
		domain.SeverityInfo: {
			{"meter_verification", "Verify meter readings against manual gauge", 75, 1, 0.4, 96},
		},
	},
	domain.EquipmentSecurity: {
		domain.SeverityCritical: {
			{"replace_sensor", "Replace faulted security sensor", 190, 1.5, 0.6, 91},
			{"inspect_power_supply", "Inspect sensor power supply and wiring", 250, 2.5, 0.8, 85},
		},
		domain.SeverityWarning: {
			{"recalibrate_sensor", "Recalibrate sensor detection thresholds", 140, 1.5, 0.5, 92},
		},
		domain.SeverityInfo: {
			{"firmware_update", "Apply pending sensor firmware update", 60, 1, 0.4, 94},
		},
	},
}

// candidates returns the templates for an equipment/severity pair. Unknown
// equipment types yield nothing rather than a panic; the pattern still
// flows through with an empty recommendation list.
func candidates(e domain.EquipmentType, s domain.Severity) []actionTemplate {
	bySeverity, ok := catalog[e]
	if !ok {
		return nil
	}
	return bySeverity[s]
}
