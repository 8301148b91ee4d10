package repository

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/domain"
)

// AnalysisRun is one persisted pipeline invocation, recorded by the service
// layer. The engine itself never writes here.
type AnalysisRun struct {
	ID            string    `db:"id" json:"id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	WindowStart   time.Time `db:"window_start" json:"window_start"`
	WindowEnd     time.Time `db:"window_end" json:"window_end"`
	PointCount    int       `db:"point_count" json:"point_count"`
	PatternCount  int       `db:"pattern_count" json:"pattern_count"`
	CriticalCount int       `db:"critical_count" json:"critical_count"`
	DurationMS    int64     `db:"duration_ms" json:"duration_ms"`
}

// PatternRecord is a flattened critical/warning pattern kept for the runs view.
type PatternRecord struct {
	PatternID  string               `db:"pattern_id" json:"pattern_id"`
	RunID      string               `db:"run_id" json:"run_id"`
	SensorID   string               `db:"sensor_id" json:"sensor_id"`
	Equipment  domain.EquipmentType `db:"equipment_type" json:"equipment_type"`
	Floor      int                  `db:"floor_number" json:"floor_number"`
	Severity   domain.Severity      `db:"severity" json:"severity"`
	Confidence float64              `db:"confidence_score" json:"confidence_score"`
	RiskScore  float64              `db:"risk_score" json:"risk_score"`
	DetectedAt time.Time            `db:"detected_at" json:"detected_at"`
}

type Repos struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repos { return &Repos{db: db} }

func (r *Repos) InsertRun(run *AnalysisRun) error {
	_, err := r.db.NamedExec(`INSERT INTO analysis_runs
		(id, created_at, window_start, window_end, point_count, pattern_count, critical_count, duration_ms)
		VALUES (:id, :created_at, :window_start, :window_end, :point_count, :pattern_count, :critical_count, :duration_ms)`, run)
	return err
}

func (r *Repos) InsertPattern(p *PatternRecord) error {
	_, err := r.db.NamedExec(`INSERT INTO pattern_records
		(pattern_id, run_id, sensor_id, equipment_type, floor_number, severity, confidence_score, risk_score, detected_at)
		VALUES (:pattern_id, :run_id, :sensor_id, :equipment_type, :floor_number, :severity, :confidence_score, :risk_score, :detected_at)`, p)
	return err
}

func (r *Repos) ListRuns(limit int) ([]AnalysisRun, error) {
	var out []AnalysisRun
	err := r.db.Select(&out, `SELECT id, created_at, window_start, window_end, point_count, pattern_count, critical_count, duration_ms
		FROM analysis_runs ORDER BY created_at DESC LIMIT $1`, limit)
	return out, err
}

func (r *Repos) ListPatternsForRun(runID string) ([]PatternRecord, error) {
	var out []PatternRecord
	err := r.db.Select(&out, `SELECT pattern_id, run_id, sensor_id, equipment_type, floor_number, severity, confidence_score, risk_score, detected_at
		FROM pattern_records WHERE run_id = $1 ORDER BY detected_at`, runID)
	return out, err
}
