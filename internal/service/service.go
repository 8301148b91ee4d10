package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/config"
	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/domain"
	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/engine"
	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/notify"
	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/repository"
)

type Services struct {
	Repos    *repository.Repos
	Analysis *AnalysisService
}

// New builds the service layer around an engine configured from the
// environment. db may be nil (ingestor without persistence); runs are then
// not recorded.
func New(db *sqlx.DB) (*Services, error) {
	eng, err := engine.New(config.EngineConfig())
	if err != nil {
		return nil, err
	}
	var repos *repository.Repos
	if db != nil {
		repos = repository.New(db)
	}
	return &Services{
		Repos:    repos,
		Analysis: &AnalysisService{engine: eng, repos: repos},
	}, nil
}

// AnalysisService runs the pipeline for the API and ingest paths and
// records each run. The buffer is the only mutable state in the process;
// the engine underneath stays pure.
type AnalysisService struct {
	engine *engine.Engine
	repos  *repository.Repos

	mu     sync.Mutex
	buffer []domain.TimeSeriesPoint
}

// Analyze runs the full pipeline, persists the run summary and any
// warning/critical patterns, and builds dispatcher payloads for patterns at
// or above the configured notification threshold.
func (s *AnalysisService) Analyze(ctx context.Context, points []domain.TimeSeriesPoint, window domain.AnalysisWindow, equip domain.EquipmentContext) (engine.PipelineResult, []notify.Payload) {
	result := s.engine.Run(ctx, points, window, equip)
	if !result.Detection.Success {
		log.Warn().
			Str("code", string(result.Detection.Err.Code)).
			Str("message", result.Detection.Err.Message).
			Msg("analysis failed")
		return result, nil
	}

	payloads := notify.BuildPayloads(result.Patterns, config.NotifyMinSeverity())
	s.record(points, window, result)

	log.Info().
		Int("points", len(points)).
		Int("patterns", len(result.Detection.Patterns)).
		Int("notifications", len(payloads)).
		Msg("analysis complete")
	return result, payloads
}

func (s *AnalysisService) record(points []domain.TimeSeriesPoint, window domain.AnalysisWindow, result engine.PipelineResult) {
	if s.repos == nil {
		return
	}

	risk := make(map[string]float64, len(result.Classifications))
	for _, c := range result.Classifications {
		risk[c.PatternID] = c.RiskScore
	}

	var critical int
	for _, p := range result.Patterns {
		if p.Severity == domain.SeverityCritical {
			critical++
		}
	}

	run := &repository.AnalysisRun{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		WindowStart:   window.Start,
		WindowEnd:     window.End,
		PointCount:    len(points),
		PatternCount:  len(result.Patterns),
		CriticalCount: critical,
		DurationMS:    result.Detection.Metrics.DurationMS,
	}
	if err := s.repos.InsertRun(run); err != nil {
		log.Error().Err(err).Msg("persist analysis run failed")
		return
	}

	for _, p := range result.Patterns {
		if p.Severity == domain.SeverityInfo {
			continue
		}
		rec := &repository.PatternRecord{
			PatternID:  p.PatternID,
			RunID:      run.ID,
			SensorID:   p.SensorID,
			Equipment:  p.EquipmentType,
			Floor:      p.FloorNumber,
			Severity:   p.Severity,
			Confidence: p.ConfidenceScore,
			RiskScore:  risk[p.PatternID],
			DetectedAt: p.DetectedAt,
		}
		if err := s.repos.InsertPattern(rec); err != nil {
			log.Error().Err(err).Str("pattern", p.PatternID).Msg("persist pattern failed")
		}
	}
}

// FromMQTT buffers one reading published by the sensor feed.
func (s *AnalysisService) FromMQTT(topic string, payload []byte) error {
	var p domain.TimeSeriesPoint
	if err := json.Unmarshal(payload, &p); err != nil {
		return err
	}
	s.mu.Lock()
	s.buffer = append(s.buffer, p)
	s.mu.Unlock()
	return nil
}

// BufferedPoints reports how many readings are waiting for the next flush.
func (s *AnalysisService) BufferedPoints() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffer)
}

// FlushWindow drains the buffer and analyzes it over the window the
// buffered readings span. Returns nil when the buffer is empty.
func (s *AnalysisService) FlushWindow(ctx context.Context) (*engine.PipelineResult, []notify.Payload) {
	s.mu.Lock()
	points := s.buffer
	s.buffer = nil
	s.mu.Unlock()

	if len(points) == 0 {
		return nil, nil
	}

	window := windowFor(points)
	result, payloads := s.Analyze(ctx, points, window, config.DefaultEquipmentContext())
	return &result, payloads
}

// windowFor derives the analysis window from the span of buffered readings.
func windowFor(points []domain.TimeSeriesPoint) domain.AnalysisWindow {
	start, end := points[0].Timestamp, points[0].Timestamp
	for _, p := range points[1:] {
		if p.Timestamp.Before(start) {
			start = p.Timestamp
		}
		if p.Timestamp.After(end) {
			end = p.Timestamp
		}
	}
	return domain.AnalysisWindow{
		Start:       start,
		End:         end.Add(time.Second),
		Granularity: domain.GranularityHour,
	}
}
