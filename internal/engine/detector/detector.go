// Package detector converts raw sensor time series into detected anomalous
// patterns with confidence scores. It is pure and stateless: every call
// rebuilds its baselines from the supplied points, so concurrent use needs
// no synchronization.
package detector

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/domain"
)

// Detector scores readings against per-bucket baselines and groups the
// anomalous ones into patterns.
type Detector struct {
	cfg Config
}

// New validates cfg eagerly and returns a Detector. An invalid config is an
// InvalidConfiguration error; no data is ever processed with one.
func New(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Detector{cfg: cfg}, nil
}

// Config returns the detector's configuration.
func (d *Detector) Config() Config { return d.cfg }

type sensorSeries struct {
	id        string
	equipment domain.EquipmentType
	floor     int
	points    []domain.TimeSeriesPoint
}

// DetectAnomalies analyzes points within the given window. Failures are
// reported in the result (Success=false, typed Err), never panicked:
// EmptyDataset for no points, InsufficientData when below the configured
// minimum, Canceled when ctx is done mid-run.
func (d *Detector) DetectAnomalies(ctx context.Context, points []domain.TimeSeriesPoint, window domain.AnalysisWindow) domain.DetectionResult {
	start := time.Now()

	if len(points) == 0 {
		return failure(domain.NewEngineError(domain.ErrCodeEmptyDataset, "no data points supplied"))
	}
	if len(points) < d.cfg.MinimumDataPoints {
		return failure(domain.NewEngineErrorf(domain.ErrCodeInsufficientData,
			"at least %d data points required, got %d", d.cfg.MinimumDataPoints, len(points)))
	}
	if err := window.Validate(); err != nil {
		return failure(err.(*domain.EngineError))
	}

	series := partitionBySensor(points)
	scoreCutoff := window.End.Add(-d.cfg.LookbackPeriod)

	var (
		patterns    []domain.DetectedPattern
		bucketTotal int
		anomalous   int
	)
	for _, s := range series {
		if ctx != nil && ctx.Err() != nil {
			return failure(domain.NewEngineError(domain.ErrCodeCanceled, "detection canceled by caller"))
		}
		b := buildBaseline(d.cfg, window.Granularity, s.points)
		bucketTotal += b.bucketCount()

		found, flagged := d.detectSensor(s, b, scoreCutoff)
		patterns = append(patterns, found...)
		anomalous += flagged
	}

	elapsed := time.Since(start)
	if elapsed <= 0 {
		elapsed = time.Microsecond
	}

	result := domain.DetectionResult{
		Success:  true,
		Patterns: patterns,
		Summary:  summarize(points, bucketTotal, anomalous, len(series)),
		Metrics: domain.PerformanceMetrics{
			DurationMS:      elapsed.Milliseconds(),
			PointsPerSecond: float64(len(points)) / elapsed.Seconds(),
		},
	}
	log.Debug().
		Int("points", len(points)).
		Int("patterns", len(patterns)).
		Dur("elapsed", elapsed).
		Msg("anomaly detection complete")
	return result
}

// detectSensor scores one sensor's readings and merges closely spaced
// anomalies into patterns. Returns the patterns and the number of flagged
// readings.
func (d *Detector) detectSensor(s sensorSeries, b *baseline, scoreCutoff time.Time) ([]domain.DetectedPattern, int) {
	threshold := d.cfg.effectiveThreshold()
	maxGap := 2 * medianInterval(s.points)

	var (
		patterns []domain.DetectedPattern
		current  []domain.DataPoint
		zs       []float64
		lastTS   time.Time
		flagged  int
	)

	flush := func() {
		if len(current) == 0 {
			return
		}
		patterns = append(patterns, d.buildPattern(s, current, zs))
		current = nil
		zs = nil
	}

	for _, p := range s.points {
		if p.Timestamp.Before(scoreCutoff) {
			continue
		}
		z := b.score(p)
		if math.Abs(z) <= threshold {
			continue
		}
		flagged++
		if len(current) > 0 && maxGap > 0 && p.Timestamp.Sub(lastTS) > maxGap {
			flush()
		}
		current = append(current, domain.DataPoint{
			Timestamp:     p.Timestamp,
			Value:         p.Value,
			SeverityScore: math.Abs(z),
		})
		zs = append(zs, z)
		lastTS = p.Timestamp
	}
	flush()

	return patterns, flagged
}

func (d *Detector) buildPattern(s sensorSeries, dps []domain.DataPoint, zs []float64) domain.DetectedPattern {
	var peak float64
	for _, dp := range dps {
		if dp.SeverityScore > peak {
			peak = dp.SeverityScore
		}
	}

	var confidence float64
	if d.cfg.ConfidenceMethod == ConfidenceEnsemble {
		confidence = ensembleConfidence(peak, zs)
	} else {
		confidence = statisticalConfidence(peak)
	}

	return domain.DetectedPattern{
		PatternID:       uuid.NewString(),
		SensorID:        s.id,
		EquipmentType:   s.equipment,
		FloorNumber:     s.floor,
		ConfidenceScore: confidence,
		Severity:        coarseSeverity(confidence, peak),
		DataPoints:      dps,
		DetectedAt:      time.Now().UTC(),
	}
}

// coarseSeverity is the detection-time default tier; the classifier may
// refine it with business context.
func coarseSeverity(confidence, peak float64) domain.Severity {
	switch {
	case confidence >= 90 && peak > 3.0:
		return domain.SeverityCritical
	case confidence >= 70 && peak > 2.0:
		return domain.SeverityWarning
	default:
		return domain.SeverityInfo
	}
}

func partitionBySensor(points []domain.TimeSeriesPoint) []sensorSeries {
	index := make(map[string]int)
	var series []sensorSeries
	for _, p := range points {
		i, ok := index[p.SensorID]
		if !ok {
			i = len(series)
			index[p.SensorID] = i
			series = append(series, sensorSeries{
				id:        p.SensorID,
				equipment: p.EquipmentType,
				floor:     p.FloorNumber,
			})
		}
		series[i].points = append(series[i].points, p)
	}
	for i := range series {
		pts := series[i].points
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].Timestamp.Before(pts[b].Timestamp) })
	}
	return series
}

// medianInterval is the median spacing between consecutive readings, used
// as the unit for the pattern merge gap.
func medianInterval(points []domain.TimeSeriesPoint) time.Duration {
	if len(points) < 2 {
		return 0
	}
	gaps := make([]time.Duration, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		gaps = append(gaps, points[i].Timestamp.Sub(points[i-1].Timestamp))
	}
	sort.Slice(gaps, func(a, b int) bool { return gaps[a] < gaps[b] })
	return gaps[len(gaps)/2]
}

func summarize(points []domain.TimeSeriesPoint, buckets, anomalous, sensors int) domain.StatisticalSummary {
	var stats runningStats
	min, max := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		stats.add(p.Value)
		if p.Value < min {
			min = p.Value
		}
		if p.Value > max {
			max = p.Value
		}
	}
	return domain.StatisticalSummary{
		PointCount:  len(points),
		SensorCount: sensors,
		Mean:        stats.mean,
		StdDev:      stats.stdDev(),
		Min:         min,
		Max:         max,
		BucketCount: buckets,
		AnomalyRate: float64(anomalous) / float64(len(points)),
	}
}

func failure(err *domain.EngineError) domain.DetectionResult {
	return domain.DetectionResult{Success: false, Err: err}
}
