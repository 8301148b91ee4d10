// Package correlate computes pairwise and lagged correlation between
// detected patterns to surface cascading or co-occurring failures across
// sensors and floors.
package correlate

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/domain"
)

// Config tunes the correlation scan.
type Config struct {
	// MaxLagSteps is how many timeline steps each direction the lag scan
	// covers.
	MaxLagSteps int `json:"max_lag_steps"`
	// MinOverlap is the smallest number of shared timeline slots two
	// patterns need before their correlation is computed; below it the pair
	// is recorded as incomparable.
	MinOverlap int `json:"min_overlap"`
	// MinTemporalCorrelation is the |r| floor for reporting a lagged pair.
	MinTemporalCorrelation float64 `json:"min_temporal_correlation"`
}

func DefaultConfig() Config {
	return Config{
		MaxLagSteps:            6,
		MinOverlap:             3,
		MinTemporalCorrelation: 0.3,
	}
}

// Analyzer computes correlation structure over a pattern set. Stateless.
type Analyzer struct {
	cfg Config
}

func New(cfg Config) *Analyzer {
	if cfg.MaxLagSteps <= 0 {
		cfg.MaxLagSteps = DefaultConfig().MaxLagSteps
	}
	if cfg.MinOverlap < 2 {
		cfg.MinOverlap = 2
	}
	return &Analyzer{cfg: cfg}
}

// alignedSeries is a pattern's severity scores reindexed onto the shared
// timeline. Slots inside [startSlot, endSlot] with no reading read as 0
// (no anomaly at that instant); slots outside the range are absent.
type alignedSeries struct {
	slots     map[int64]float64
	startSlot int64
	endSlot   int64
}

func (s alignedSeries) at(slot int64) (float64, bool) {
	if slot < s.startSlot || slot > s.endSlot {
		return 0, false
	}
	return s.slots[slot], true
}

// AnalyzeCorrelations builds the symmetric correlation matrix (diagonal 1.0,
// nil for pairs with no temporal overlap) and the best-aligning lag per
// correlated pair. An empty pattern set is a successful empty result; a
// pattern without data points is a CorrelationInputError.
func (a *Analyzer) AnalyzeCorrelations(ctx context.Context, patterns []domain.DetectedPattern) domain.CorrelationResult {
	start := time.Now()

	for _, p := range patterns {
		if len(p.DataPoints) == 0 {
			return domain.CorrelationResult{
				Success: false,
				Err: domain.NewEngineErrorf(domain.ErrCodeCorrelationInput,
					"pattern %s has no data points", p.PatternID),
			}
		}
	}

	ids := make([]string, len(patterns))
	for i, p := range patterns {
		ids[i] = p.PatternID
	}

	step := timelineStep(patterns)
	series := make([]alignedSeries, len(patterns))
	for i, p := range patterns {
		series[i] = align(p, step)
	}

	n := len(patterns)
	matrix := make([][]*float64, n)
	for i := range matrix {
		matrix[i] = make([]*float64, n)
		one := 1.0
		matrix[i][i] = &one
	}

	var temporal []domain.TemporalCorrelation
	for i := 0; i < n; i++ {
		if ctx != nil && ctx.Err() != nil {
			return domain.CorrelationResult{
				Success: false,
				Err:     domain.NewEngineError(domain.ErrCodeCanceled, "correlation analysis canceled by caller"),
			}
		}
		for j := i + 1; j < n; j++ {
			r, ok := a.pearsonAtLag(series[i], series[j], 0)
			if !ok {
				continue
			}
			r = clampUnit(r)
			ri, rj := r, r
			matrix[i][j] = &ri
			matrix[j][i] = &rj

			if lag, lr, found := a.bestLag(series[i], series[j]); found && math.Abs(lr) >= a.cfg.MinTemporalCorrelation {
				temporal = append(temporal, domain.TemporalCorrelation{
					PatternA:    ids[i],
					PatternB:    ids[j],
					Lag:         time.Duration(lag) * step,
					Correlation: clampUnit(lr),
				})
			}
		}
	}

	return domain.CorrelationResult{
		Success:              true,
		PatternIDs:           ids,
		Matrix:               matrix,
		TemporalCorrelations: temporal,
		ProcessingTimeMS:     time.Since(start).Milliseconds(),
	}
}

// pearsonAtLag correlates x(t) with y(t+lag) over the slots both series
// cover. ok is false when the overlap is too small to compare.
func (a *Analyzer) pearsonAtLag(x, y alignedSeries, lag int64) (float64, bool) {
	lo := max64(x.startSlot, y.startSlot-lag)
	hi := min64(x.endSlot, y.endSlot-lag)
	if hi-lo+1 < int64(a.cfg.MinOverlap) {
		return 0, false
	}

	var sx, sy, sxx, syy, sxy float64
	var count int
	for s := lo; s <= hi; s++ {
		xv, okx := x.at(s)
		yv, oky := y.at(s + lag)
		if !okx || !oky {
			continue
		}
		count++
		sx += xv
		sy += yv
		sxx += xv * xv
		syy += yv * yv
		sxy += xv * yv
	}
	if count < a.cfg.MinOverlap {
		return 0, false
	}

	nf := float64(count)
	cov := sxy - sx*sy/nf
	varX := sxx - sx*sx/nf
	varY := syy - sy*sy/nf
	if varX <= 0 || varY <= 0 {
		// constant over the overlap: comparable but uncorrelated
		return 0, true
	}
	return cov / math.Sqrt(varX*varY), true
}

// bestLag scans ±MaxLagSteps and returns the lag with the strongest |r|.
// A positive lag means x leads y.
func (a *Analyzer) bestLag(x, y alignedSeries) (int64, float64, bool) {
	var (
		bestLag int64
		bestR   float64
		found   bool
	)
	for lag := -int64(a.cfg.MaxLagSteps); lag <= int64(a.cfg.MaxLagSteps); lag++ {
		r, ok := a.pearsonAtLag(x, y, lag)
		if !ok {
			continue
		}
		if !found || math.Abs(r) > math.Abs(bestR) {
			bestLag, bestR, found = lag, r, true
		}
	}
	return bestLag, bestR, found
}

// timelineStep picks the shared timeline resolution: the smallest median
// inter-point spacing across patterns, falling back to a minute.
func timelineStep(patterns []domain.DetectedPattern) time.Duration {
	best := time.Duration(0)
	for _, p := range patterns {
		if len(p.DataPoints) < 2 {
			continue
		}
		gaps := make([]time.Duration, 0, len(p.DataPoints)-1)
		for i := 1; i < len(p.DataPoints); i++ {
			gaps = append(gaps, p.DataPoints[i].Timestamp.Sub(p.DataPoints[i-1].Timestamp))
		}
		sort.Slice(gaps, func(a, b int) bool { return gaps[a] < gaps[b] })
		med := gaps[len(gaps)/2]
		if med > 0 && (best == 0 || med < best) {
			best = med
		}
	}
	if best <= 0 {
		best = time.Minute
	}
	return best
}

func align(p domain.DetectedPattern, step time.Duration) alignedSeries {
	s := alignedSeries{slots: make(map[int64]float64, len(p.DataPoints))}
	for i, dp := range p.DataPoints {
		slot := dp.Timestamp.UnixNano() / int64(step)
		if score, ok := s.slots[slot]; !ok || dp.SeverityScore > score {
			s.slots[slot] = dp.SeverityScore
		}
		if i == 0 || slot < s.startSlot {
			s.startSlot = slot
		}
		if i == 0 || slot > s.endSlot {
			s.endSlot = slot
		}
	}
	return s
}

func clampUnit(v float64) float64 {
	return math.Min(1, math.Max(-1, v))
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
