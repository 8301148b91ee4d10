package detector

import (
	"math"
	"time"

	"github.com/chrimar3/IoT-Transmission-Failure-Analysis-Platform-sub000/internal/domain"
)

// outlierZ is the preliminary |z| beyond which a reading counts as extreme
// for cap/remove handling.
const outlierZ = 3.5

// minBucketSamples is the smallest bucket population whose own statistics
// are trusted for scoring; below it the sensor-level baseline is used.
const minBucketSamples = 3

// minSeasonalSamples is the smallest bucket population used to estimate a
// seasonal offset for that bucket.
const minSeasonalSamples = 2

// runningStats accumulates mean and variance in one pass (Welford).
type runningStats struct {
	n    int
	mean float64
	m2   float64
}

func (s *runningStats) add(v float64) {
	s.n++
	delta := v - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (v - s.mean)
}

func (s *runningStats) stdDev() float64 {
	if s.n < 2 {
		return 0
	}
	return math.Sqrt(s.m2 / float64(s.n))
}

// bucketKey maps a timestamp to its comparison bucket: minute-of-day,
// hour-of-day, or day-of-week depending on granularity.
func bucketKey(t time.Time, g domain.Granularity) int {
	switch g {
	case domain.GranularityMinute:
		return t.Hour()*60 + t.Minute()
	case domain.GranularityDay:
		return int(t.Weekday())
	default:
		return t.Hour()
	}
}

// baseline holds the per-sensor expected-value model the scorer compares
// readings against. Built fresh on every call; nothing is cached across
// invocations.
type baseline struct {
	cfg         Config
	granularity domain.Granularity

	buckets     map[int]*runningStats
	sensor      runningStats
	seasonal    map[int]float64
	residualStd float64
}

// buildBaseline runs the bounded passes over one sensor's readings:
// preliminary stats to identify extremes, treated accumulation per bucket,
// then seasonal offsets and (for the decomposition algorithm) residual
// spread.
func buildBaseline(cfg Config, g domain.Granularity, points []domain.TimeSeriesPoint) *baseline {
	b := &baseline{
		cfg:         cfg,
		granularity: g,
		buckets:     make(map[int]*runningStats),
		seasonal:    make(map[int]float64),
	}

	var prelim runningStats
	for _, p := range points {
		prelim.add(p.Value)
	}
	prelimStd := prelim.stdDev()

	isExtreme := func(v float64) bool {
		return prelimStd > 0 && math.Abs(v-prelim.mean)/prelimStd > outlierZ
	}
	capValue := func(v float64) float64 {
		hi := prelim.mean + outlierZ*prelimStd
		lo := prelim.mean - outlierZ*prelimStd
		return math.Min(hi, math.Max(lo, v))
	}

	// treated returns the value that feeds the baseline and whether it
	// participates at all.
	treated := func(v float64) (float64, bool) {
		if !isExtreme(v) {
			return v, true
		}
		switch cfg.OutlierHandling {
		case OutlierCap:
			return capValue(v), true
		case OutlierRemove:
			return 0, false
		default:
			return v, true
		}
	}

	for _, p := range points {
		v, ok := treated(p.Value)
		if !ok {
			continue
		}
		k := bucketKey(p.Timestamp, g)
		bs, exists := b.buckets[k]
		if !exists {
			bs = &runningStats{}
			b.buckets[k] = bs
		}
		bs.add(v)
		b.sensor.add(v)
	}

	for k, bs := range b.buckets {
		if bs.n >= minSeasonalSamples {
			b.seasonal[k] = bs.mean - b.sensor.mean
		}
	}

	if cfg.Algorithm == AlgorithmSeasonalDecomposition {
		var res runningStats
		for _, p := range points {
			v, ok := treated(p.Value)
			if !ok {
				continue
			}
			res.add(v - b.sensor.mean - b.seasonal[bucketKey(p.Timestamp, g)])
		}
		b.residualStd = res.stdDev()
	}

	return b
}

// score returns the z-score of a reading against its baseline. A zero
// spread (constant series, tiny bucket) scores 0 rather than dividing out.
func (b *baseline) score(p domain.TimeSeriesPoint) float64 {
	k := bucketKey(p.Timestamp, b.granularity)

	if b.cfg.Algorithm == AlgorithmSeasonalDecomposition {
		if b.residualStd <= 0 {
			return 0
		}
		return (p.Value - b.sensor.mean - b.seasonal[k]) / b.residualStd
	}

	if bs, ok := b.buckets[k]; ok && bs.n >= minBucketSamples {
		if sd := bs.stdDev(); sd > 0 {
			return (p.Value - bs.mean) / sd
		}
	}

	sd := b.sensor.stdDev()
	if sd <= 0 {
		return 0
	}
	expected := b.sensor.mean
	if b.cfg.SeasonalAdjustment {
		expected += b.seasonal[k]
	}
	return (p.Value - expected) / sd
}

// bucketCount reports how many comparison buckets this baseline holds.
func (b *baseline) bucketCount() int {
	return len(b.buckets)
}
