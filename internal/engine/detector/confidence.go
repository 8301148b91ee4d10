package detector

import "math"

// statisticalConfidence maps the peak |z| of a pattern to the two-sided
// normal tail mass, on a 0-100 scale. Monotonically increasing in |z|:
// z=2 gives ~95.4, z=3 ~99.7.
func statisticalConfidence(peakZ float64) float64 {
	return clamp(100*math.Erf(peakZ/math.Sqrt2), 0, 100)
}

// shapeScore is the secondary pattern-shape heuristic used by the ensemble
// method, in [0,1]. Two components:
//   - run length: longer runs of consecutive anomalous readings are stronger
//     corroboration than a lone spike (saturates at 4 points);
//   - sign consistency: the fraction of readings deviating in the pattern's
//     majority direction.
func shapeScore(zs []float64) float64 {
	if len(zs) == 0 {
		return 0
	}
	run := math.Min(float64(len(zs))/4.0, 1.0)

	var pos int
	for _, z := range zs {
		if z >= 0 {
			pos++
		}
	}
	majority := pos
	if n := len(zs) - pos; n > majority {
		majority = n
	}
	sign := float64(majority) / float64(len(zs))

	return 0.6*run + 0.4*sign
}

// ensembleConfidence is the documented fixed-weight combination of the
// statistical confidence and the shape heuristic:
//
//	confidence = 0.7*statistical + 0.3*(100*shape)
//
// Deterministic, and still monotone in |z| since the shape term does not
// depend on magnitude.
func ensembleConfidence(peakZ float64, zs []float64) float64 {
	return clamp(0.7*statisticalConfidence(peakZ)+0.3*100*shapeScore(zs), 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
