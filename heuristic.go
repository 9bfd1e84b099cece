package gridpath

import "math"

// Score is a path cost. Chebyshev and Manhattan values are integral and
// exact in a float64; Euclidean values are approximate by nature.
type Score = float64

// MetricID selects the heuristic pair used by a Searcher.
type MetricID uint8

const (
	// MetricChebyshev uses Chebyshev distance as the accurate edge cost and
	// Manhattan as the open-list estimate. Integer-valued and the default.
	MetricChebyshev MetricID = iota

	// MetricEuclidean uses Euclidean distance (sqrt) as the accurate edge
	// cost and Manhattan as the estimate.
	MetricEuclidean
)

// Manhattan returns |dx| + |dy|.
func Manhattan(a, b Position) Score {
	dx := abs32(delta(a.X, b.X))
	dy := abs32(delta(a.Y, b.Y))
	return Score(dx + dy)
}

// Chebyshev returns max(|dx|, |dy|).
func Chebyshev(a, b Position) Score {
	dx := abs32(delta(a.X, b.X))
	dy := abs32(delta(a.Y, b.Y))
	if dx < dy {
		return Score(dy)
	}
	return Score(dx)
}

// Euclidean returns sqrt(dx*dx + dy*dy).
func Euclidean(a, b Position) Score {
	dx := float64(delta(a.X, b.X))
	dy := float64(delta(a.Y, b.Y))
	return math.Sqrt(dx*dx + dy*dy)
}

// metricFuncs is the resolved heuristic pair. The accurate function scores
// edges already taken and must never be below the estimate along an optimal
// path, or results may be non-optimal.
type metricFuncs struct {
	accurate func(a, b Position) Score
	estimate func(a, b Position) Score
}

func metricFor(id MetricID) metricFuncs {
	if id == MetricEuclidean {
		return metricFuncs{accurate: Euclidean, estimate: Manhattan}
	}
	return metricFuncs{accurate: Chebyshev, estimate: Manhattan}
}
