package optimizer

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// argmin returns the first index with the strictly lowest score among the
// accepted indexes, or -1 when none is accepted.
func argmin(n int, score func(i int) float64, accept func(i int) bool) (int, float64) {
	best, bestScore := -1, 0.0
	for i := 0; i < n; i++ {
		if accept != nil && !accept(i) {
			continue
		}
		s := score(i)
		if best < 0 || s < bestScore {
			best, bestScore = i, s
		}
	}
	return best, bestScore
}

// normalizer maps values to [0,1] using bounds taken over all grid points.
type normalizer struct{ lo, hi float64 }

func newNormalizer(values []float64) normalizer {
	return normalizer{lo: floats.Min(values), hi: floats.Max(values)}
}

func (n normalizer) apply(x float64) float64 {
	if n.hi > n.lo {
		return (x - n.lo) / (n.hi - n.lo)
	}
	return 0
}

func column(evals []Evaluation, f func(Evaluation) float64) []float64 {
	out := make([]float64, len(evals))
	for i, e := range evals {
		out[i] = f(e)
	}
	return out
}

func peakOf(e Evaluation) float64 { return e.Stats.PeakAfter }
func co2Of(e Evaluation) float64  { return e.Stats.CO2After }
func costOf(e Evaluation) float64 { return e.Stats.CostAfter }

// balancedScores averages normalised peak and normalised emissions.
func balancedScores(evals []Evaluation) []float64 {
	np := newNormalizer(column(evals, peakOf))
	nc := newNormalizer(column(evals, co2Of))
	out := make([]float64, len(evals))
	for i, e := range evals {
		out[i] = 0.5*np.apply(peakOf(e)) + 0.5*nc.apply(co2Of(e))
	}
	return out
}

// idealScores averages five terms: normalised peak, cost and emissions, the
// missing participation and the distance from an even split.
func idealScores(evals []Evaluation) []float64 {
	np := newNormalizer(column(evals, peakOf))
	ncost := newNormalizer(column(evals, costOf))
	nc := newNormalizer(column(evals, co2Of))
	out := make([]float64, len(evals))
	for i, e := range evals {
		flexPenalty := 1 - float64(e.FlexPct)/100
		splitPenalty := math.Abs(float64(e.PricePct)-50) / 50
		out[i] = (np.apply(peakOf(e)) + ncost.apply(costOf(e)) + nc.apply(co2Of(e)) + flexPenalty + splitPenalty) / 5
	}
	return out
}

// savesMoneyAndCO2 holds when neither cost nor emissions got worse.
func savesMoneyAndCO2(e Evaluation) bool {
	return e.Stats.CostSaving >= 0 && e.Stats.CO2SavingDay >= 0
}
