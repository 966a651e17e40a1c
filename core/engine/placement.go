package engine

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/flexicity/core/model"
)

// schedule is the outcome of one recompute for a single asset.
type schedule struct {
	before []int
	after  []int
	// shifted is false when the asset was short-circuited and its after
	// hours are a copy of its before hours.
	shifted       bool
	participating float64
	remaining     float64
}

// naiveHours returns the first duration hours of the effective window.
func naiveHours(a model.Asset) []int {
	w := model.EffectiveWindow(a.StartHour, a.EndHour)
	d := model.ClampDuration(a.DurationH, len(w))
	return append([]int(nil), w[:d]...)
}

// placementOrder returns indexes of the given assets sorted by descending
// power, keeping catalog order among equal powers.
func placementOrder(assets []model.Asset) []int {
	idx := make([]int, len(assets))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return assets[idx[i]].PowerKW > assets[idx[j]].PowerKW
	})
	return idx
}

// scoreWindow scores every window hour against the load read at call time.
// Lower is better.
func scoreWindow(window []int, load, prices model.Curve, priceWeight float64) []float64 {
	loads := make([]float64, len(window))
	costs := make([]float64, len(window))
	for i, h := range window {
		loads[i] = load[h]
		costs[i] = prices[h]
	}
	loLoad, hiLoad := floats.Min(loads), floats.Max(loads)
	loPrice, hiPrice := floats.Min(costs), floats.Max(costs)

	gridWeight := 1 - priceWeight
	scores := make([]float64, len(window))
	for i := range window {
		scores[i] = gridWeight*norm(loads[i], loLoad, hiLoad) + priceWeight*norm(costs[i], loPrice, hiPrice)
	}
	return scores
}

func norm(x, lo, hi float64) float64 {
	if hi > lo {
		return (x - lo) / (hi - lo)
	}
	return 0
}

// pickVariable greedily takes duration minimum-score hours. The first
// minimum in the remaining candidate list wins.
func pickVariable(window []int, scores []float64, duration int) []int {
	hours := append([]int(nil), window...)
	sc := append([]float64(nil), scores...)
	chosen := make([]int, 0, duration)
	for k := 0; k < duration && len(hours) > 0; k++ {
		best := 0
		for i := 1; i < len(sc); i++ {
			if sc[i] < sc[best] {
				best = i
			}
		}
		chosen = append(chosen, hours[best])
		hours = append(hours[:best], hours[best+1:]...)
		sc = append(sc[:best], sc[best+1:]...)
	}
	return chosen
}

// pickBlock returns the contiguous run of duration window positions with
// the lowest score sum. The leftmost block wins ties.
func pickBlock(window []int, scores []float64, duration int) []int {
	if duration <= 0 || len(window) == 0 {
		return nil
	}
	best, bestSum := 0, 0.0
	for start := 0; start+duration <= len(window); start++ {
		sum := 0.0
		for _, s := range scores[start : start+duration] {
			sum += s
		}
		if start == 0 || sum < bestSum {
			best, bestSum = start, sum
		}
	}
	return append([]int(nil), window[best:best+duration]...)
}

func priceSum(prices model.Curve, hours []int) float64 {
	sum := 0.0
	for _, h := range hours {
		sum += prices[h]
	}
	return sum
}
