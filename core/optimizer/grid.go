package optimizer

import (
	"fmt"

	"github.com/kilianp07/flexicity/core/stats"
)

// GridStep is the spacing between grid values in percent.
const GridStep = 10

// Point is one (participation, price weight) pair in percent.
type Point struct {
	FlexPct  int `json:"flex_pct"`
	PricePct int `json:"price_pct"`
}

// GridPct returns the grid weight 100-PricePct.
func (p Point) GridPct() int { return 100 - p.PricePct }

func (p Point) String() string {
	return fmt.Sprintf("flex=%d%% grid=%d%% price=%d%%", p.FlexPct, p.GridPct(), p.PricePct)
}

// Grid returns the 121 points in canonical scan order: participation
// ascending in the outer loop, price weight ascending in the inner loop.
func Grid() []Point {
	n := 100/GridStep + 1
	pts := make([]Point, 0, n*n)
	for p := 0; p <= 100; p += GridStep {
		for w := 0; w <= 100; w += GridStep {
			pts = append(pts, Point{FlexPct: p, PricePct: w})
		}
	}
	return pts
}

// Evaluation is the stats of a full recompute at one grid point.
type Evaluation struct {
	Point
	Stats stats.Stats `json:"stats"`
}
