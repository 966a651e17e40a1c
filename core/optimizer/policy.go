package optimizer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPolicy is returned for policy names outside Policies().
var ErrUnknownPolicy = errors.New("unknown optimization policy")

// Policy selects the objective of a grid search.
type Policy string

const (
	// MinPeak minimises the after-curve peak.
	MinPeak Policy = "min-peak"
	// MinCO2 minimises after-curve emissions and also reports the best
	// peak/emissions trade-off.
	MinCO2 Policy = "min-co2"
	// IdealBalance minimises the mean of normalised peak, cost, emissions,
	// the missing participation and the distance from an even grid/price
	// split.
	IdealBalance Policy = "ideal-balance"
	// IdealPeakConstrained minimises the peak among points that save both
	// money and CO2.
	IdealPeakConstrained Policy = "ideal-peak-constrained"
)

// Policies lists every supported policy.
func Policies() []Policy {
	return []Policy{MinPeak, MinCO2, IdealBalance, IdealPeakConstrained}
}

// ParsePolicy maps a name to a Policy.
func ParsePolicy(name string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Policies() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}
