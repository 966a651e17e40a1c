package catalog

import (
	"fmt"

	"github.com/kilianp07/flexicity/core/model"
)

// DefaultSpecs returns the 54-asset demo portfolio: four large sites plus
// neighbourhood EV chargers, dishwashers, office HVAC, cold storage, bus
// depots charging over midnight and community batteries.
func DefaultSpecs() []model.AssetSpec {
	specs := []model.AssetSpec{
		model.NewAssetSpec("City EV fleet", "Fast chargers (EV)", 80, 4, 17, 24),
		model.NewAssetSpec("Office block A", "HVAC", 30, 3, 14, 20),
		fixed(model.NewAssetSpec("Supermarket", "Fridge defrost", 20, 4, 0, 24)),
		model.NewAssetSpec("Residential block", "EV chargers (EV)", 40, 6, 18, 24),
	}
	for i := 0; i < 10; i++ {
		specs = append(specs, model.NewAssetSpec(
			fmt.Sprintf("Res block EV #%d", i+1), "EV chargers (EV)",
			6+float64(i%4)*1.5, 3+i%3, 18+i%3, 24))
	}
	for i := 0; i < 10; i++ {
		specs = append(specs, fixed(model.NewAssetSpec(
			fmt.Sprintf("Household #%d", i+1), "Dishwasher (fixed)",
			1.5+float64(i%2)*0.5, 2, 20+i%3, 24)))
	}
	for i := 0; i < 10; i++ {
		specs = append(specs, model.NewAssetSpec(
			fmt.Sprintf("Office block #%d", i+1), "HVAC",
			15+float64(i)*1.5, 6+i%3, 7, 19))
	}
	for i := 0; i < 8; i++ {
		start := (i % 4) * 6
		specs = append(specs, model.NewAssetSpec(
			fmt.Sprintf("Supermarket #%d", i+1), "Cold storage",
			8+float64(i%3)*2, 3, start, start+6))
	}
	for i := 0; i < 6; i++ {
		specs = append(specs, model.NewAssetSpec(
			fmt.Sprintf("Bus depot #%d", i+1), "Bus chargers (EV)",
			30+float64(i)*5, 4+i%3, 22, 6))
	}
	for i := 0; i < 6; i++ {
		specs = append(specs, model.NewAssetSpec(
			fmt.Sprintf("Community battery #%d", i+1), "Battery charging",
			10+float64(i)*2, 3+i%2, 0, 7))
	}
	return specs
}

func fixed(s model.AssetSpec) model.AssetSpec {
	s.Variable = false
	return s
}
