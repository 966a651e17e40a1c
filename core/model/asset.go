package model

import "strings"

// AssetID identifies an asset in the catalog.
type AssetID string

// Asset is a flexible electrical load and its latest schedule.
type Asset struct {
	ID          AssetID `json:"id"`
	Owner       string  `json:"owner"`
	Appliance   string  `json:"appliance"`
	PowerKW     float64 `json:"power_kw"`      // scenario-scaled power
	BasePowerKW float64 `json:"base_power_kw"` // power captured at creation or edit time
	DurationH   int     `json:"duration_h"`
	StartHour   int     `json:"start_hour"` // 0..23
	EndHour     int     `json:"end_hour"`   // 0..24, wraps when not after StartHour
	Variable    bool    `json:"variable"`   // true = hours may be split
	Enabled     bool    `json:"enabled"`

	// Hours at which the asset draws power, filled by the schedule engine.
	BeforeHours []int `json:"before_hours"`
	AfterHours  []int `json:"after_hours"`
}

// Clone returns a copy of the asset with its own hour slices.
func (a Asset) Clone() Asset {
	a.BeforeHours = append([]int(nil), a.BeforeHours...)
	a.AfterHours = append([]int(nil), a.AfterHours...)
	return a
}

// Default labels used when an edit leaves identity fields blank.
const (
	DefaultOwner     = "Custom house"
	DefaultAppliance = "Appliance"
)

// AssetSpec is the payload of add and update operations.
type AssetSpec struct {
	Owner     string  `json:"owner" yaml:"owner"`
	Appliance string  `json:"appliance" yaml:"appliance"`
	PowerKW   float64 `json:"power_kw" yaml:"power_kw"`
	DurationH int     `json:"duration_h" yaml:"duration_h"`
	StartHour int     `json:"start_hour" yaml:"start_hour"`
	EndHour   int     `json:"end_hour" yaml:"end_hour"`
	Variable  bool    `json:"variable" yaml:"variable"`
	Enabled   bool    `json:"enabled" yaml:"enabled"`
}

// NewAssetSpec returns a variable, enabled spec.
func NewAssetSpec(owner, appliance string, powerKW float64, durationH, start, end int) AssetSpec {
	return AssetSpec{
		Owner:     owner,
		Appliance: appliance,
		PowerKW:   powerKW,
		DurationH: durationH,
		StartHour: start,
		EndHour:   end,
		Variable:  true,
		Enabled:   true,
	}
}

// WithDefaults fills blank owner and appliance labels.
func (s AssetSpec) WithDefaults() AssetSpec {
	s.Owner = strings.TrimSpace(s.Owner)
	s.Appliance = strings.TrimSpace(s.Appliance)
	if s.Owner == "" {
		s.Owner = DefaultOwner
	}
	if s.Appliance == "" {
		s.Appliance = DefaultAppliance
	}
	return s
}

// Validate rejects specs the engine would otherwise have to clamp.
func (s AssetSpec) Validate() error {
	if s.StartHour < 0 || s.StartHour >= NumHours {
		return &ValidationError{Field: "start_hour", Reason: "must be between 0 and 23"}
	}
	if s.EndHour < 0 || s.EndHour > NumHours {
		return &ValidationError{Field: "end_hour", Reason: "must be between 0 and 24"}
	}
	if s.StartHour == s.EndHour {
		return &ValidationError{Field: "end_hour", Reason: "start and end hour cannot be the same (empty window)"}
	}
	if s.DurationH < 1 {
		return &ValidationError{Field: "duration_h", Reason: "must be at least 1"}
	}
	if n := len(Window(s.StartHour, s.EndHour)); s.DurationH > n {
		return &ValidationError{Field: "duration_h", Reason: "exceeds the window length"}
	}
	if s.PowerKW < 0 {
		return &ValidationError{Field: "power_kw", Reason: "must not be negative"}
	}
	return nil
}

// Category is a keyword used for scenario power scaling.
type Category string

const (
	CategoryEV      Category = "EV"
	CategoryHVAC    Category = "HVAC"
	CategoryBattery Category = "Battery"
	CategorySauna   Category = "Sauna"
)

var categoryKeywords = []struct {
	cat      Category
	keywords []string
}{
	{CategoryEV, []string{"EV"}},
	{CategoryHVAC, []string{"HVAC", "Heat"}},
	{CategoryBattery, []string{"Battery"}},
	{CategorySauna, []string{"Sauna"}},
}

// IsKnown reports whether c is one of the scaling categories.
func (c Category) IsKnown() bool {
	for _, ck := range categoryKeywords {
		if ck.cat == c {
			return true
		}
	}
	return false
}

// Categories returns the categories whose keywords appear in the appliance
// label, in matching order. A label can belong to several categories.
func Categories(appliance string) []Category {
	var cats []Category
	for _, ck := range categoryKeywords {
		for _, kw := range ck.keywords {
			if strings.Contains(appliance, kw) {
				cats = append(cats, ck.cat)
				break
			}
		}
	}
	return cats
}
