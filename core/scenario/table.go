// Package scenario holds the named environment presets and the shared
// price curve. A Table is read-only once built.
package scenario

import (
	"errors"
	"fmt"

	"github.com/kilianp07/flexicity/core/model"
)

// ErrDuplicateScenario is returned when two scenarios share a name.
var ErrDuplicateScenario = errors.New("duplicate scenario")

// Table is an ordered set of scenarios plus the process-wide price curve.
type Table struct {
	names  []string
	byName map[string]model.Scenario
	prices model.Curve
}

// NewTable builds a table. Scenario order is preserved for listing.
func NewTable(prices model.Curve, scenarios ...model.Scenario) (*Table, error) {
	if len(scenarios) == 0 {
		return nil, errors.New("scenario table needs at least one scenario")
	}
	t := &Table{byName: make(map[string]model.Scenario, len(scenarios)), prices: prices}
	for _, sc := range scenarios {
		if sc.Name == "" {
			return nil, &model.ValidationError{Field: "scenario.name", Reason: "must not be empty"}
		}
		if _, ok := t.byName[sc.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateScenario, sc.Name)
		}
		t.byName[sc.Name] = sc
		t.names = append(t.names, sc.Name)
	}
	return t, nil
}

// Get returns the scenario with the given name.
func (t *Table) Get(name string) (model.Scenario, error) {
	sc, ok := t.byName[name]
	if !ok {
		return model.Scenario{}, fmt.Errorf("scenario %q: %w", name, model.ErrNotFound)
	}
	return sc, nil
}

// Names lists scenario names in table order.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// First returns the first scenario of the table.
func (t *Table) First() model.Scenario { return t.byName[t.names[0]] }

// Prices returns the hourly price curve in cents/kWh.
func (t *Table) Prices() model.Curve { return t.prices }
