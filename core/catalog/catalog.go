// Package catalog stores the ordered list of flexible-load definitions.
// Schedules are not kept here; the schedule engine derives them on every
// recompute.
package catalog

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kilianp07/flexicity/core/model"
)

// Catalog is an ordered set of assets. It is not safe for concurrent use.
type Catalog struct {
	assets []model.Asset
}

// New returns an empty catalog.
func New() *Catalog { return &Catalog{} }

// Seeded returns a catalog holding the default portfolio.
func Seeded() *Catalog {
	c := New()
	c.Import(DefaultSpecs())
	return c
}

// Add validates the spec and appends a new asset. The spec power becomes the
// asset's base power.
func (c *Catalog) Add(spec model.AssetSpec) (model.AssetID, error) {
	spec = spec.WithDefaults()
	if err := spec.Validate(); err != nil {
		return "", err
	}
	a := fromSpec(newID(), spec)
	c.assets = append(c.assets, a)
	return a.ID, nil
}

// Import appends assets without validation. It is meant for legacy or
// file-based portfolios; the engine clamps hours and durations of such
// assets when scheduling.
func (c *Catalog) Import(specs []model.AssetSpec) []model.AssetID {
	ids := make([]model.AssetID, 0, len(specs))
	for _, s := range specs {
		a := fromSpec(newID(), s.WithDefaults())
		c.assets = append(c.assets, a)
		ids = append(ids, a.ID)
	}
	return ids
}

// Update replaces the definition of an asset, keeping its id and position.
// The new spec power becomes the base power.
func (c *Catalog) Update(id model.AssetID, spec model.AssetSpec) error {
	i, err := c.index(id)
	if err != nil {
		return err
	}
	spec = spec.WithDefaults()
	if err := spec.Validate(); err != nil {
		return err
	}
	c.assets[i] = fromSpec(id, spec)
	return nil
}

// Remove deletes an asset together with its base power.
func (c *Catalog) Remove(id model.AssetID) error {
	i, err := c.index(id)
	if err != nil {
		return err
	}
	c.assets = append(c.assets[:i], c.assets[i+1:]...)
	return nil
}

// Toggle flips the enabled flag of an asset.
func (c *Catalog) Toggle(id model.AssetID) error {
	i, err := c.index(id)
	if err != nil {
		return err
	}
	c.assets[i].Enabled = !c.assets[i].Enabled
	return nil
}

// Get returns a copy of an asset definition.
func (c *Catalog) Get(id model.AssetID) (model.Asset, error) {
	i, err := c.index(id)
	if err != nil {
		return model.Asset{}, err
	}
	return c.assets[i].Clone(), nil
}

// List returns copies of all asset definitions in catalog order.
func (c *Catalog) List() []model.Asset {
	out := make([]model.Asset, len(c.assets))
	for i, a := range c.assets {
		out[i] = a.Clone()
	}
	return out
}

// Len returns the number of assets.
func (c *Catalog) Len() int { return len(c.assets) }

// Rescale sets every asset's power to its base power times factor(appliance).
func (c *Catalog) Rescale(factor func(appliance string) float64) {
	for i := range c.assets {
		c.assets[i].PowerKW = c.assets[i].BasePowerKW * factor(c.assets[i].Appliance)
	}
}

// Clone returns an independent copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	return &Catalog{assets: c.List()}
}

func (c *Catalog) index(id model.AssetID) (int, error) {
	for i := range c.assets {
		if c.assets[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("asset %s: %w", id, model.ErrNotFound)
}

func newID() model.AssetID { return model.AssetID(uuid.NewString()) }

func fromSpec(id model.AssetID, s model.AssetSpec) model.Asset {
	return model.Asset{
		ID:          id,
		Owner:       s.Owner,
		Appliance:   s.Appliance,
		PowerKW:     s.PowerKW,
		BasePowerKW: s.PowerKW,
		DurationH:   s.DurationH,
		StartHour:   s.StartHour,
		EndHour:     s.EndHour,
		Variable:    s.Variable,
		Enabled:     s.Enabled,
	}
}
