package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/flexicity/core/model"
)

func TestAddAppliesDefaultsAndBasePower(t *testing.T) {
	c := New()
	id, err := c.Add(model.NewAssetSpec("  ", "", 12.5, 2, 8, 12))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	a, err := c.Get(id)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultOwner, a.Owner)
	assert.Equal(t, model.DefaultAppliance, a.Appliance)
	assert.Equal(t, 12.5, a.PowerKW)
	assert.Equal(t, 12.5, a.BasePowerKW)
	assert.True(t, a.Enabled)
}

func TestAddRejectsInvalid(t *testing.T) {
	c := New()
	_, err := c.Add(model.NewAssetSpec("x", "y", 1, 2, 5, 5))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))
	assert.Equal(t, 0, c.Len())
}

func TestUpdateRemoveToggle(t *testing.T) {
	c := New()
	a, _ := c.Add(model.NewAssetSpec("a", "EV", 10, 2, 18, 24))
	b, _ := c.Add(model.NewAssetSpec("b", "HVAC", 5, 1, 0, 4))

	require.NoError(t, c.Update(a, model.NewAssetSpec("a2", "EV", 20, 3, 18, 24)))
	got, _ := c.Get(a)
	assert.Equal(t, "a2", got.Owner)
	assert.Equal(t, 20.0, got.BasePowerKW)
	assert.Equal(t, a, c.List()[0].ID, "update keeps position")

	require.NoError(t, c.Toggle(b))
	got, _ = c.Get(b)
	assert.False(t, got.Enabled)

	require.NoError(t, c.Remove(a))
	assert.Equal(t, 1, c.Len())

	for _, err := range []error{
		c.Remove(a),
		c.Toggle(a),
		c.Update(a, model.NewAssetSpec("a", "EV", 1, 1, 0, 2)),
	} {
		assert.True(t, errors.Is(err, model.ErrNotFound), "got %v", err)
	}
	_, err := c.Get(a)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestUpdateInvalidKeepsAsset(t *testing.T) {
	c := New()
	id, _ := c.Add(model.NewAssetSpec("a", "EV", 10, 2, 18, 24))
	err := c.Update(id, model.NewAssetSpec("a", "EV", -1, 2, 18, 24))
	assert.True(t, errors.Is(err, model.ErrValidation))
	got, _ := c.Get(id)
	assert.Equal(t, 10.0, got.PowerKW)
}

func TestImportSkipsValidation(t *testing.T) {
	c := New()
	ids := c.Import([]model.AssetSpec{model.NewAssetSpec("legacy", "EV", 3, 30, 26, 40)})
	require.Len(t, ids, 1)
	got, _ := c.Get(ids[0])
	assert.Equal(t, 26, got.StartHour)
}

func TestRescaleUsesBasePower(t *testing.T) {
	c := New()
	id, _ := c.Add(model.NewAssetSpec("a", "EV", 10, 2, 18, 24))
	c.Rescale(func(string) float64 { return 1.4 })
	c.Rescale(func(string) float64 { return 1.4 })
	got, _ := c.Get(id)
	assert.InDelta(t, 14.0, got.PowerKW, 1e-9)
	assert.Equal(t, 10.0, got.BasePowerKW)
}

func TestCloneIsIndependent(t *testing.T) {
	c := New()
	id, _ := c.Add(model.NewAssetSpec("a", "EV", 10, 2, 18, 24))
	cp := c.Clone()
	require.NoError(t, cp.Toggle(id))
	got, _ := c.Get(id)
	assert.True(t, got.Enabled)
}

func TestSeeded(t *testing.T) {
	c := Seeded()
	require.Equal(t, 54, c.Len())
	list := c.List()
	assert.Equal(t, "City EV fleet", list[0].Owner)
	assert.False(t, list[2].Variable, "fridge defrost is fixed")
	last := list[len(list)-1]
	assert.Equal(t, "Community battery #6", last.Owner)
	assert.Equal(t, 20.0, last.PowerKW)

	// The seeded set keeps three residential blocks whose duration exceeds
	// their 20-24 window; Import skips validation and the engine clamps them.
	var rejected []string
	for _, s := range DefaultSpecs() {
		err := s.Validate()
		if err == nil {
			continue
		}
		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr, s.Owner)
		assert.Equal(t, "duration_h", verr.Field, s.Owner)
		rejected = append(rejected, s.Owner)
	}
	assert.Equal(t, []string{"Res block EV #3", "Res block EV #6", "Res block EV #9"}, rejected)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `assets:
  - owner: Depot
    appliance: Bus chargers (EV)
    power_kw: 30
    duration_h: 4
    start_hour: 22
    end_hour: 6
  - owner: Bakery
    appliance: Oven
    power_kw: 12
    duration_h: 2
    start_hour: 3
    end_hour: 7
    variable: false
    enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	specs, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.True(t, specs[0].Variable)
	assert.True(t, specs[0].Enabled)
	assert.False(t, specs[1].Variable)
	assert.False(t, specs[1].Enabled)
	assert.Equal(t, 22, specs[0].StartHour)

	_, err = Parse([]byte("assets: [oops"))
	assert.Error(t, err)
	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
