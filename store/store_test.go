package store

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seismic-data/meshsize/geometry"
	"github.com/seismic-data/meshsize/grid"
	"github.com/seismic-data/meshsize/sizing"
	"github.com/seismic-data/meshsize/velocity"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "meshsize.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testModel(t *testing.T) *velocity.Model {
	t.Helper()
	g, err := grid.New(2, 3, 4, 0)
	require.NoError(t, err)
	for i := range g.Data() {
		g.Data()[i] = 1500 + 100*float64(i)
	}
	return &velocity.Model{VP: g, Source: "marmousi.segy", Units: velocity.MetersPerSecond}
}

func TestSaveLoadModel(t *testing.T) {
	s := openTestStore(t)
	m := testModel(t)

	id, err := s.SaveModel(m)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.LoadModel(id)
	require.NoError(t, err)
	assert.Equal(t, m.Source, got.Source)
	assert.Equal(t, m.Units, got.Units)
	require.Equal(t, m.VP.Len(), got.VP.Len())
	for i, v := range m.VP.Data() {
		// Samples round-trip through float32.
		assert.InDelta(t, v, got.VP.Data()[i], 1e-3)
	}
}

func TestLoadModelUnknownID(t *testing.T) {
	s := openTestStore(t)
	_, err := s.LoadModel("no-such-model")
	require.Error(t, err)
}

func TestSaveLoadOptions(t *testing.T) {
	s := openTestStore(t)
	id, err := s.SaveModel(testModel(t))
	require.NoError(t, err)

	box, err := geometry.NewBox(-1000, 0, 0, 2000)
	require.NoError(t, err)
	opts := sizing.Options{
		Bbox: box, Hmin: 50, Hmax: 400, WL: 5, Freq: 2,
		DT: 0.001, CrMax: 0.1, Grade: 0.15, MaxSweeps: 500,
		DomainExt: 250, PadStyle: grid.PadLinearRamp,
	}
	require.NoError(t, s.SaveOptions(id, opts))

	got, err := s.LoadOptions(id)
	require.NoError(t, err)
	assert.Equal(t, opts, got)
}

func TestSaveOptionsUnboundedHmax(t *testing.T) {
	s := openTestStore(t)
	id, err := s.SaveModel(testModel(t))
	require.NoError(t, err)

	box, err := geometry.NewBox(-1000, 0, 0, 2000)
	require.NoError(t, err)
	require.NoError(t, s.SaveOptions(id, sizing.Options{Bbox: box, Hmin: 50}))

	got, err := s.LoadOptions(id)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got.Hmax, 1), "unbounded hmax should load as +Inf, got %g", got.Hmax)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshsize.db")
	s1, err := Open(path)
	require.NoError(t, err)
	id, err := s1.SaveModel(testModel(t))
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	// Re-opening runs migrations again as a no-op and keeps the data.
	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	_, err = s2.LoadModel(id)
	require.NoError(t, err)
}
