package sizing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seismic-data/meshsize/geometry"
	"github.com/seismic-data/meshsize/grid"
	"github.com/seismic-data/meshsize/velocity"
)

// constModel builds an in-memory 2D velocity model with a uniform value.
func constModel(t *testing.T, nz, nx int, v float64) *velocity.Model {
	t.Helper()
	g, err := grid.New(2, nz, nx, 0)
	require.NoError(t, err)
	g.Fill(v)
	return &velocity.Model{VP: g, Source: "test", Units: velocity.MetersPerSecond}
}

func TestBuildUniformFloor(t *testing.T) {
	// wl = 0 disables the wavelength rule, so the raw field is hmin
	// everywhere.
	m := constModel(t, 20, 40, 1500)
	sf, err := Build(m, Options{Bbox: box2D(t), Hmin: 50})
	require.NoError(t, err)

	for _, v := range sf.Field().Data() {
		require.Equal(t, 50.0, v)
	}
	assert.Equal(t, 50.0, sf.Fh([]float64{-500, 1000}))
}

func TestBuildWavelengthRule(t *testing.T) {
	m := constModel(t, 20, 40, 3000)
	sf, err := Build(m, Options{Bbox: box2D(t), Hmin: 50, WL: 10, Freq: 2})
	require.NoError(t, err)

	// vp / (freq * wl) = 3000 / 20 = 150 everywhere.
	for _, v := range sf.Field().Data() {
		require.Equal(t, 150.0, v)
	}
}

func TestBuildClampBounds(t *testing.T) {
	m := constModel(t, 10, 20, 1500)
	// Wavelength rule gives 1500/5 = 300; hmax pins it to 200.
	sf, err := Build(m, Options{Bbox: box2D(t), Hmin: 50, Hmax: 200, WL: 1, Freq: 1})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, sf.Field().Min(), 50.0)
	assert.LessOrEqual(t, sf.Field().Max(), 200.0)
	assert.Equal(t, 200.0, sf.Field().At(0, 0, 0))
}

func TestBuildCFLRule(t *testing.T) {
	// Constant 1500 m/s with h = 5 gives Courant 1500*0.001/5 = 0.3,
	// above the 0.2 bound, so every node grows to 1500*0.001/0.2 = 7.5.
	m := constModel(t, 10, 20, 1500)
	sf, err := Build(m, Options{Bbox: box2D(t), Hmin: 5, DT: 0.001, CrMax: 0.2})
	require.NoError(t, err)

	for _, h := range sf.Field().Data() {
		require.InDelta(t, 7.5, h, 1e-12)
	}
}

func TestBuildCFLLeavesStableNodes(t *testing.T) {
	g, err := grid.New(2, 2, 2, 0)
	require.NoError(t, err)
	// One slow column satisfies the bound at h = 5, the fast one does not.
	copy(g.Data(), []float64{500, 1500, 500, 1500})
	m := &velocity.Model{VP: g, Source: "test", Units: velocity.MetersPerSecond}

	sf, err := Build(m, Options{Bbox: box2D(t), Hmin: 5, DT: 0.001, CrMax: 0.2})
	require.NoError(t, err)

	assert.Equal(t, 5.0, sf.Field().At(0, 0, 0), "stable node must be untouched")
	assert.InDelta(t, 7.5, sf.Field().At(0, 1, 0), 1e-12)
}

func TestBuildCFLInvariant(t *testing.T) {
	g, err := grid.New(2, 8, 8, 0)
	require.NoError(t, err)
	for i := range g.Data() {
		g.Data()[i] = 1500 + 50*float64(i%7)
	}
	m := &velocity.Model{VP: g, Source: "test", Units: velocity.MetersPerSecond}

	const (
		dt    = 0.002
		crMax = 0.3
	)
	sf, err := Build(m, Options{Bbox: box2D(t), Hmin: 4, DT: dt, CrMax: crMax})
	require.NoError(t, err)

	for i, h := range sf.Field().Data() {
		cr := g.Data()[i] * dt / h
		require.LessOrEqual(t, cr, crMax+1e-9, "node %d violates CFL", i)
	}
}

func TestBuildGradedField(t *testing.T) {
	g, err := grid.New(2, 30, 30, 0)
	require.NoError(t, err)
	g.Fill(1500)
	g.Set(15, 15, 0, 4500)
	m := &velocity.Model{VP: g, Source: "test", Units: velocity.MetersPerSecond}

	box, err := geometry.NewBox(-1000, 0, 0, 3000)
	require.NoError(t, err)
	opts := Options{Bbox: box, Hmin: 50, WL: 5, Freq: 2, Grade: 0.05}
	sf, err := Build(m, opts)
	require.NoError(t, err)

	// spacing = width/nx = 100; adjacent nodes may differ by at most
	// grade * spacing = 5.
	diff := maxAdjacentDiff(sf.Field())
	assert.LessOrEqual(t, diff, 0.05*100+1e-9)
	assert.GreaterOrEqual(t, sf.Field().Min(), 50.0)
}

func TestBuildDomainExtension(t *testing.T) {
	m := constModel(t, 10, 20, 1500)
	box := box2D(t) // spacing = 2000/20 = 100

	opts := Options{Bbox: box, Hmin: 50, DomainExt: 200, PadStyle: grid.PadEdge}
	sf, err := Build(m, opts)
	require.NoError(t, err)

	// bbox (-1000,0,0,2000) extended by 200: deep side only in z, both
	// sides in x.
	want, err := geometry.NewBox(-1200, 0, -200, 2200)
	require.NoError(t, err)
	assert.Equal(t, want, sf.Box())

	// pad = floor(200/100) = 2 nodes: nz 10 -> 12, nx 20 -> 24.
	assert.Equal(t, 12, sf.Field().Nz())
	assert.Equal(t, 24, sf.Field().Nx())

	// Edge padding of a uniform field stays uniform and positive.
	assert.Equal(t, 50.0, sf.Field().Min())
	assert.Equal(t, 50.0, sf.Field().Max())
}

func TestBuildExtensionReclampsToHmax(t *testing.T) {
	m := constModel(t, 10, 20, 9000)
	// Wavelength rule gives 9000/5 = 1800, clamped to hmax 500. The
	// constant pad fills with the pre-extension max, which is already
	// clamped, and must stay <= hmax after padding.
	opts := Options{
		Bbox: box2D(t), Hmin: 50, Hmax: 500, WL: 1, Freq: 1,
		DomainExt: 300, PadStyle: grid.PadConstant,
	}
	sf, err := Build(m, opts)
	require.NoError(t, err)
	assert.LessOrEqual(t, sf.Field().Max(), 500.0)
}

func TestBuild3DRejectsNonEdgePad(t *testing.T) {
	g, err := grid.New(3, 5, 5, 5)
	require.NoError(t, err)
	g.Fill(2000)
	m := &velocity.Model{VP: g, Source: "test", Units: velocity.MetersPerSecond}

	box, err := geometry.NewBox(-1000, 0, 0, 2000, 0, 2000)
	require.NoError(t, err)
	opts := Options{Bbox: box, Hmin: 50, DomainExt: 400, PadStyle: grid.PadLinearRamp}

	_, err = Build(m, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, grid.ErrPadStyle3D)
}

func TestBuild3DEdgeExtension(t *testing.T) {
	g, err := grid.New(3, 5, 5, 5)
	require.NoError(t, err)
	g.Fill(2000)
	m := &velocity.Model{VP: g, Source: "test", Units: velocity.MetersPerSecond}

	box, err := geometry.NewBox(-1000, 0, 0, 2000, 0, 2000)
	require.NoError(t, err)
	// spacing = 2000/5 = 400; pad = 1 node per extended side.
	opts := Options{Bbox: box, Hmin: 50, DomainExt: 400, PadStyle: grid.PadEdge}

	sf, err := Build(m, opts)
	require.NoError(t, err)
	assert.Equal(t, 6, sf.Field().Nz())
	assert.Equal(t, 7, sf.Field().Nx())
	assert.Equal(t, 7, sf.Field().Ny())
}

func TestBuildDimensionMismatch(t *testing.T) {
	m := constModel(t, 10, 20, 1500)
	box, err := geometry.NewBox(-1000, 0, 0, 2000, 0, 2000)
	require.NoError(t, err)

	_, err = Build(m, Options{Bbox: box, Hmin: 50})
	require.Error(t, err)
}

func TestBuildRawPositivityCheck(t *testing.T) {
	g, err := grid.New(2, 2, 2, 0)
	require.NoError(t, err)
	// A zero-velocity node under the wavelength rule collapses the edge
	// length to the clamp floor, so positivity holds through hmin. Force
	// the violation directly instead.
	g.Fill(1500)
	opts := Options{Bbox: box2D(t), Hmin: 50}.withDefaults()
	opts.Hmin = 0 // bypass Validate to exercise the integrity check
	_, err = buildRaw(g, opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotPositive))
}

func TestBuildEvaluatorsArePure(t *testing.T) {
	m := constModel(t, 10, 20, 1500)
	sf, err := Build(m, Options{Bbox: box2D(t), Hmin: 50})
	require.NoError(t, err)

	p := []float64{-500, 1000}
	first := sf.Fh(p)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, sf.Fh(p))
	}
	require.Equal(t, sf.Fd(p), sf.Fd(p))
	assert.Negative(t, sf.Fd(p))
	assert.Positive(t, sf.Fd([]float64{-500, 2500}))
	assert.True(t, math.Abs(sf.Fd([]float64{0, 1000})) < 1e-12)
}
