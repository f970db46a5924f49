package projection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwhitten/nestegg/internal/projection"
)

func TestFit_LinearPassesThroughSamples(t *testing.T) {
	pts := []projection.Point{
		{X: 0, Y: 100},
		{X: 10, Y: 250},
		{X: 20, Y: 175},
		{X: 35, Y: 400},
	}

	c, err := projection.Fit(pts, projection.KindLinear)
	require.NoError(t, err)

	for _, p := range pts {
		assert.InDelta(t, p.Y, c.Evaluate(p.X), 1e-9, "at x=%v", p.X)
	}
}

func TestFit_LinearInterpolatesMidpoints(t *testing.T) {
	c, err := projection.Fit([]projection.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 100},
		{X: 20, Y: 100},
	}, projection.KindLinear)
	require.NoError(t, err)

	assert.InDelta(t, 50, c.Evaluate(5), 1e-9)
	assert.InDelta(t, 100, c.Evaluate(15), 1e-9)
}

func TestFit_LinearExtrapolatesEndSegments(t *testing.T) {
	c, err := projection.Fit([]projection.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 50},
		{X: 20, Y: 150},
	}, projection.KindLinear)
	require.NoError(t, err)

	// Past the last sample the final slope (10/unit) keeps going.
	assert.InDelta(t, 250, c.Evaluate(30), 1e-9)
	// Before the first sample the first slope (5/unit) runs backwards.
	assert.InDelta(t, -50, c.Evaluate(-10), 1e-9)
}

func TestFit_CubicPassesThroughSamples(t *testing.T) {
	pts := []projection.Point{
		{X: 0, Y: 10},
		{X: 1, Y: 14},
		{X: 3, Y: 2},
		{X: 4, Y: 9},
		{X: 7, Y: 20},
	}

	c, err := projection.Fit(pts, projection.KindCubic)
	require.NoError(t, err)

	for _, p := range pts {
		assert.InDelta(t, p.Y, c.Evaluate(p.X), 1e-9, "at x=%v", p.X)
	}
}

func TestFit_CubicReproducesStraightLine(t *testing.T) {
	// A spline through collinear points is that line, inside and
	// outside the sampled range.
	c, err := projection.Fit([]projection.Point{
		{X: 0, Y: 5},
		{X: 2, Y: 9},
		{X: 5, Y: 15},
		{X: 8, Y: 21},
	}, projection.KindCubic)
	require.NoError(t, err)

	assert.InDelta(t, 12, c.Evaluate(3.5), 1e-9)
	assert.InDelta(t, 25, c.Evaluate(10), 1e-9)
	assert.InDelta(t, 1, c.Evaluate(-2), 1e-9)
}

func TestFit_CubicFallsBackToLinearBelowThreePoints(t *testing.T) {
	c, err := projection.Fit([]projection.Point{
		{X: 0, Y: 0},
		{X: 4, Y: 8},
	}, projection.KindCubic)
	require.NoError(t, err)

	assert.InDelta(t, 4, c.Evaluate(2), 1e-9)
	assert.InDelta(t, 16, c.Evaluate(8), 1e-9)
}

func TestFit_SinglePointIsConstant(t *testing.T) {
	c, err := projection.Fit([]projection.Point{{X: 100, Y: 42.5}}, projection.KindCubic)
	require.NoError(t, err)

	assert.Equal(t, 42.5, c.Evaluate(0))
	assert.Equal(t, 42.5, c.Evaluate(1e12))
}

func TestFit_DuplicateXCollapsesToLast(t *testing.T) {
	c, err := projection.Fit([]projection.Point{
		{X: 0, Y: 1},
		{X: 10, Y: 5},
		{X: 10, Y: 9},
	}, projection.KindLinear)
	require.NoError(t, err)

	assert.InDelta(t, 9, c.Evaluate(10), 1e-9)
	assert.InDelta(t, 5, c.Evaluate(5), 1e-9)
}

func TestFit_NoPoints(t *testing.T) {
	_, err := projection.Fit(nil, projection.KindLinear)
	assert.ErrorIs(t, err, projection.ErrNoPoints)
}

func TestFit_UnknownKind(t *testing.T) {
	_, err := projection.Fit([]projection.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, projection.Kind("quadratic"))
	assert.Error(t, err)
}

func TestZero(t *testing.T) {
	c := projection.Zero()
	assert.Zero(t, c.Evaluate(-1e9))
	assert.Zero(t, c.Evaluate(1e9))
}
