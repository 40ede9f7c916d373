package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestInterpLinear(t *testing.T) {
	x_src := []float64{0, 0.01, 0.02, 0.03}
	t_src := []float64{300, 310, 320, 330}

	t.Run("exact on the nodes", func(t *testing.T) {
		out, err := interp_linear(x_src, x_src, t_src)
		require.NoError(t, err)
		assert.Equal(t, t_src, out)
	})

	t.Run("exact on a linear profile", func(t *testing.T) {
		out, err := interp_linear([]float64{0.005, 0.015, 0.025}, x_src, t_src)
		require.NoError(t, err)
		assert.InDelta(t, 305, out[0], 1e-9)
		assert.InDelta(t, 315, out[1], 1e-9)
		assert.InDelta(t, 325, out[2], 1e-9)
	})

	t.Run("never extrapolates", func(t *testing.T) {
		_, err := interp_linear([]float64{0.031}, x_src, t_src)
		var ierr *InterpolationError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, "x", ierr.Coord)

		_, err = interp_linear([]float64{-0.001}, x_src, t_src)
		assert.Error(t, err)
	})
}

func TestInterpBilinear(t *testing.T) {
	// T(x, y) = 300 + 1000*x + 2000*y is reproduced exactly by bilinear
	// interpolation.
	x_grid := linspace(0, 0.03, 7)
	y_grid := linspace(0, 0.01, 5)
	field := mat.NewDense(7, 5, nil)
	for i, x := range x_grid {
		for j, y := range y_grid {
			field.Set(i, j, 300+1000*x+2000*y)
		}
	}

	t.Run("exact on a linear field", func(t *testing.T) {
		v, err := interp_bilinear(field, x_grid, y_grid, 0.0123, 0.0042)
		require.NoError(t, err)
		assert.InDelta(t, 300+1000*0.0123+2000*0.0042, v, 1e-9)
	})

	t.Run("exact on a node", func(t *testing.T) {
		v, err := interp_bilinear(field, x_grid, y_grid, x_grid[3], y_grid[2])
		require.NoError(t, err)
		assert.InDelta(t, field.At(3, 2), v, 1e-12)
	})

	t.Run("exact on the far corner", func(t *testing.T) {
		v, err := interp_bilinear(field, x_grid, y_grid, 0.03, 0.01)
		require.NoError(t, err)
		assert.InDelta(t, field.At(6, 4), v, 1e-12)
	})

	t.Run("never extrapolates", func(t *testing.T) {
		_, err := interp_bilinear(field, x_grid, y_grid, 0.031, 0.005)
		var ierr *InterpolationError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, "x", ierr.Coord)

		_, err = interp_bilinear(field, x_grid, y_grid, 0.01, 0.011)
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, "y", ierr.Coord)
	})
}
