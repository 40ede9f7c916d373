package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	xs := linspace(0, 0.03, 4)
	require.Len(t, xs, 4)
	assert.Equal(t, 0.0, xs[0])
	assert.Equal(t, 0.03, xs[3])
	assert.InDelta(t, 0.01, xs[1], 1e-15)
	assert.InDelta(t, 0.02, xs[2], 1e-15)
}

func TestNewMeshes(t *testing.T) {
	params, err := NewParameters(MaterialAl)
	require.NoError(t, err)

	msh, err := NewMeshes(params)
	require.NoError(t, err)

	t.Run("fluid", func(t *testing.T) {
		assert.Equal(t, params.nx_fluid, msh.fluid.nx)
		assert.Equal(t, 0.0, msh.fluid.x[0])
		assert.Equal(t, params.l_x, msh.fluid.x[msh.fluid.nx-1])
	})

	t.Run("plate", func(t *testing.T) {
		assert.Equal(t, params.nx_plate, msh.plate.nx)
		assert.Equal(t, params.ny_plate, msh.plate.ny)
		assert.Equal(t, params.e_base, msh.plate.y[msh.plate.ny-1])
	})

	t.Run("fins", func(t *testing.T) {
		require.Len(t, msh.fins, params.n_fin)
		for k, fm := range msh.fins {
			assert.Equal(t, params.x_fin_centers[k], fm.x_center)
			assert.Equal(t, k, fm.k_fin)
			assert.Equal(t, 0.0, fm.r[0])
			assert.Equal(t, params.r_fin, fm.r[fm.nr-1])
			assert.Equal(t, 0.0, fm.theta[0])
			assert.InDelta(t, math.Pi, fm.theta[fm.ntheta-1], 1e-12)
		}
	})

	t.Run("total nodes", func(t *testing.T) {
		// 60 fluid + 60*20 plate + 3 fins of 20*10
		assert.Equal(t, 60+1200+600, msh.total_nodes())
	})
}

func TestCheckSpacing(t *testing.T) {
	assert.NoError(t, check_spacing("ok", []float64{0, 0.1, 0.2, 0.3}, 0.1))
	assert.Error(t, check_spacing("short", []float64{0, 0.1}, 0.1))
	assert.Error(t, check_spacing("nonuniform", []float64{0, 0.1, 0.25, 0.3}, 0.1))
	assert.Error(t, check_spacing("bad spacing", []float64{0, 0.1, 0.2}, -0.1))
}
