package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fluid_setup(t *testing.T, material Material) (*Parameters, *Meshes) {
	t.Helper()
	params, err := NewParameters(material)
	require.NoError(t, err)
	msh, err := NewMeshes(params)
	require.NoError(t, err)
	return params, msh
}

func TestInitializeFluid(t *testing.T) {
	params, _ := fluid_setup(t, MaterialAl)
	t_fluid := initialize_fluid(params)

	require.Len(t, t_fluid, params.nx_fluid)
	assert.Equal(t, params.t_f_in, t_fluid[0])
	for i := 1; i < len(t_fluid); i++ {
		assert.Equal(t, params.t_initial, t_fluid[i])
	}
}

func TestUpdateFluidEquilibrium(t *testing.T) {
	params, msh := fluid_setup(t, MaterialAl)
	// No inlet step: everything sits at the initial temperature.
	params.t_f_in = params.t_initial

	t_fluid := initialize_fluid(params)
	t_surface := make([]float64, params.nx_fluid)
	for i := range t_surface {
		t_surface[i] = params.t_initial
	}

	t_next, err := update_fluid(t_fluid, t_surface, params, msh, params.dt)
	require.NoError(t, err)
	for i, v := range t_next {
		assert.Equal(t, params.t_initial, v, "node %d", i)
	}
}

func TestUpdateFluidAdvectsInletStep(t *testing.T) {
	params, msh := fluid_setup(t, MaterialAl)
	t_fluid := initialize_fluid(params)
	t_surface := make([]float64, params.nx_fluid)
	for i := range t_surface {
		t_surface[i] = params.t_initial
	}

	t_next, err := update_fluid(t_fluid, t_surface, params, msh, params.dt)
	require.NoError(t, err)

	// The hot front enters through node 1; the far field has not seen it
	// yet.
	assert.Equal(t, params.t_f_in, t_next[0])
	assert.Greater(t, t_next[1], params.t_initial)
	assert.Less(t, t_next[1], params.t_f_in)
	assert.Equal(t, params.t_initial, t_next[30])

	// Outlet copies its upstream neighbor.
	assert.Equal(t, t_next[params.nx_fluid-2], t_next[params.nx_fluid-1])
}

func TestUpdateFluidRelaxesTowardSurface(t *testing.T) {
	params, msh := fluid_setup(t, MaterialAl)
	params.t_f_in = params.t_initial

	t_fluid := initialize_fluid(params)
	t_surface := make([]float64, params.nx_fluid)
	for i := range t_surface {
		t_surface[i] = params.t_initial + 20.0
	}

	t_next, err := update_fluid(t_fluid, t_surface, params, msh, params.dt)
	require.NoError(t, err)
	for i := 1; i < params.nx_fluid-1; i++ {
		assert.Greater(t, t_next[i], params.t_initial, "node %d", i)
	}
}

func TestUpdateFluidRejectsCFLViolation(t *testing.T) {
	params, msh := fluid_setup(t, MaterialAl)
	t_fluid := initialize_fluid(params)
	t_surface := make([]float64, params.nx_fluid)

	_, err := update_fluid(t_fluid, t_surface, params, msh, 2.0*msh.fluid.dx/params.u)
	var inst *InstabilityError
	require.ErrorAs(t, err, &inst)
	assert.Equal(t, "CFL", inst.Criterion)
}

func TestUpdateFluidRejectsLengthMismatch(t *testing.T) {
	params, msh := fluid_setup(t, MaterialAl)
	t_fluid := initialize_fluid(params)

	_, err := update_fluid(t_fluid, make([]float64, 10), params, msh, params.dt)
	assert.Error(t, err)

	_, err = update_fluid(t_fluid[:10], make([]float64, params.nx_fluid), params, msh, params.dt)
	assert.Error(t, err)
}
