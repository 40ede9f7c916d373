package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func coupling_setup(t *testing.T) (*Parameters, *Meshes, *Coupling) {
	t.Helper()
	params, msh := fluid_setup(t, MaterialAl)
	c, err := NewCoupling(params, msh)
	require.NoError(t, err)
	return params, msh, c
}

// plate field T(x, y) = 300 + 1000*x, constant over y.
func linear_plate(msh *Meshes) *mat.Dense {
	t_plate := mat.NewDense(msh.plate.nx, msh.plate.ny, nil)
	for i, x := range msh.plate.x {
		for j := 0; j < msh.plate.ny; j++ {
			t_plate.Set(i, j, 300+1000*x)
		}
	}
	return t_plate
}

func TestNewCouplingRejectsOutOfPlateFin(t *testing.T) {
	params, msh := fluid_setup(t, MaterialAl)
	msh.fins[2].x_center = 0.029 // rim at 0.033 m, past the plate edge

	_, err := NewCoupling(params, msh)
	assert.ErrorContains(t, err, "outside the plate")
}

func TestSurfaceToFluidOnCoincidentMeshes(t *testing.T) {
	_, msh, c := coupling_setup(t)
	t_plate := linear_plate(msh)

	surface, err := c.surface_to_fluid(t_plate)
	require.NoError(t, err)
	require.Len(t, surface, msh.fluid.nx)
	for i := range surface {
		assert.Equal(t, t_plate.At(i, 0), surface[i])
	}
}

func TestFluidToPlateOnCoincidentMeshes(t *testing.T) {
	params, _, c := coupling_setup(t)
	t_fluid := initialize_fluid(params)

	out, err := c.fluid_to_plate(t_fluid)
	require.NoError(t, err)
	assert.Equal(t, t_fluid, out)
}

func TestSurfaceToFluidInterpolates(t *testing.T) {
	// A coarser fluid mesh forces real interpolation; a linear surface
	// profile is reproduced exactly.
	params, err := NewParameters(MaterialAl)
	require.NoError(t, err)
	params.nx_fluid = 31
	require.NoError(t, params.finalize())

	msh, err := NewMeshes(params)
	require.NoError(t, err)
	c, err := NewCoupling(params, msh)
	require.NoError(t, err)

	surface, err := c.surface_to_fluid(linear_plate(msh))
	require.NoError(t, err)
	require.Len(t, surface, 31)
	for i, x := range msh.fluid.x {
		assert.InDelta(t, 300+1000*x, surface[i], 1e-9)
	}
}

func TestPlateToFinSamplesContactDiameter(t *testing.T) {
	params, msh, c := coupling_setup(t)
	t_plate := linear_plate(msh)

	for k, fm := range msh.fins {
		t_theta0, t_thetapi, err := c.plate_to_fin(t_plate, k)
		require.NoError(t, err)
		for j, r := range fm.r {
			assert.InDelta(t, 300+1000*(fm.x_center+r), t_theta0[j], 1e-9, "fin %d node %d", k, j)
			assert.InDelta(t, 300+1000*(fm.x_center-r), t_thetapi[j], 1e-9, "fin %d node %d", k, j)
		}
	}

	_, _, err := c.plate_to_fin(t_plate, params.n_fin)
	assert.Error(t, err)
}

func TestApplyPlateCouplingAndContinuity(t *testing.T) {
	params, msh, c := coupling_setup(t)
	t_plate := linear_plate(msh)

	t_fins := make([]*mat.Dense, params.n_fin)
	for k := range t_fins {
		t_fins[k] = initialize_fin(params)
	}

	// Before imposing the contact rows the fields disagree.
	before, err := c.verify_continuity(t_plate, t_fins)
	require.NoError(t, err)
	assert.Greater(t, before, 1.0)

	require.NoError(t, c.apply_plate_coupling(t_plate, t_fins))

	after, err := c.verify_continuity(t_plate, t_fins)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, after, 1e-12)

	// Only the contact rows were written.
	for k := range t_fins {
		assert.Equal(t, params.t_initial, t_fins[k].At(5, 3))
	}
}
