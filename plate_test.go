package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func uniform_fluid(params *Parameters, value float64) []float64 {
	t_fluid := make([]float64, params.nx_plate)
	for i := range t_fluid {
		t_fluid[i] = value
	}
	return t_fluid
}

func TestInitializePlate(t *testing.T) {
	params, _ := fluid_setup(t, MaterialAl)
	t_plate := initialize_plate(params)

	r, c := t_plate.Dims()
	assert.Equal(t, params.nx_plate, r)
	assert.Equal(t, params.ny_plate, c)
	assert.Equal(t, params.t_initial, t_plate.At(30, 10))
}

func TestUpdatePlateEquilibrium(t *testing.T) {
	// Plate, coolant and ambient all at the same temperature: nothing
	// moves.
	params, msh := fluid_setup(t, MaterialAl)
	t_plate := initialize_plate(params)
	t_fluid := uniform_fluid(params, params.t_initial)

	t_next, err := update_plate(t_plate, t_fluid, params, msh, params.dt)
	require.NoError(t, err)
	for i := 0; i < params.nx_plate; i++ {
		for j := 0; j < params.ny_plate; j++ {
			assert.Equal(t, params.t_initial, t_next.At(i, j), "node (%d, %d)", i, j)
		}
	}
}

func TestUpdatePlateWaterFaceRobinBothSigns(t *testing.T) {
	params, msh := fluid_setup(t, MaterialAl)

	t.Run("hot coolant heats the face", func(t *testing.T) {
		t_plate := initialize_plate(params)
		t_next, err := update_plate(t_plate, uniform_fluid(params, params.t_f_in), params, msh, params.dt)
		require.NoError(t, err)

		assert.Greater(t, t_next.At(30, 0), params.t_initial)
		// Rows away from the face have not felt the coolant yet.
		assert.Equal(t, params.t_initial, t_next.At(30, 1))
	})

	t.Run("cold coolant cools the face", func(t *testing.T) {
		t_plate := initialize_plate(params)
		t_next, err := update_plate(t_plate, uniform_fluid(params, 280.0), params, msh, params.dt)
		require.NoError(t, err)

		assert.Less(t, t_next.At(30, 0), params.t_initial)
	})
}

func TestUpdatePlateAirFaceRobinBothSigns(t *testing.T) {
	params, msh := fluid_setup(t, MaterialAl)
	ny := params.ny_plate

	t.Run("hot plate rejects heat to the air", func(t *testing.T) {
		t_plate := mat.NewDense(params.nx_plate, ny, nil)
		for i := 0; i < params.nx_plate; i++ {
			for j := 0; j < ny; j++ {
				t_plate.Set(i, j, 350.0)
			}
		}
		t_next, err := update_plate(t_plate, uniform_fluid(params, 350.0), params, msh, params.dt)
		require.NoError(t, err)

		assert.Less(t, t_next.At(30, ny-1), 350.0)
		assert.Equal(t, 350.0, t_next.At(30, ny-2))
	})

	t.Run("warm air heats a cold plate", func(t *testing.T) {
		t_plate := mat.NewDense(params.nx_plate, ny, nil)
		for i := 0; i < params.nx_plate; i++ {
			for j := 0; j < ny; j++ {
				t_plate.Set(i, j, 280.0)
			}
		}
		t_next, err := update_plate(t_plate, uniform_fluid(params, 280.0), params, msh, params.dt)
		require.NoError(t, err)

		assert.Greater(t, t_next.At(30, ny-1), 280.0)
	})
}

func TestUpdatePlateLateralZeroGradient(t *testing.T) {
	params, msh := fluid_setup(t, MaterialAl)
	t_plate := initialize_plate(params)

	t_next, err := update_plate(t_plate, uniform_fluid(params, params.t_f_in), params, msh, params.dt)
	require.NoError(t, err)
	for j := 0; j < params.ny_plate; j++ {
		assert.Equal(t, t_next.At(1, j), t_next.At(0, j))
		assert.Equal(t, t_next.At(params.nx_plate-2, j), t_next.At(params.nx_plate-1, j))
	}
}

func TestUpdatePlateRejectsLargeStep(t *testing.T) {
	params, msh := fluid_setup(t, MaterialAl)
	t_plate := initialize_plate(params)

	_, err := update_plate(t_plate, uniform_fluid(params, params.t_initial), params, msh, 1.0)
	var inst *InstabilityError
	require.ErrorAs(t, err, &inst)
	assert.Equal(t, "Fo_plate", inst.Criterion)
}

func TestUpdatePlateRejectsDimMismatch(t *testing.T) {
	params, msh := fluid_setup(t, MaterialAl)

	_, err := update_plate(mat.NewDense(10, 10, nil), uniform_fluid(params, params.t_initial), params, msh, params.dt)
	assert.Error(t, err)

	_, err = update_plate(initialize_plate(params), make([]float64, 5), params, msh, params.dt)
	assert.Error(t, err)
}
