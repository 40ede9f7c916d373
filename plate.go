package main

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

/*
Initial plate temperature field.

	Returns:
		temperature field, K, [i, j] with i over x and j over y

	Notes:
		Uniform at the initial solid temperature. j=0 is the water face,
		j=ny-1 the air face.
*/
func initialize_plate(params *Parameters) *mat.Dense {
	t_plate := mat.NewDense(params.nx_plate, params.ny_plate, nil)
	for i := 0; i < params.nx_plate; i++ {
		for j := 0; j < params.ny_plate; j++ {
			t_plate.Set(i, j, params.t_initial)
		}
	}
	return t_plate
}

/*
Advances the plate one time step with FTCS conduction and ghost-node Robin
conditions on both faces.

Interior:

	T_{i,j}^{n+1} = T_{i,j} + Fo_x*(T_{i+1,j} - 2T_{i,j} + T_{i-1,j})
	                        + Fo_y*(T_{i,j+1} - 2T_{i,j} + T_{i,j-1})

Water face (j=0), ghost node eliminated against h_water:

	T_{i,0}^{n+1} = T_{i,0} + Fo_x*(...)
	              + 2*Fo_y*[(T_{i,1} - T_{i,0}) - beta_w*(T_{i,0} - T_f_i)]

Air face (j=ny-1), symmetric elimination against h_air:

	T_{i,e}^{n+1} = T_{i,e} + Fo_x*(...)
	              + 2*Fo_y*[(T_{i,e-1} - T_{i,e}) - beta_a*(T_{i,e} - T_inf)]

with beta_w = h_water*dy/k_s and beta_a = h_air*dy/k_s.

	Args:
		t_plate_n: plate temperature at step n, K, [i, j]
		t_fluid: coolant temperature on the plate x mesh, K, [i]
		dt: time step, s

	Returns:
		plate temperature at step n+1, K, [i, j]

	Notes:
		Both faces keep the -beta*(T_surface - T_env) form that falls
		out of the ghost-node elimination, so each face can gain or
		lose heat depending on the local temperature difference.
		Lateral edges (x=0, x=L_x) are zero-gradient copies. Pure
		function of its inputs.
*/
func update_plate(t_plate_n *mat.Dense, t_fluid []float64, params *Parameters, msh *Meshes, dt float64) (*mat.Dense, error) {
	nx, ny := msh.plate.nx, msh.plate.ny
	if r, c := t_plate_n.Dims(); r != nx || c != ny {
		return nil, fmt.Errorf("plate field is %dx%d, mesh is %dx%d", r, c, nx, ny)
	}
	if len(t_fluid) != nx {
		return nil, fmt.Errorf("fluid temperature has %d nodes, plate mesh has %d on x (interpolate first)", len(t_fluid), nx)
	}

	alpha := params.props.alpha_s
	dx, dy := msh.plate.dx, msh.plate.dy
	fo_x := alpha * dt / (dx * dx)
	fo_y := alpha * dt / (dy * dy)
	if fo := fo_x + fo_y; fo >= 0.5 {
		return nil, &InstabilityError{Criterion: "Fo_plate", Value: fo, Limit: 0.5}
	}

	beta_w := params.h_water * dy / params.props.k_s
	beta_a := params.h_air * dy / params.props.k_s

	t_new := mat.NewDense(nx, ny, nil)

	// Interior nodes.
	for i := 1; i < nx-1; i++ {
		for j := 1; j < ny-1; j++ {
			t := t_plate_n.At(i, j)
			lap_x := t_plate_n.At(i+1, j) - 2*t + t_plate_n.At(i-1, j)
			lap_y := t_plate_n.At(i, j+1) - 2*t + t_plate_n.At(i, j-1)
			t_new.Set(i, j, t+fo_x*lap_x+fo_y*lap_y)
		}
	}

	// Water face, j=0.
	for i := 1; i < nx-1; i++ {
		t := t_plate_n.At(i, 0)
		lap_x := t_plate_n.At(i+1, 0) - 2*t + t_plate_n.At(i-1, 0)
		conv := (t_plate_n.At(i, 1) - t) - beta_w*(t-t_fluid[i])
		t_new.Set(i, 0, t+fo_x*lap_x+2*fo_y*conv)
	}

	// Air face, j=ny-1.
	for i := 1; i < nx-1; i++ {
		t := t_plate_n.At(i, ny-1)
		lap_x := t_plate_n.At(i+1, ny-1) - 2*t + t_plate_n.At(i-1, ny-1)
		conv := (t_plate_n.At(i, ny-2) - t) - beta_a*(t-params.t_inf)
		t_new.Set(i, ny-1, t+fo_x*lap_x+2*fo_y*conv)
	}

	// Lateral edges: zero gradient (covers the corners too).
	for j := 0; j < ny; j++ {
		t_new.Set(0, j, t_new.At(1, j))
		t_new.Set(nx-1, j, t_new.At(nx-2, j))
	}

	if err := check_field_2d("plate", t_new, params.band); err != nil {
		return nil, err
	}
	return t_new, nil
}

// plate_mean is the mean plate temperature, K (diagnostic).
func plate_mean(t_plate *mat.Dense) float64 {
	r, c := t_plate.Dims()
	return mat.Sum(t_plate) / float64(r*c)
}

// plate_max is the hottest plate node, K (diagnostic).
func plate_max(t_plate *mat.Dense) float64 {
	return mat.Max(t_plate)
}
