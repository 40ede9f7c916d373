package main

import "fmt"

/*
Initial coolant temperature field.

	Returns:
		temperature field, K, [i]

	Notes:
		Uniform at the initial temperature except the inlet node, which
		is pinned at the stepped inlet temperature (Dirichlet).
*/
func initialize_fluid(params *Parameters) []float64 {
	t_fluid := make([]float64, params.nx_fluid)
	for i := range t_fluid {
		t_fluid[i] = params.t_initial
	}
	t_fluid[0] = params.t_f_in
	return t_fluid
}

/*
Advances the coolant one time step with the upwind scheme plus explicit
Euler relaxation toward the plate surface:

	T_i^{n+1} = T_i^n - CFL*(T_i^n - T_{i-1}^n) - gamma*dt*(T_i^n - T_s_i^n)

	Args:
		t_fluid_n: coolant temperature at step n, K, [i]
		t_surface: plate surface temperature on the fluid mesh, K, [i]
		dt: time step, s

	Returns:
		coolant temperature at step n+1, K, [i]

	Notes:
		Upwind looks at i-1 because u > 0. Inlet is Dirichlet, outlet is
		zero-gradient (copies its upstream neighbor). Pure function: the
		input field is never written.
*/
func update_fluid(t_fluid_n, t_surface []float64, params *Parameters, msh *Meshes, dt float64) ([]float64, error) {
	nx := msh.fluid.nx
	if len(t_fluid_n) != nx {
		return nil, fmt.Errorf("fluid field has %d nodes, mesh has %d", len(t_fluid_n), nx)
	}
	if len(t_surface) != nx {
		return nil, fmt.Errorf("surface temperature has %d nodes, fluid mesh has %d (interpolate first)", len(t_surface), nx)
	}

	cfl := params.u * dt / msh.fluid.dx
	if cfl >= 1.0 {
		return nil, &InstabilityError{Criterion: "CFL", Value: cfl, Limit: 1.0}
	}

	gamma := params.gamma()
	t_new := make([]float64, nx)

	for i := 1; i < nx-1; i++ {
		t_new[i] = t_fluid_n[i] -
			cfl*(t_fluid_n[i]-t_fluid_n[i-1]) -
			gamma*dt*(t_fluid_n[i]-t_surface[i])
	}

	// Inlet: Dirichlet. Outlet: zero gradient.
	t_new[0] = params.t_f_in
	t_new[nx-1] = t_new[nx-2]

	if err := check_field_1d("fluid", t_new, params.band); err != nil {
		return nil, err
	}
	return t_new, nil
}
