package main

import (
	"fmt"
	"math"
)

// 1-D axial mesh of the coolant channel. i=0 is the inlet, i=nx-1 the
// outlet.
type FluidMesh struct {
	x  []float64 // node coordinates, m, [i]
	dx float64   // node spacing, m
	nx int       // node count
}

// 2-D Cartesian mesh of the base plate. j=0 is the water-facing row,
// j=ny-1 the air-facing row.
type PlateMesh struct {
	x  []float64 // node coordinates on x, m, [i]
	y  []float64 // node coordinates on y, m, [j]
	dx float64   // spacing on x, m
	dy float64   // spacing on y, m
	nx int       // node count on x
	ny int       // node count on y
}

// 2-D polar mesh of one semicircular fin. j=0 is the center (r=0), j=nr-1
// the rim (r=R); m=0 and m=ntheta-1 are the flat contact rows with the
// plate (theta=0 and theta=pi).
type FinMesh struct {
	r        []float64 // radial node coordinates, m, [j]
	theta    []float64 // angular node coordinates, rad, [m]
	dr       float64   // radial spacing, m
	dtheta   float64   // angular spacing, rad
	nr       int       // radial node count
	ntheta   int       // angular node count
	x_center float64   // fin center position on the plate x axis, m
	k_fin    int       // fin index
}

// Meshes bundles the discretization of all domains.
type Meshes struct {
	fluid *FluidMesh
	plate *PlateMesh
	fins  []*FinMesh // [k]
}

func linspace(lo, hi float64, n int) []float64 {
	xs := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range xs {
		xs[i] = lo + float64(i)*step
	}
	xs[n-1] = hi
	return xs
}

/*
Builds the 1-D fluid mesh.

	Notes:
		Uniform mesh over 0 <= x <= L_x, both endpoints included.
*/
func NewFluidMesh(params *Parameters) (*FluidMesh, error) {
	m := &FluidMesh{
		x:  linspace(0, params.l_x, params.nx_fluid),
		dx: params.dx_fluid,
		nx: params.nx_fluid,
	}
	if err := check_spacing("fluid x", m.x, m.dx); err != nil {
		return nil, err
	}
	return m, nil
}

/*
Builds the 2-D Cartesian plate mesh over [0, L_x] x [0, e_base].
*/
func NewPlateMesh(params *Parameters) (*PlateMesh, error) {
	m := &PlateMesh{
		x:  linspace(0, params.l_x, params.nx_plate),
		y:  linspace(0, params.e_base, params.ny_plate),
		dx: params.dx_plate,
		dy: params.dy_plate,
		nx: params.nx_plate,
		ny: params.ny_plate,
	}
	if err := check_spacing("plate x", m.x, m.dx); err != nil {
		return nil, err
	}
	if err := check_spacing("plate y", m.y, m.dy); err != nil {
		return nil, err
	}
	return m, nil
}

/*
Builds the polar meshes of the fins, one per dome, over [0, R] x [0, pi].

	Notes:
		The node layout is identical for every fin; only the center
		offset on the plate x axis differs.
*/
func NewFinMeshes(params *Parameters) ([]*FinMesh, error) {
	fins := make([]*FinMesh, params.n_fin)
	for k := 0; k < params.n_fin; k++ {
		m := &FinMesh{
			r:        linspace(0, params.r_fin, params.nr_fin),
			theta:    linspace(0, math.Pi, params.ntheta_fin),
			dr:       params.dr_fin,
			dtheta:   params.dtheta_fin,
			nr:       params.nr_fin,
			ntheta:   params.ntheta_fin,
			x_center: params.x_fin_centers[k],
			k_fin:    k,
		}
		if err := check_spacing(fmt.Sprintf("fin %d r", k), m.r, m.dr); err != nil {
			return nil, err
		}
		if err := check_spacing(fmt.Sprintf("fin %d theta", k), m.theta, m.dtheta); err != nil {
			return nil, err
		}
		if math.Abs(m.theta[m.ntheta-1]-math.Pi) > 1e-12 {
			return nil, fmt.Errorf("fin %d angular mesh must end at pi, got %g", k, m.theta[m.ntheta-1])
		}
		fins[k] = m
	}
	return fins, nil
}

/*
Builds every mesh of the system.

	Returns:
		meshes of fluid (1-D), plate (2-D Cartesian) and the fins
		(2-D polar, one per dome)
*/
func NewMeshes(params *Parameters) (*Meshes, error) {
	fluid, err := NewFluidMesh(params)
	if err != nil {
		return nil, err
	}
	plate, err := NewPlateMesh(params)
	if err != nil {
		return nil, err
	}
	fins, err := NewFinMeshes(params)
	if err != nil {
		return nil, err
	}
	return &Meshes{fluid: fluid, plate: plate, fins: fins}, nil
}

// total_nodes is the node count over all domains (diagnostic).
func (m *Meshes) total_nodes() int {
	n := m.fluid.nx + m.plate.nx*m.plate.ny
	for _, f := range m.fins {
		n += f.nr * f.ntheta
	}
	return n
}

// check_spacing verifies that an axis is uniform with the expected positive
// spacing and at least 3 nodes.
func check_spacing(name string, xs []float64, want float64) error {
	if len(xs) < 3 {
		return fmt.Errorf("%s mesh needs at least 3 nodes, got %d", name, len(xs))
	}
	if want <= 0 {
		return fmt.Errorf("%s spacing must be positive, got %g", name, want)
	}
	for i := 1; i < len(xs); i++ {
		if math.Abs((xs[i]-xs[i-1])-want) > 1e-9*math.Max(1, math.Abs(want)) {
			return fmt.Errorf("%s mesh is not uniform at node %d: spacing %g, want %g", name, i, xs[i]-xs[i-1], want)
		}
	}
	return nil
}
