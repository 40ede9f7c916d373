package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Cached mapping from one fin's contact-row nodes to plate Cartesian
// coordinates: x = x_center + r*cos(theta), y = e_base. Built once at setup
// and immutable for the run; it only depends on the geometry.
type CouplingMap struct {
	x_theta0  []float64 // plate x of the theta=0 contact nodes, m, [j]
	x_thetapi []float64 // plate x of the theta=pi contact nodes, m, [j]
	y_contact float64   // plate-top y coordinate, m
}

// Coupling carries the interpolation state between the three domains. All
// cross-domain temperature transfer goes through this layer; no solver
// reads another solver's field directly.
type Coupling struct {
	params *Parameters
	msh    *Meshes
	maps   []CouplingMap // [k]
}

/*
Builds the coupling layer and its cached fin contact maps.

	Notes:
		Every contact coordinate is bounds-checked against the plate
		mesh here, so a geometry misconfiguration surfaces at setup
		instead of mid-run as an InterpolationError.
*/
func NewCoupling(params *Parameters, msh *Meshes) (*Coupling, error) {
	c := &Coupling{params: params, msh: msh}
	c.maps = make([]CouplingMap, len(msh.fins))

	x_lo := msh.plate.x[0]
	x_hi := msh.plate.x[msh.plate.nx-1]

	for k, fm := range msh.fins {
		cm := CouplingMap{
			x_theta0:  make([]float64, fm.nr),
			x_thetapi: make([]float64, fm.nr),
			y_contact: params.e_base,
		}
		for j, r := range fm.r {
			// cos(0) = 1, cos(pi) = -1: the contact diameter.
			cm.x_theta0[j] = fm.x_center + r
			cm.x_thetapi[j] = fm.x_center - r
		}
		for _, x := range append(append([]float64{}, cm.x_theta0...), cm.x_thetapi...) {
			if x < x_lo-interp_edge_tol || x > x_hi+interp_edge_tol {
				return nil, fmt.Errorf("fin %d contact node at x = %g m outside the plate [%g, %g] m", k, x, x_lo, x_hi)
			}
		}
		c.maps[k] = cm
	}
	return c, nil
}

/*
Extracts the plate's water-facing row and interpolates it onto the fluid
mesh.

	Args:
		t_plate: plate temperature, K, [i, j]

	Returns:
		plate surface temperature on the fluid x positions, K, [i]

	Notes:
		Identity copy when the two meshes coincide, which is the
		reference configuration (60 nodes on both).
*/
func (c *Coupling) surface_to_fluid(t_plate *mat.Dense) ([]float64, error) {
	surface := make([]float64, c.msh.plate.nx)
	for i := range surface {
		surface[i] = t_plate.At(i, 0)
	}
	if meshes_coincide(c.msh.plate.x, c.msh.fluid.x) {
		return surface, nil
	}
	return interp_linear(c.msh.fluid.x, c.msh.plate.x, surface)
}

/*
Interpolates the coolant temperature onto the plate's x positions for the
water-face Robin condition.

	Args:
		t_fluid: coolant temperature, K, [i]

	Returns:
		coolant temperature on the plate x positions, K, [i]
*/
func (c *Coupling) fluid_to_plate(t_fluid []float64) ([]float64, error) {
	if meshes_coincide(c.msh.fluid.x, c.msh.plate.x) {
		out := make([]float64, len(t_fluid))
		copy(out, t_fluid)
		return out, nil
	}
	return interp_linear(c.msh.plate.x, c.msh.fluid.x, t_fluid)
}

/*
Samples the plate-top temperature along one fin's contact diameter.

	Args:
		t_plate: plate temperature, K, [i, j]
		k: fin index

	Returns:
		temperatures to impose on the theta=0 and theta=pi contact
		rows, K, [j] each

	Notes:
		Uses the cached coordinate map and bounds-checked bilinear
		interpolation on the plate grid.
*/
func (c *Coupling) plate_to_fin(t_plate *mat.Dense, k int) (t_theta0, t_thetapi []float64, err error) {
	if k < 0 || k >= len(c.maps) {
		return nil, nil, fmt.Errorf("fin index %d out of range [0, %d)", k, len(c.maps))
	}
	cm := c.maps[k]
	t_theta0 = make([]float64, len(cm.x_theta0))
	t_thetapi = make([]float64, len(cm.x_thetapi))
	for j := range cm.x_theta0 {
		t_theta0[j], err = interp_bilinear(t_plate, c.msh.plate.x, c.msh.plate.y, cm.x_theta0[j], cm.y_contact)
		if err != nil {
			return nil, nil, err
		}
		t_thetapi[j], err = interp_bilinear(t_plate, c.msh.plate.x, c.msh.plate.y, cm.x_thetapi[j], cm.y_contact)
		if err != nil {
			return nil, nil, err
		}
	}
	return t_theta0, t_thetapi, nil
}

/*
Imposes the plate-top temperature as Dirichlet values on every fin's
contact rows (theta=0 and theta=pi), in place.

	Args:
		t_plate: plate temperature, K, [i, j]
		t_fins: fin temperature fields, K, [k](m, j)

	Notes:
		Called once per plate step; the plate does not change while the
		fins sub-step, so re-imposing per sub-step would be redundant.
*/
func (c *Coupling) apply_plate_coupling(t_plate *mat.Dense, t_fins []*mat.Dense) error {
	for k, t_fin := range t_fins {
		t_theta0, t_thetapi, err := c.plate_to_fin(t_plate, k)
		if err != nil {
			return err
		}
		ntheta, _ := t_fin.Dims()
		for j := range t_theta0 {
			t_fin.Set(0, j, t_theta0[j])
			t_fin.Set(ntheta-1, j, t_thetapi[j])
		}
	}
	return nil
}

/*
Residual temperature mismatch at the plate-fin coupling points, K.

	Returns:
		largest |T_plate(x,y) - T_fin| over all contact nodes of all
		fins

	Notes:
		Diagnostic only; right after apply_plate_coupling the residual
		is zero up to rounding. It never gates the run.
*/
func (c *Coupling) verify_continuity(t_plate *mat.Dense, t_fins []*mat.Dense) (float64, error) {
	max_err := 0.0
	for k, t_fin := range t_fins {
		t_theta0, t_thetapi, err := c.plate_to_fin(t_plate, k)
		if err != nil {
			return 0, err
		}
		ntheta, _ := t_fin.Dims()
		for j := range t_theta0 {
			if e := math.Abs(t_fin.At(0, j) - t_theta0[j]); e > max_err {
				max_err = e
			}
			if e := math.Abs(t_fin.At(ntheta-1, j) - t_thetapi[j]); e > max_err {
				max_err = e
			}
		}
	}
	return max_err, nil
}

// meshes_coincide reports whether two axes share the same node positions.
func meshes_coincide(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > interp_edge_tol {
			return false
		}
	}
	return true
}
