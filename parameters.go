package main

import (
	"fmt"
	"math"
	"sort"
)

/*
Parameters of the GPU cooling module.

Geometry (Table I), operating point (Table II), water and solid properties
(Tables III-V) and the spatial/temporal discretization. The value is built
once per run and never mutated while stepping; comparing materials means
constructing one Parameters per material.
*/
type Parameters struct {
	props MaterialProperties

	// --- geometry (Table I) ---
	l_x           float64   // plate length in the flow direction, m
	w             float64   // plate width (z axis), m
	e_base        float64   // base plate thickness, m
	e_water       float64   // hydraulic gap of the coolant channel, m
	d_fin         float64   // fin (dome) diameter, m
	r_fin         float64   // fin radius D/2, m
	p_fin         float64   // pitch between fin centers, m
	n_fin         int       // number of fins
	x_fin_centers []float64 // fin center positions on the x axis, m, [k]

	// --- operating point (Table II) ---
	q_flow    float64 // volumetric water flow, m3/s
	u         float64 // mean water velocity, m/s
	h_water   float64 // water-plate convective coefficient, W/(m2 K)
	h_air     float64 // air-surface convective coefficient, W/(m2 K)
	t_inf     float64 // ambient air temperature, K
	t_initial float64 // initial solid temperature, K
	t_f_in    float64 // coolant inlet temperature after the step change, K

	// --- discretization ---
	nx_fluid   int     // fluid nodes on x
	nx_plate   int     // plate nodes on x
	ny_plate   int     // plate nodes on y
	nr_fin     int     // fin radial nodes
	ntheta_fin int     // fin angular nodes
	dx_fluid   float64 // fluid node spacing, m
	dx_plate   float64 // plate node spacing on x, m
	dy_plate   float64 // plate node spacing on y, m
	dr_fin     float64 // fin radial spacing, m
	dtheta_fin float64 // fin angular spacing, rad
	dt         float64 // plate-level time step, s

	band PhysicalBand // plausible temperature band, K
}

/*
Builds the parameter set for the selected material with the reference
operating point (23 degree C ambient, inlet step to 80 degree C).

	Args:
		material: "Al" or "SS"

	Returns:
		validated parameter set

	Notes:
		The plate time step is chosen as 80% of the most restrictive of
		the plate Fourier limit and the fluid CFL limit. The fin domain
		needs a smaller step; see fin_dt_limit.
*/
func NewParameters(material Material) (*Parameters, error) {
	props, err := NewMaterialProperties(material)
	if err != nil {
		return nil, err
	}

	p := &Parameters{
		props: props,

		l_x:           0.03,
		w:             0.10,
		e_base:        0.01,
		e_water:       0.003,
		d_fin:         0.008,
		r_fin:         0.004,
		p_fin:         0.010,
		n_fin:         3,
		x_fin_centers: []float64{0.005, 0.015, 0.025},

		q_flow:    3.33e-5,
		u:         0.111,
		h_water:   600.0,
		h_air:     10.0,
		t_inf:     296.15, // 23 degree C
		t_initial: 296.15, // 23 degree C
		t_f_in:    353.15, // 80 degree C

		nx_fluid:   60,
		nx_plate:   60,
		ny_plate:   20,
		nr_fin:     10,
		ntheta_fin: 20,

		band: DefaultPhysicalBand,
	}

	if err := p.finalize(); err != nil {
		return nil, err
	}
	return p, nil
}

// finalize derives the node spacings and the plate time step, then runs the
// setup validation. Must be re-run if the operating point is adjusted at
// construction time (the time step depends on it).
func (p *Parameters) finalize() error {
	p.dx_fluid = p.l_x / float64(p.nx_fluid-1)
	p.dx_plate = p.l_x / float64(p.nx_plate-1)
	p.dy_plate = p.e_base / float64(p.ny_plate-1)
	p.dr_fin = p.r_fin / float64(p.nr_fin-1)
	p.dtheta_fin = math.Pi / float64(p.ntheta_fin-1)

	// Plate Fourier limit: Fo_x + Fo_y <= 0.5
	fo_total_inv := 1.0/(p.dx_plate*p.dx_plate) + 1.0/(p.dy_plate*p.dy_plate)
	dt_max_fourier := 0.5 / (p.props.alpha_s * fo_total_inv)

	// Fluid CFL limit: u*dt/dx <= 1
	dt_max_cfl := p.dx_fluid / p.u

	p.dt = 0.8 * math.Min(dt_max_fourier, dt_max_cfl)

	return p.validate()
}

// validate rejects non-physical configurations before any stepping begins.
func (p *Parameters) validate() error {
	type positive struct {
		name  string
		value float64
	}
	for _, q := range []positive{
		{"L_x", p.l_x}, {"W", p.w}, {"e_base", p.e_base}, {"e_water", p.e_water},
		{"Q", p.q_flow}, {"u", p.u}, {"h_water", p.h_water}, {"h_air", p.h_air},
		{"dx_fluid", p.dx_fluid}, {"dx_plate", p.dx_plate}, {"dy_plate", p.dy_plate},
		{"dr_fin", p.dr_fin}, {"dtheta_fin", p.dtheta_fin},
	} {
		if q.value <= 0 {
			return fmt.Errorf("%s must be positive, got %g", q.name, q.value)
		}
	}

	if p.r_fin != p.d_fin/2 {
		return fmt.Errorf("fin radius must be D/2, got r = %g, D = %g", p.r_fin, p.d_fin)
	}

	type counted struct {
		name string
		n    int
	}
	for _, q := range []counted{
		{"Nx_fluid", p.nx_fluid}, {"Nx_plate", p.nx_plate}, {"Ny_plate", p.ny_plate},
		{"Nr_fin", p.nr_fin}, {"Ntheta_fin", p.ntheta_fin},
	} {
		if q.n < 3 {
			return fmt.Errorf("%s must be at least 3 nodes, got %d", q.name, q.n)
		}
	}

	if len(p.x_fin_centers) != p.n_fin {
		return fmt.Errorf("expected %d fin centers, got %d", p.n_fin, len(p.x_fin_centers))
	}
	if !sort.Float64sAreSorted(p.x_fin_centers) {
		return fmt.Errorf("fin centers must be sorted along x: %v", p.x_fin_centers)
	}
	for k, xc := range p.x_fin_centers {
		if xc-p.r_fin < 0 || xc+p.r_fin > p.l_x {
			return fmt.Errorf("fin %d at x = %g m extends outside the plate [0, %g] m", k, xc, p.l_x)
		}
		if k > 0 && p.x_fin_centers[k]-p.x_fin_centers[k-1] < p.d_fin {
			return fmt.Errorf("fins %d and %d overlap: centers %g and %g m, diameter %g m",
				k-1, k, p.x_fin_centers[k-1], xc, p.d_fin)
		}
	}

	for _, t := range []float64{p.t_inf, p.t_initial, p.t_f_in} {
		if !p.band.contains(t) {
			return fmt.Errorf("temperature %g K outside physical band (%g, %g) K", t, p.band.t_min, p.band.t_max)
		}
	}

	// Covers fast aluminum down to slow stainless steel.
	if p.dt <= 1e-6 || p.dt >= 5e-2 {
		return fmt.Errorf("derived dt = %.2e s outside the reasonable range (1e-6, 5e-2) s", p.dt)
	}

	return p.verify_stability()
}

/*
Checks the plate-level stability criteria for the chosen time step.

	Returns:
		InstabilityError if CFL >= 1 or Fo_x + Fo_y >= 0.5

	Notes:
		The polar fin criterion is checked per sub-step against the fin
		time step in update_fin; the plate step is allowed to exceed it
		because the fins advance with their own smaller step.
*/
func (p *Parameters) verify_stability() error {
	if cfl := p.CFL(); cfl >= 1.0 {
		return &InstabilityError{Criterion: "CFL", Value: cfl, Limit: 1.0}
	}
	if fo := p.Fo_x() + p.Fo_y(); fo >= 0.5 {
		return &InstabilityError{Criterion: "Fo_plate", Value: fo, Limit: 0.5}
	}
	return nil
}

// A_c is the flow area of the coolant channel, m2.
func (p *Parameters) A_c() float64 {
	return p.w * p.e_water
}

// D_h is the hydraulic diameter of the channel, m. 2*e_water is valid for a
// rectangular channel with W >> e_water.
func (p *Parameters) D_h() float64 {
	return 2.0 * p.e_water
}

// l_air is the air-exposed length per fin (semicircumference plus the flat
// separation to the next dome), m.
func (p *Parameters) l_air() float64 {
	return math.Pi*p.r_fin + (p.p_fin - p.d_fin)
}

// A_air is the total area exposed to the ambient air, m2.
func (p *Parameters) A_air() float64 {
	return p.l_air() * p.w * float64(p.n_fin)
}

// gamma is the fluid-solid thermal coupling parameter
// h_water/(rho_water*cp_water*e_water), 1/s. It scales the relaxation of
// the coolant temperature toward the plate surface.
func (p *Parameters) gamma() float64 {
	return p.h_water / (rho_water * cp_water * p.e_water)
}

// CFL is the Courant number of the fluid scheme, u*dt/dx.
func (p *Parameters) CFL() float64 {
	return p.u * p.dt / p.dx_fluid
}

// Fo_x is the plate Fourier number on x, alpha*dt/dx^2.
func (p *Parameters) Fo_x() float64 {
	return p.props.alpha_s * p.dt / (p.dx_plate * p.dx_plate)
}

// Fo_y is the plate Fourier number on y, alpha*dt/dy^2.
func (p *Parameters) Fo_y() float64 {
	return p.props.alpha_s * p.dt / (p.dy_plate * p.dy_plate)
}

func (p *Parameters) String() string {
	return fmt.Sprintf("Parameters(material=%s, dt=%.2e s, CFL=%.3f, Fo_plate=%.3f)",
		p.props, p.dt, p.CFL(), p.Fo_x()+p.Fo_y())
}
