package main

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

/*
Initial fin temperature field.

	Returns:
		temperature field, K, [m, j] with m over theta and j over r

	Notes:
		Uniform at the initial solid temperature, in equilibrium with
		the ambient air before the inlet step.
*/
func initialize_fin(params *Parameters) *mat.Dense {
	t_fin := mat.NewDense(params.ntheta_fin, params.nr_fin, nil)
	for m := 0; m < params.ntheta_fin; m++ {
		for j := 0; j < params.nr_fin; j++ {
			t_fin.Set(m, j, params.t_initial)
		}
	}
	return t_fin
}

/*
Largest stable time step of the polar fin scheme, s.

	Notes:
		The bound Fo_r + Fo_theta/(r*dtheta)^2 < 0.5 is tightest at the
		smallest nonzero radius, the first ring at r = dr, NOT at the
		rim: the angular term grows as 1/r^2 toward the center. The
		returned step carries a 20% safety margin and is typically an
		order of magnitude below the plate step, which is what forces
		the multi-rate integration.
*/
func fin_dt_limit(params *Parameters, fm *FinMesh) float64 {
	alpha := params.props.alpha_s
	r_min := fm.r[1]
	stability := alpha * (1.0/(fm.dr*fm.dr) + 1.0/((r_min*fm.dtheta)*(r_min*fm.dtheta)))
	return 0.8 * 0.5 / stability
}

/*
Advances one fin a single time step with the polar FTCS scheme.

The nodes split into four fixed regions, each handled by its own sweep
rather than re-classified per node:

Center (j=0): the 1/r term is singular; the L'Hopital limit gives

	T_{m,0}^{n+1} = T_{m,0} + 2*Fo_r*(T_{m,1} - T_{m,0})

Interior (0 < r < R):

	T_{m,j}^{n+1} = T_{m,j}
	  + Fo_r*[(T_{m,j+1} - 2T_{m,j} + T_{m,j-1}) + (dr/r_j)*(T_{m,j+1} - T_{m,j-1})]
	  + Fo_theta*(1/(r_j*dtheta)^2)*(T_{m+1,j} - 2T_{m,j} + T_{m-1,j})

Rim (j=nr-1): Robin against the ambient air via ghost-node elimination,

	T_{m,e}^{n+1} = T_{m,e}
	  + 2*Fo_r*[(T_{m,e-1} - T_{m,e}) - beta_a*(T_{m,e} - T_inf)]
	  + Fo_theta*(1/(R*dtheta)^2)*(T_{m+1,e} - 2T_{m,e} + T_{m-1,e})

Contact rows (m=0, m=ntheta-1): Dirichlet values imposed by the coupling
layer; this function copies them through untouched.

	Args:
		t_fin_n: fin temperature at step n, K, [m, j]
		fm: mesh of this fin
		dt: fin-level time step, s

	Returns:
		fin temperature at step n+1, K, [m, j]

	Notes:
		Fo_r = alpha*dt/dr^2 and Fo_theta = alpha*dt; the 1/(r*dtheta)^2
		normalization is applied per node and is NOT folded into
		Fo_theta. Folding it in and then dividing again by r^2 silently
		double-normalizes and wrecks the scheme. The rim keeps the
		-beta_a*(T - T_inf) form so the fin can heat up from warmer air
		as well as reject heat to colder air. Pure function of its
		inputs.
*/
func update_fin(t_fin_n *mat.Dense, params *Parameters, fm *FinMesh, dt float64) (*mat.Dense, error) {
	ntheta, nr := fm.ntheta, fm.nr
	if r, c := t_fin_n.Dims(); r != ntheta || c != nr {
		return nil, fmt.Errorf("fin %d field is %dx%d, mesh is %dx%d", fm.k_fin, r, c, ntheta, nr)
	}

	alpha := params.props.alpha_s
	fo_r := alpha * dt / (fm.dr * fm.dr)
	fo_theta := alpha * dt

	// Stability is governed by the first ring after the center.
	r_min := fm.r[1]
	if fo := fo_r + fo_theta/((r_min*fm.dtheta)*(r_min*fm.dtheta)); fo >= 0.5 {
		return nil, &InstabilityError{Criterion: "Fo_fin", Value: fo, Limit: 0.5}
	}

	beta_a := params.h_air * fm.dr / params.props.k_s

	t_new := mat.DenseCopyOf(t_fin_n)

	// Center, j=0.
	for m := 1; m < ntheta-1; m++ {
		t := t_fin_n.At(m, 0)
		t_new.Set(m, 0, t+2*fo_r*(t_fin_n.At(m, 1)-t))
	}

	// Interior rings.
	for j := 1; j < nr-1; j++ {
		r_j := fm.r[j]
		ang := fo_theta / ((r_j * fm.dtheta) * (r_j * fm.dtheta))
		for m := 1; m < ntheta-1; m++ {
			t := t_fin_n.At(m, j)
			d2r := t_fin_n.At(m, j+1) - 2*t + t_fin_n.At(m, j-1)
			d1r := t_fin_n.At(m, j+1) - t_fin_n.At(m, j-1)
			d2theta := t_fin_n.At(m+1, j) - 2*t + t_fin_n.At(m-1, j)
			t_new.Set(m, j, t+fo_r*(d2r+(fm.dr/r_j)*d1r)+ang*d2theta)
		}
	}

	// Rim, j=nr-1.
	rim := nr - 1
	r_rim := fm.r[rim]
	ang_rim := fo_theta / ((r_rim * fm.dtheta) * (r_rim * fm.dtheta))
	for m := 1; m < ntheta-1; m++ {
		t := t_fin_n.At(m, rim)
		conv := (t_fin_n.At(m, rim-1) - t) - beta_a*(t-params.t_inf)
		d2theta := t_fin_n.At(m+1, rim) - 2*t + t_fin_n.At(m-1, rim)
		t_new.Set(m, rim, t+2*fo_r*conv+ang_rim*d2theta)
	}

	if err := check_field_2d(fmt.Sprintf("fin %d", fm.k_fin), t_new, params.band); err != nil {
		return nil, err
	}
	return t_new, nil
}

// fin_mean is the mean fin temperature, K (diagnostic).
func fin_mean(t_fin *mat.Dense) float64 {
	r, c := t_fin.Dims()
	return mat.Sum(t_fin) / float64(r*c)
}
