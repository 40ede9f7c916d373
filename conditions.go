package main

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Conditions holds the full thermal state at one time level: the coolant
// line, the base plate, and the three fins. The orchestrator owns exactly
// two of these (current and next) and swaps them only after every solver
// succeeded.
type Conditions struct {
	t_fluid []float64    // coolant temperature at step n, K, [i]
	t_plate *mat.Dense   // plate temperature at step n, K, [i, j]
	t_fins  []*mat.Dense // fin temperatures at step n, K, [k](m, j)
}

func NewConditions(t_fluid []float64, t_plate *mat.Dense, t_fins []*mat.Dense) *Conditions {
	return &Conditions{
		t_fluid: t_fluid,
		t_plate: t_plate,
		t_fins:  t_fins,
	}
}

// initialize_conditions builds the state at t = 0: every solid node and the
// coolant line at t_initial, except the coolant inlet which is pinned at
// t_f_in from the first instant.
func initialize_conditions(params *Parameters) *Conditions {
	t_fluid_n0 := initialize_fluid(params)

	t_plate_n0 := initialize_plate(params)

	t_fins_n0 := make([]*mat.Dense, params.n_fin)
	for k := range t_fins_n0 {
		t_fins_n0[k] = initialize_fin(params)
	}

	return NewConditions(t_fluid_n0, t_plate_n0, t_fins_n0)
}

// clone returns a deep copy sharing no storage with the receiver.
func (c *Conditions) clone() *Conditions {
	t_fluid := make([]float64, len(c.t_fluid))
	copy(t_fluid, c.t_fluid)

	t_fins := make([]*mat.Dense, len(c.t_fins))
	for k, t_fin := range c.t_fins {
		t_fins[k] = mat.DenseCopyOf(t_fin)
	}

	return NewConditions(t_fluid, mat.DenseCopyOf(c.t_plate), t_fins)
}

/*
Largest temperature rate of change between two consecutive states, K/s.

	Args:
		prev: state at step n
		dt: plate-level time step, s

	Returns:
		max over all nodes of |T(n+1) - T(n)| / dt

	Notes:
		This is the steady-state criterion: the run has converged when
		the value drops below the configured threshold.
*/
func (c *Conditions) max_rate(prev *Conditions, dt float64) float64 {
	max_delta := 0.0
	for i, t := range c.t_fluid {
		if d := math.Abs(t - prev.t_fluid[i]); d > max_delta {
			max_delta = d
		}
	}
	max_delta = math.Max(max_delta, max_abs_diff(c.t_plate, prev.t_plate))
	for k, t_fin := range c.t_fins {
		max_delta = math.Max(max_delta, max_abs_diff(t_fin, prev.t_fins[k]))
	}
	return max_delta / dt
}

func max_abs_diff(a, b *mat.Dense) float64 {
	ra := a.RawMatrix()
	rb := b.RawMatrix()
	max_delta := 0.0
	for i, v := range ra.Data {
		if d := math.Abs(v - rb.Data[i]); d > max_delta {
			max_delta = d
		}
	}
	return max_delta
}
