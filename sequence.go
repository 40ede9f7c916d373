package main

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

type RunState int

const (
	INITIALIZING RunState = iota
	STEPPING
	CONVERGED
	TIME_LIMIT_REACHED
	DIVERGED
)

func (s RunState) String() string {
	switch s {
	case INITIALIZING:
		return "initializing"
	case STEPPING:
		return "stepping"
	case CONVERGED:
		return "converged"
	case TIME_LIMIT_REACHED:
		return "time_limit_reached"
	case DIVERGED:
		return "diverged"
	default:
		return fmt.Sprintf("RunState(%d)", int(s))
	}
}

// RunResult summarizes a finished transient run.
type RunResult struct {
	state   RunState
	n_steps int         // plate-level steps taken
	time    float64     // simulated time at the final state, s
	final   *Conditions // state at the final step
	balance EnergyBalance
}

// Sequence drives the multi-rate transient: one fluid step and one plate
// step per outer iteration, with each fin sub-stepping n_sub times inside
// the plate step. The fins advance concurrently; within a plate step they
// only read frozen plate data through their Dirichlet contact rows.
type Sequence struct {
	params   *Parameters
	msh      *Meshes
	coupling *Coupling
	recorder *Recorder
	log      *logrus.Entry

	epsilon float64 // steady-state threshold on max |dT/dt|, K/s
	t_max   float64 // simulated-time limit, s
	dt_fin  float64 // fin sub-step, s
	n_sub   int     // fin sub-steps per plate step

	state RunState
}

/*
Builds a run sequence for the given parameters.

	Args:
		params: finalized and validated parameters
		epsilon: steady-state threshold, K/s
		t_max: simulated-time limit, s
		record_stride: plate steps between history records

	Notes:
		The fin sub-step is the plate step divided by the smallest
		integer that keeps it under the polar stability limit, so the
		two clocks always meet at plate-step boundaries.
*/
func NewSequence(params *Parameters, epsilon, t_max float64, record_stride int, log *logrus.Logger) (*Sequence, error) {
	if epsilon <= 0 {
		return nil, fmt.Errorf("steady-state threshold must be positive, got %g", epsilon)
	}
	if t_max <= 0 {
		return nil, fmt.Errorf("time limit must be positive, got %g", t_max)
	}

	msh, err := NewMeshes(params)
	if err != nil {
		return nil, err
	}
	coupling, err := NewCoupling(params, msh)
	if err != nil {
		return nil, err
	}

	dt_fin_max := fin_dt_limit(params, msh.fins[0])
	n_sub := int(math.Ceil(params.dt / dt_fin_max))
	if n_sub < 1 {
		n_sub = 1
	}
	dt_fin := params.dt / float64(n_sub)

	seq := &Sequence{
		params:   params,
		msh:      msh,
		coupling: coupling,
		recorder: NewRecorder(record_stride),
		log:      log.WithField("material", string(params.props.material)),
		epsilon:  epsilon,
		t_max:    t_max,
		dt_fin:   dt_fin,
		n_sub:    n_sub,
		state:    INITIALIZING,
	}

	seq.log.WithFields(logrus.Fields{
		"dt_plate_s": params.dt,
		"dt_fin_s":   dt_fin,
		"n_sub":      n_sub,
		"nodes":      msh.total_nodes(),
	}).Info("sequence ready")

	return seq, nil
}

/*
Runs the transient until steady state, the time limit, or failure.

	Args:
		ctx: cancels the run between plate steps

	Returns:
		the run result; on numerical failure the result carries the
		DIVERGED state and the last good conditions together with a
		non-nil error

	Notes:
		The current state is replaced only after the fluid, the plate
		and all three fins succeeded for the step, so a failure never
		leaves a half-updated field behind.
*/
func (seq *Sequence) run(ctx context.Context) (*RunResult, error) {
	if err := seq.params.verify_stability(); err != nil {
		return nil, err
	}

	current := initialize_conditions(seq.params)
	seq.state = STEPPING

	time := 0.0
	n := 0
	var eb EnergyBalance
	max_rate := math.Inf(1)

	continuity, err := seq.coupling.verify_continuity(current.t_plate, current.t_fins)
	if err != nil {
		return nil, err
	}
	seq.recorder.recording(0, 0.0, current, eb, max_rate, continuity)

	for {
		select {
		case <-ctx.Done():
			return &RunResult{state: seq.state, n_steps: n, time: time, final: current, balance: eb}, ctx.Err()
		default:
		}

		next, err := seq.step(current)
		if err != nil {
			if is_numerical_failure(err) {
				seq.state = DIVERGED
				seq.log.WithError(err).WithFields(logrus.Fields{
					"step":   n,
					"time_s": time,
				}).Error("run diverged")
				return &RunResult{state: DIVERGED, n_steps: n, time: time, final: current, balance: eb}, err
			}
			return nil, err
		}

		eb = compute_energy_balance(next, current, seq.params, seq.msh, seq.params.dt)
		max_rate = next.max_rate(current, seq.params.dt)

		current = next
		n++
		time = float64(n) * seq.params.dt

		if seq.recorder.wants(n) || max_rate < seq.epsilon || time >= seq.t_max {
			continuity, err = seq.coupling.verify_continuity(current.t_plate, current.t_fins)
			if err != nil {
				return nil, err
			}
			seq.recorder.recording(n, time, current, eb, max_rate, continuity)
			seq.log.WithFields(logrus.Fields{
				"step":         n,
				"time_s":       time,
				"t_plate_mean": plate_mean(current.t_plate),
				"max_rate":     max_rate,
				"residual":     eb.residual,
			}).Debug("recorded")
		}

		if max_rate < seq.epsilon {
			seq.state = CONVERGED
			seq.log.WithFields(logrus.Fields{
				"step":   n,
				"time_s": time,
			}).Info("steady state reached")
			return &RunResult{state: CONVERGED, n_steps: n, time: time, final: current, balance: eb}, nil
		}
		if time >= seq.t_max {
			seq.state = TIME_LIMIT_REACHED
			seq.log.WithFields(logrus.Fields{
				"step":     n,
				"time_s":   time,
				"max_rate": max_rate,
			}).Info("time limit reached before steady state")
			return &RunResult{state: TIME_LIMIT_REACHED, n_steps: n, time: time, final: current, balance: eb}, nil
		}
	}
}

// step advances every domain one plate-level step: fluid first against the
// step-n plate surface, then the plate against the fresh fluid, then the
// fins against the fresh plate. `current` is never written.
func (seq *Sequence) step(current *Conditions) (*Conditions, error) {
	dt := seq.params.dt

	t_surface, err := seq.coupling.surface_to_fluid(current.t_plate)
	if err != nil {
		return nil, err
	}
	t_fluid_next, err := update_fluid(current.t_fluid, t_surface, seq.params, seq.msh, dt)
	if err != nil {
		return nil, err
	}

	t_fluid_on_plate, err := seq.coupling.fluid_to_plate(t_fluid_next)
	if err != nil {
		return nil, err
	}
	t_plate_next, err := update_plate(current.t_plate, t_fluid_on_plate, seq.params, seq.msh, dt)
	if err != nil {
		return nil, err
	}

	// Fins: impose the fresh plate top once, then sub-step each fin
	// independently. The fin fields never touch each other's storage.
	t_fins_work := make([]*mat.Dense, len(current.t_fins))
	for k, t_fin := range current.t_fins {
		t_fins_work[k] = mat.DenseCopyOf(t_fin)
	}
	if err := seq.coupling.apply_plate_coupling(t_plate_next, t_fins_work); err != nil {
		return nil, err
	}

	var g errgroup.Group
	for k := range t_fins_work {
		k := k
		g.Go(func() error {
			t_fin := t_fins_work[k]
			for s := 0; s < seq.n_sub; s++ {
				var err error
				t_fin, err = update_fin(t_fin, seq.params, seq.msh.fins[k], seq.dt_fin)
				if err != nil {
					return fmt.Errorf("fin %d: %w", k, err)
				}
			}
			t_fins_work[k] = t_fin
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewConditions(t_fluid_next, t_plate_next, t_fins_work), nil
}

// is_numerical_failure reports whether err is one of the solver failure
// modes that end a run as DIVERGED rather than as a setup error.
func is_numerical_failure(err error) bool {
	var inst *InstabilityError
	var div *DivergenceError
	var rng *PhysicalRangeError
	return errors.As(err, &inst) || errors.As(err, &div) || errors.As(err, &rng)
}
