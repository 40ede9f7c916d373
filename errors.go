package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Plausible temperature band, K. Values escaping the band are treated as a
// modeling or sign error, never as legitimate physics.
type PhysicalBand struct {
	t_min float64 // lower bound, K
	t_max float64 // upper bound, K
}

var DefaultPhysicalBand = PhysicalBand{t_min: 200.0, t_max: 500.0}

func (b PhysicalBand) contains(t float64) bool {
	return t > b.t_min && t < b.t_max
}

// InstabilityError reports a stability bound that would be violated by the
// requested step. It is raised before the step is taken, so the previous
// fields are still intact.
type InstabilityError struct {
	Criterion string  // "CFL", "Fo_plate" or "Fo_fin"
	Value     float64 // computed dimensionless number
	Limit     float64 // stability bound
}

func (e *InstabilityError) Error() string {
	return fmt.Sprintf("instability: %s = %.4f >= %.2f, reduce dt or coarsen the mesh", e.Criterion, e.Value, e.Limit)
}

// DivergenceError reports a non-finite value found in a freshly computed
// field. All results after this point would be meaningless.
type DivergenceError struct {
	Domain string // "fluid", "plate", "fin 0".."fin 2"
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("numerical divergence: non-finite temperature in %s field", e.Domain)
}

// PhysicalRangeError reports a finite temperature outside the configured
// plausible band.
type PhysicalRangeError struct {
	Domain string
	T      float64 // offending temperature, K
	Band   PhysicalBand
}

func (e *PhysicalRangeError) Error() string {
	return fmt.Sprintf("temperature %.2f K in %s field outside physical band (%.0f, %.0f) K",
		e.T, e.Domain, e.Band.t_min, e.Band.t_max)
}

// InterpolationError reports a coupling query outside the source domain.
// Extrapolating silently would hide a geometry misconfiguration.
type InterpolationError struct {
	Coord  string  // "x" or "y"
	Q      float64 // query coordinate, m
	Lo, Hi float64 // source domain bounds, m
}

func (e *InterpolationError) Error() string {
	return fmt.Sprintf("interpolation query %s = %.6e m outside source range [%.6e, %.6e] m",
		e.Coord, e.Q, e.Lo, e.Hi)
}

/*
Scans a 1-D temperature field for non-finite or out-of-band values.

	Args:
		domain: field name used in the error
		t: temperature field, K, [i]
		band: plausible temperature band, K
*/
func check_field_1d(domain string, t []float64, band PhysicalBand) error {
	for _, v := range t {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &DivergenceError{Domain: domain}
		}
		if !band.contains(v) {
			return &PhysicalRangeError{Domain: domain, T: v, Band: band}
		}
	}
	return nil
}

/*
Scans a 2-D temperature field for non-finite or out-of-band values.

	Args:
		domain: field name used in the error
		t: temperature field, K, [i, j]
		band: plausible temperature band, K
*/
func check_field_2d(domain string, t *mat.Dense, band PhysicalBand) error {
	return check_field_1d(domain, t.RawMatrix().Data, band)
}
