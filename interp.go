package main

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Slack for queries sitting numerically on a domain edge, m.
const interp_edge_tol = 1e-12

/*
Linear interpolation of a sampled 1-D profile.

	Args:
		x_q: query coordinates, m, [i]
		x_src: source node coordinates, ascending, m, [s]
		t_src: source values at x_src, K, [s]

	Returns:
		interpolated values at x_q, K, [i]

	Notes:
		Queries outside [x_src[0], x_src[end]] raise InterpolationError;
		this routine never extrapolates.
*/
func interp_linear(x_q, x_src, t_src []float64) ([]float64, error) {
	lo, hi := x_src[0], x_src[len(x_src)-1]
	out := make([]float64, len(x_q))
	for i, xq := range x_q {
		if xq < lo-interp_edge_tol || xq > hi+interp_edge_tol {
			return nil, &InterpolationError{Coord: "x", Q: xq, Lo: lo, Hi: hi}
		}
		out[i] = interp_point(xq, x_src, t_src)
	}
	return out, nil
}

// interp_point evaluates one in-range linear interpolation query.
func interp_point(xq float64, x_src, t_src []float64) float64 {
	n := len(x_src)
	if xq <= x_src[0] {
		return t_src[0]
	}
	if xq >= x_src[n-1] {
		return t_src[n-1]
	}
	// First node strictly above the query.
	s := sort.SearchFloat64s(x_src, xq)
	if x_src[s] == xq {
		return t_src[s]
	}
	w := (xq - x_src[s-1]) / (x_src[s] - x_src[s-1])
	return t_src[s-1] + w*(t_src[s]-t_src[s-1])
}

/*
Bilinear interpolation of a 2-D field sampled on a rectilinear grid.

	Args:
		t: field values, K, [i, j] with i over x_grid and j over y_grid
		x_grid: node coordinates on x, ascending, m, [i]
		y_grid: node coordinates on y, ascending, m, [j]
		x_q, y_q: query point, m

	Returns:
		interpolated value, K

	Notes:
		Out-of-range queries raise InterpolationError instead of
		extrapolating; a coupling query landing outside the plate means
		the geometry is misconfigured.
*/
func interp_bilinear(t *mat.Dense, x_grid, y_grid []float64, x_q, y_q float64) (float64, error) {
	x_lo, x_hi := x_grid[0], x_grid[len(x_grid)-1]
	y_lo, y_hi := y_grid[0], y_grid[len(y_grid)-1]
	if x_q < x_lo-interp_edge_tol || x_q > x_hi+interp_edge_tol {
		return 0, &InterpolationError{Coord: "x", Q: x_q, Lo: x_lo, Hi: x_hi}
	}
	if y_q < y_lo-interp_edge_tol || y_q > y_hi+interp_edge_tol {
		return 0, &InterpolationError{Coord: "y", Q: y_q, Lo: y_lo, Hi: y_hi}
	}

	i, wx := cell_weight(x_q, x_grid)
	j, wy := cell_weight(y_q, y_grid)

	t00 := t.At(i, j)
	t10 := t.At(i+1, j)
	t01 := t.At(i, j+1)
	t11 := t.At(i+1, j+1)

	return (1-wx)*(1-wy)*t00 + wx*(1-wy)*t10 + (1-wx)*wy*t01 + wx*wy*t11, nil
}

// cell_weight locates the grid cell holding an in-range query and the
// normalized position inside it.
func cell_weight(q float64, grid []float64) (int, float64) {
	n := len(grid)
	if q <= grid[0] {
		return 0, 0
	}
	if q >= grid[n-1] {
		return n - 2, 1
	}
	s := sort.SearchFloat64s(grid, q)
	if grid[s] == q {
		if s == n-1 {
			return s - 1, 1
		}
		return s, 0
	}
	return s - 1, (q - grid[s-1]) / (grid[s] - grid[s-1])
}
