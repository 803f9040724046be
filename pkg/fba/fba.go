package fba

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const simplexTol = 1e-10

// solveFlux maximizes objective·v subject to the steady-state constraint
// S·v = 0 and per-reaction bounds lb <= v <= ub. It returns the optimal
// objective value and the flux distribution.
//
// The problem is rewritten into the standard form required by the simplex
// solver (minimize c·x, A·x = b, x >= 0): fluxes are shifted by their lower
// bounds and one slack variable per reaction encodes the upper bound.
func solveFlux(S *mat.Dense, lb, ub, objective []float64) (float64, []float64, error) {
	m, n := S.Dims()
	if len(lb) != n || len(ub) != n || len(objective) != n {
		return 0, nil, fmt.Errorf("dimension mismatch: %d reactions, %d/%d bounds, %d objective", n, len(lb), len(ub), len(objective))
	}

	cols := 2 * n
	rows := m + n
	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)
	c := make([]float64, cols)

	// Steady state: S·x = -S·lb
	for i := 0; i < m; i++ {
		rhs := 0.0
		for j := 0; j < n; j++ {
			coeff := S.At(i, j)
			a.Set(i, j, coeff)
			rhs -= coeff * lb[j]
		}
		b[i] = rhs
	}

	// Upper bounds: x_j + s_j = ub_j - lb_j
	for j := 0; j < n; j++ {
		a.Set(m+j, j, 1)
		a.Set(m+j, n+j, 1)
		b[m+j] = ub[j] - lb[j]
	}

	// Simplex minimizes; negate to maximize the objective.
	for j := 0; j < n; j++ {
		c[j] = -objective[j]
	}

	_, x, err := lp.Simplex(c, a, b, simplexTol, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("simplex: %w", err)
	}

	fluxes := make([]float64, n)
	value := 0.0
	for j := 0; j < n; j++ {
		fluxes[j] = x[j] + lb[j]
		value += objective[j] * fluxes[j]
	}
	return value, fluxes, nil
}

// stoichiometricMatrix builds the metabolite-by-reaction matrix for the
// model, with metabolite rows in sorted id order and reaction columns in
// model order.
func stoichiometricMatrix(model *Model) *mat.Dense {
	mets := model.Metabolites()
	metIndex := make(map[string]int, len(mets))
	for i, id := range mets {
		metIndex[id] = i
	}

	s := mat.NewDense(len(mets), len(model.Reactions), nil)
	for j, rxn := range model.Reactions {
		for met, coeff := range rxn.Stoichiometry {
			s.Set(metIndex[met], j, coeff)
		}
	}
	return s
}
