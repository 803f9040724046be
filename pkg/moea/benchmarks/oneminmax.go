package benchmarks

import (
	"fmt"

	"github.com/bioevolve/strainopt/pkg/moea/framework"
)

const oneMinMaxName = "OneMinMax"

// OneMinMax scores a genome by its number of active and inactive genes at
// the same time. Every genome is Pareto-optimal, which makes the problem a
// pure diversity benchmark: a good optimizer should spread its front across
// all n+1 objective values instead of collapsing to a corner.
type OneMinMax struct {
	genes []string
}

func NewOneMinMax(numGenes int) *OneMinMax {
	genes := make([]string, numGenes)
	for i := range genes {
		genes[i] = fmt.Sprintf("g%03d", i)
	}
	return &OneMinMax{genes: genes}
}

func (p *OneMinMax) Name() string {
	return oneMinMaxName
}

func (p *OneMinMax) Genes() []string {
	return p.genes
}

func (p *OneMinMax) Objectives() []string {
	return []string{"active", "inactive"}
}

func (p *OneMinMax) Evaluate(g framework.Genome) framework.FitnessVector {
	active := 0
	for _, id := range p.genes {
		if g.Active(id) {
			active++
		}
	}
	return framework.FitnessVector{float64(active), float64(len(p.genes) - active)}
}

// TrueParetoFront returns {(i, n-i) : 0 <= i <= n}; every objective value
// pair is non-dominated.
func (p *OneMinMax) TrueParetoFront(int) []framework.ObjectiveSpacePoint {
	n := len(p.genes)
	points := make([]framework.ObjectiveSpacePoint, n+1)
	for i := 0; i <= n; i++ {
		points[i] = framework.ObjectiveSpacePoint{float64(i), float64(n - i)}
	}
	return points
}
