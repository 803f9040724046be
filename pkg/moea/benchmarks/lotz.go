package benchmarks

import (
	"fmt"

	"github.com/bioevolve/strainopt/pkg/moea/framework"
)

const lotzName = "LOTZ"

// LOTZ (Leading Ones, Trailing Zeros) is a benchmark function used to test
// the correctness of multi-objective algorithms over binary genomes. The
// first objective counts the leading active genes, the second the trailing
// inactive ones; the two pull the genome in opposite directions and the
// true Pareto front is the n+1 patterns 1^i 0^(n-i).
type LOTZ struct {
	genes []string
}

func NewLOTZ(numGenes int) *LOTZ {
	genes := make([]string, numGenes)
	for i := range genes {
		genes[i] = fmt.Sprintf("g%03d", i)
	}
	return &LOTZ{genes: genes}
}

func (p *LOTZ) Name() string {
	return lotzName
}

// Genes returns the gene universe the benchmark is defined over.
func (p *LOTZ) Genes() []string {
	return p.genes
}

func (p *LOTZ) Objectives() []string {
	return []string{"leading_ones", "trailing_zeros"}
}

func (p *LOTZ) Evaluate(g framework.Genome) framework.FitnessVector {
	leading := 0
	for _, id := range p.genes {
		if !g.Active(id) {
			break
		}
		leading++
	}

	trailing := 0
	for i := len(p.genes) - 1; i >= 0; i-- {
		if g.Active(p.genes[i]) {
			break
		}
		trailing++
	}

	return framework.FitnessVector{float64(leading), float64(trailing)}
}

// TrueParetoFront returns the exact front {(i, n-i) : 0 <= i <= n}. The
// numPoints argument is ignored because the front is finite.
func (p *LOTZ) TrueParetoFront(int) []framework.ObjectiveSpacePoint {
	n := len(p.genes)
	points := make([]framework.ObjectiveSpacePoint, n+1)
	for i := 0; i <= n; i++ {
		points[i] = framework.ObjectiveSpacePoint{float64(i), float64(n - i)}
	}
	return points
}
