package framework

import (
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

// Genome is a candidate solution: an activation state (on/off) for every
// gene in the model. The key set is fixed for the whole run; mutation
// returns a new Genome and never edits in place.
type Genome struct {
	genes []string // sorted, shared between genomes of one run
	state []bool
}

// NewGenome builds a genome over the given gene universe with the supplied
// activation states. Genes absent from the map default to inactive.
func NewGenome(genes []string, active map[string]bool) Genome {
	sorted := make([]string, len(genes))
	copy(sorted, genes)
	sort.Strings(sorted)

	state := make([]bool, len(sorted))
	for i, id := range sorted {
		state[i] = active[id]
	}
	return Genome{genes: sorted, state: state}
}

// AllActive returns the wild-type genome with every gene switched on.
func AllActive(genes []string) Genome {
	sorted := make([]string, len(genes))
	copy(sorted, genes)
	sort.Strings(sorted)

	state := make([]bool, len(sorted))
	for i := range state {
		state[i] = true
	}
	return Genome{genes: sorted, state: state}
}

// Genes returns the gene universe in sorted order. Callers must not modify
// the returned slice.
func (g Genome) Genes() []string {
	return g.genes
}

// Len returns the number of genes in the genome.
func (g Genome) Len() int {
	return len(g.genes)
}

// Active reports whether the gene with the given id is switched on.
func (g Genome) Active(id string) bool {
	i := sort.SearchStrings(g.genes, id)
	if i >= len(g.genes) || g.genes[i] != id {
		return false
	}
	return g.state[i]
}

// StateMap returns the genome as a gene-id to activation mapping, the form
// evaluators consume.
func (g Genome) StateMap() map[string]bool {
	m := make(map[string]bool, len(g.genes))
	for i, id := range g.genes {
		m[id] = g.state[i]
	}
	return m
}

// Inactive returns the ids of all switched-off genes (the knockout set).
func (g Genome) Inactive() []string {
	var out []string
	for i, id := range g.genes {
		if !g.state[i] {
			out = append(out, id)
		}
	}
	return out
}

// Key returns a canonical identity string for the activation pattern.
// Genomes over the same gene universe have equal keys iff their states
// are identical.
func (g Genome) Key() string {
	var b strings.Builder
	b.Grow(len(g.state))
	for _, on := range g.state {
		if on {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Mutate returns a new genome where each activation bit has been flipped
// independently with probability rate. The key set is unchanged.
func (g Genome) Mutate(rng *rand.Rand, rate float64) Genome {
	state := make([]bool, len(g.state))
	copy(state, g.state)
	for i := range state {
		if rng.Float64() < rate {
			state[i] = !state[i]
		}
	}
	return Genome{genes: g.genes, state: state}
}

// Crossover performs single-point crossover with another genome over the
// same gene universe, returning two children.
func (g Genome) Crossover(rng *rand.Rand, other Genome) (Genome, Genome) {
	a := make([]bool, len(g.state))
	b := make([]bool, len(other.state))
	copy(a, g.state)
	copy(b, other.state)

	if len(a) > 0 {
		point := rng.Intn(len(a))
		for i := point; i < len(a); i++ {
			a[i], b[i] = b[i], a[i]
		}
	}
	return Genome{genes: g.genes, state: a}, Genome{genes: g.genes, state: b}
}

// FitnessVector is an ordered tuple of objective values for one genome.
// All objectives follow the "bigger is better" convention; evaluators must
// negate naturally-minimized objectives before returning them.
type FitnessVector []float64

// Round returns the vector with every value rounded to the given number of
// significant figures. Zero and non-finite values pass through unchanged.
func (f FitnessVector) Round(digits int) FitnessVector {
	out := make(FitnessVector, len(f))
	for i, v := range f {
		out[i] = signif(v, digits)
	}
	return out
}

// Equal reports whether two vectors are identical in every dimension.
func (f FitnessVector) Equal(other FitnessVector) bool {
	if len(f) != len(other) {
		return false
	}
	for i := range f {
		if f[i] != other[i] {
			return false
		}
	}
	return true
}

// Dominates reports whether f Pareto-dominates other: at least as large in
// every dimension and not identical. Fully tied vectors never dominate each
// other.
func (f FitnessVector) Dominates(other FitnessVector) bool {
	better := false
	for i := range f {
		if f[i] < other[i] {
			return false
		}
		if f[i] > other[i] {
			better = true
		}
	}
	return better
}

// Key returns a canonical identity string for the vector, used for
// fitness-level deduplication.
func (f FitnessVector) Key() string {
	var b strings.Builder
	for i, v := range f {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(formatFloat(v))
	}
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func signif(x float64, digits int) float64 {
	if digits <= 0 || x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	mag := math.Pow(10, float64(digits)-math.Ceil(math.Log10(math.Abs(x))))
	return math.Round(x*mag) / mag
}

// Individual pairs a genome with its fitness for the duration of one
// generation's ranking. Rank and Distance are assigned by NonDominatedSort
// and CrowdingDistance.
type Individual struct {
	Genome  Genome
	Fitness FitnessVector

	// Front is the 1-based Pareto front index, 1 = non-dominated.
	Front int
	// Crowding is the diversity score within the front; +Inf marks
	// boundary points.
	Crowding float64
}

// Evaluator is the fitness oracle the optimizer depends on. Evaluate must
// be a deterministic function of the genome and must map infeasible or
// degenerate genomes to a defined poor fitness instead of failing.
type Evaluator interface {
	Name() string
	Objectives() []string
	Evaluate(Genome) FitnessVector
}

// ObjectiveSpacePoint represents an N-dimensional point in the objective
// space. For a problem with 2 objective functions f1 and f2, a point in the
// objective space could be [f1(x'), f2(x')], for the input of x'.
type ObjectiveSpacePoint []float64

// ReferenceFronter is implemented by evaluators that know their true Pareto
// front, typically benchmark problems. Plotting uses it for comparison.
type ReferenceFronter interface {
	TrueParetoFront(numPoints int) []ObjectiveSpacePoint
}
