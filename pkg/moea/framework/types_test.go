package framework

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenomeKeySetFixed(t *testing.T) {
	genes := []string{"gB", "gA", "gC"}
	genome := AllActive(genes)

	want := []string{"gA", "gB", "gC"}
	if diff := cmp.Diff(want, genome.Genes()); diff != "" {
		t.Errorf("gene universe mismatch (-want +got):\n%s", diff)
	}

	rng := rand.New(rand.NewSource(7))
	for _, rate := range []float64{0, 0.02, 0.5, 1} {
		mutated := genome.Mutate(rng, rate)
		if diff := cmp.Diff(genome.Genes(), mutated.Genes()); diff != "" {
			t.Errorf("rate %v changed the key set (-want +got):\n%s", rate, diff)
		}
	}
}

func TestGenomeMutateIsCopy(t *testing.T) {
	genome := AllActive([]string{"gA", "gB"})
	rng := rand.New(rand.NewSource(1))

	mutated := genome.Mutate(rng, 1)
	if mutated.Active("gA") || mutated.Active("gB") {
		t.Errorf("rate 1 must flip every gene, got %s", mutated.Key())
	}
	if !genome.Active("gA") || !genome.Active("gB") {
		t.Error("mutation modified the parent genome")
	}
}

func TestGenomeZeroRateIsIdentity(t *testing.T) {
	genome := NewGenome([]string{"gA", "gB", "gC"}, map[string]bool{"gA": true, "gC": true})
	rng := rand.New(rand.NewSource(1))

	mutated := genome.Mutate(rng, 0)
	if mutated.Key() != genome.Key() {
		t.Errorf("rate 0 changed the genome: %s -> %s", genome.Key(), mutated.Key())
	}
}

func TestGenomeKey(t *testing.T) {
	a := NewGenome([]string{"gA", "gB"}, map[string]bool{"gA": true})
	b := NewGenome([]string{"gB", "gA"}, map[string]bool{"gA": true})
	c := NewGenome([]string{"gA", "gB"}, map[string]bool{"gB": true})

	if a.Key() != b.Key() {
		t.Errorf("identical genomes have different keys: %s vs %s", a.Key(), b.Key())
	}
	if a.Key() == c.Key() {
		t.Errorf("distinct genomes share key %s", a.Key())
	}
}

func TestGenomeCrossoverKeySet(t *testing.T) {
	genes := []string{"gA", "gB", "gC", "gD"}
	parent1 := AllActive(genes)
	parent2 := NewGenome(genes, nil)
	rng := rand.New(rand.NewSource(3))

	child1, child2 := parent1.Crossover(rng, parent2)
	for _, child := range []Genome{child1, child2} {
		if diff := cmp.Diff(parent1.Genes(), child.Genes()); diff != "" {
			t.Errorf("crossover changed the key set (-want +got):\n%s", diff)
		}
	}
	// Every position comes from one of the two complementary parents, so
	// together the children carry exactly one active copy per gene.
	for _, id := range genes {
		if child1.Active(id) == child2.Active(id) {
			t.Errorf("gene %s not exchanged between children", id)
		}
	}
}

func TestDominates(t *testing.T) {
	tests := []struct {
		name string
		a, b FitnessVector
		want bool
	}{
		{"strictly better in all", FitnessVector{3, 3}, FitnessVector{1, 1}, true},
		{"better in one, equal in other", FitnessVector{3, 1}, FitnessVector{1, 1}, true},
		{"identical never dominates", FitnessVector{2, 2}, FitnessVector{2, 2}, false},
		{"trade-off does not dominate", FitnessVector{1, 5}, FitnessVector{5, 1}, false},
		{"worse in one dimension", FitnessVector{3, 0}, FitnessVector{1, 1}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Dominates(tc.b); got != tc.want {
				t.Errorf("Dominates(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestRoundSignificantFigures(t *testing.T) {
	tests := []struct {
		in     float64
		digits int
		want   float64
	}{
		{12345.678, 4, 12350},
		{0.00123456, 4, 0.001235},
		{15.0000001, 4, 15},
		{-987.654, 3, -988},
		{0, 4, 0},
	}
	for _, tc := range tests {
		got := FitnessVector{tc.in}.Round(tc.digits)[0]
		if math.Abs(got-tc.want) > 1e-12*math.Abs(tc.want) {
			t.Errorf("Round(%v, %d) = %v, want %v", tc.in, tc.digits, got, tc.want)
		}
	}
}

func TestRoundMakesSolverNoiseEqual(t *testing.T) {
	a := FitnessVector{14.9999999999, 0.3000000001}.Round(4)
	b := FitnessVector{15.0000000001, 0.2999999999}.Round(4)
	if !a.Equal(b) {
		t.Errorf("rounded vectors differ: %v vs %v", a, b)
	}
	if a.Key() != b.Key() {
		t.Errorf("rounded keys differ: %s vs %s", a.Key(), b.Key())
	}
}
