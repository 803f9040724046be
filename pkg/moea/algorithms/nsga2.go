package algorithms

import (
	"context"
	"fmt"
	"math/rand"

	"k8s.io/klog/v2"

	"github.com/bioevolve/strainopt/pkg/moea/framework"
)

const (
	Name = "NSGA-II"

	logEvery = 10
)

// Config holds the run parameters for NSGA-II.
type Config struct {
	// PopulationSize is the survivor target per generation.
	PopulationSize int
	// Generations is the fixed iteration budget; there is no
	// convergence-based early stopping.
	Generations int
	// MutationRate is the independent per-gene flip probability.
	MutationRate float64
	// CrossoverRate is the probability of recombining two parents before
	// mutation. Zero disables crossover (mutation-only reproduction).
	CrossoverRate float64
	// RoundingDigits is the significant-figure precision used to
	// deduplicate fitness vectors.
	RoundingDigits int
	// Seed initializes the random source; fixed seeds give reproducible
	// runs against a deterministic evaluator.
	Seed int64
}

// Result captures the final ranked state of a run.
type Result struct {
	// Population is the last generation's deduplicated, ranked pool in
	// preference order.
	Population []*framework.Individual
	// ParetoFront holds the front-1 members of Population, the reported
	// approximation of the trade-off surface.
	ParetoFront []*framework.Individual
	// Generations is the number of completed generations.
	Generations int
}

// NSGAII evolves binary gene-activation genomes against a multi-objective
// evaluator using non-dominated sorting with crowding-distance tie-breaks.
type NSGAII struct {
	cfg  Config
	eval framework.Evaluator
	rng  *rand.Rand
}

// NewNSGAII validates the configuration and creates a runner.
func NewNSGAII(cfg Config, eval framework.Evaluator) (*NSGAII, error) {
	if eval == nil {
		return nil, fmt.Errorf("evaluator is required")
	}
	if cfg.PopulationSize <= 0 {
		return nil, fmt.Errorf("population size must be > 0")
	}
	if cfg.Generations <= 0 {
		return nil, fmt.Errorf("generations must be > 0")
	}
	if cfg.MutationRate < 0 || cfg.MutationRate > 1 {
		return nil, fmt.Errorf("mutation rate must be in [0, 1]")
	}
	if cfg.CrossoverRate < 0 || cfg.CrossoverRate > 1 {
		return nil, fmt.Errorf("crossover rate must be in [0, 1]")
	}
	if cfg.RoundingDigits <= 0 {
		return nil, fmt.Errorf("rounding digits must be > 0")
	}
	return &NSGAII{
		cfg:  cfg,
		eval: eval,
		rng:  rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Run executes the generational loop over the given gene universe, seeded
// with the single all-active (wild-type) genome. Each generation evaluates
// the whole pool, deduplicates by rounded fitness, ranks, selects survivors
// and produces mutated offspring; the final generation stops after ranking
// and reports its first front.
func (n *NSGAII) Run(ctx context.Context, genes []string) (Result, error) {
	if len(genes) == 0 {
		return Result{}, fmt.Errorf("gene universe is empty")
	}

	klog.InfoS("starting evolution", "algorithm", Name,
		"evaluator", n.eval.Name(), "genes", len(genes),
		"populationSize", n.cfg.PopulationSize, "generations", n.cfg.Generations,
		"mutationRate", n.cfg.MutationRate, "crossoverRate", n.cfg.CrossoverRate)

	population := []framework.Genome{framework.AllActive(genes)}

	var ranked []*framework.Individual
	for gen := 1; gen <= n.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		fronts := n.rankPopulation(population)
		ranked = flattenFronts(fronts)
		if gen%logEvery == 0 || gen == n.cfg.Generations {
			klog.InfoS("generation complete", "generation", gen,
				"evaluated", len(population), "unique", len(ranked),
				"fronts", len(fronts), "frontOne", len(fronts[0]))
		}
		if gen == n.cfg.Generations {
			break
		}

		survivors := selectSurvivors(fronts, n.cfg.PopulationSize)
		population = n.nextPopulation(survivors)
	}

	front := make([]*framework.Individual, 0)
	for _, ind := range ranked {
		if ind.Front == 1 {
			front = append(front, ind)
		}
	}

	return Result{
		Population:  ranked,
		ParetoFront: front,
		Generations: n.cfg.Generations,
	}, nil
}

// rankPopulation evaluates every genome, deduplicates by rounded fitness
// and assigns fronts and crowding distances.
func (n *NSGAII) rankPopulation(population []framework.Genome) [][]*framework.Individual {
	individuals := make([]*framework.Individual, len(population))
	for i, genome := range population {
		individuals[i] = &framework.Individual{
			Genome:  genome,
			Fitness: n.eval.Evaluate(genome),
		}
	}

	individuals = framework.Deduplicate(individuals, n.cfg.RoundingDigits)
	fronts := framework.NonDominatedSort(individuals)
	for _, front := range fronts {
		framework.CrowdingDistance(front)
	}
	return fronts
}

// selectSurvivors keeps whole fronts while they fit within the target size
// and resolves the boundary front by descending crowding distance, so the
// most isolated members of the partial front survive.
func selectSurvivors(fronts [][]*framework.Individual, target int) []*framework.Individual {
	survivors := make([]*framework.Individual, 0, target)
	for _, front := range fronts {
		if len(survivors)+len(front) <= target {
			survivors = append(survivors, front...)
			continue
		}
		partial := make([]*framework.Individual, len(front))
		copy(partial, front)
		framework.SortByPreference(partial)
		survivors = append(survivors, partial[:target-len(survivors)]...)
		break
	}
	return survivors
}

// nextPopulation merges the survivors with one offspring per population
// slot into a genome-deduplicated pool. The union may be smaller than
// survivors+offspring when offspring duplicate existing genomes; a shrunk
// pool is valid and is re-filled by later generations.
func (n *NSGAII) nextPopulation(survivors []*framework.Individual) []framework.Genome {
	next := make([]framework.Genome, 0, len(survivors)+n.cfg.PopulationSize)
	seen := make(map[string]bool, len(survivors)+n.cfg.PopulationSize)
	for _, ind := range survivors {
		if key := ind.Genome.Key(); !seen[key] {
			seen[key] = true
			next = append(next, ind.Genome)
		}
	}

	for i := 0; i < n.cfg.PopulationSize; i++ {
		child := n.offspring(survivors)
		if key := child.Key(); !seen[key] {
			seen[key] = true
			next = append(next, child)
		}
	}
	return next
}

// offspring draws parents uniformly with replacement from the survivors
// and produces one mutated child, recombining two parents first when
// crossover is enabled.
func (n *NSGAII) offspring(survivors []*framework.Individual) framework.Genome {
	parent := survivors[n.rng.Intn(len(survivors))].Genome
	if n.cfg.CrossoverRate > 0 && n.rng.Float64() < n.cfg.CrossoverRate {
		other := survivors[n.rng.Intn(len(survivors))].Genome
		parent, _ = parent.Crossover(n.rng, other)
	}
	return parent.Mutate(n.rng, n.cfg.MutationRate)
}

func flattenFronts(fronts [][]*framework.Individual) []*framework.Individual {
	var out []*framework.Individual
	for _, front := range fronts {
		out = append(out, front...)
	}
	framework.SortByPreference(out)
	return out
}
