package fba

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/bioevolve/strainopt/pkg/moea/framework"
)

// DefaultBiomassFraction is the share of optimal growth a knockout strain
// must retain while the secondary objective is optimized.
const DefaultBiomassFraction = 0.99

// Evaluator computes the (growth, target) fitness vector for a gene
// activation genome by flux balance analysis. Evaluation runs in two
// stages: growth is maximized first, then growth is pinned near its
// optimum and the target reaction flux is maximized. Genomes whose
// knockouts make the network infeasible, or that cannot grow at all, score
// the zero sentinel vector instead of failing the run.
type Evaluator struct {
	model *Model
	rules []Rule

	s          *mat.Dense
	biomassIdx int
	targetIdx  int

	// biomassFraction is the stage-two growth floor as a fraction of the
	// stage-one optimum.
	biomassFraction float64
}

// NewEvaluator compiles the model's gene rules and stoichiometric matrix.
func NewEvaluator(model *Model, biomassFraction float64) (*Evaluator, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}
	if biomassFraction <= 0 || biomassFraction > 1 {
		return nil, fmt.Errorf("biomass fraction must be in (0, 1]")
	}

	rules := make([]Rule, len(model.Reactions))
	for i, rxn := range model.Reactions {
		rule, err := ParseRule(rxn.GeneRule)
		if err != nil {
			return nil, fmt.Errorf("reaction %q: %w", rxn.ID, err)
		}
		rules[i] = rule
	}

	return &Evaluator{
		model:           model,
		rules:           rules,
		s:               stoichiometricMatrix(model),
		biomassIdx:      model.reactionIndex(model.BiomassReaction),
		targetIdx:       model.reactionIndex(model.TargetReaction),
		biomassFraction: biomassFraction,
	}, nil
}

func (e *Evaluator) Name() string {
	return e.model.Name
}

func (e *Evaluator) Objectives() []string {
	return []string{e.model.BiomassReaction, e.model.TargetReaction}
}

// Genes returns the model's gene universe, the key set every genome of a
// run must carry.
func (e *Evaluator) Genes() []string {
	return e.model.Genes()
}

// Evaluate computes the two-dimensional fitness vector for one genome.
// Both objectives are flux maximizations, so the vector already follows
// the bigger-is-better convention the ranking components require.
func (e *Evaluator) Evaluate(genome framework.Genome) framework.FitnessVector {
	active := genome.StateMap()
	lb, ub := e.fluxBounds(active)

	biomassObj := e.unitObjective(e.biomassIdx)
	growth, _, err := solveFlux(e.s, lb, ub, biomassObj)
	if err != nil || growth <= 0 {
		// Lethal or infeasible knockout set: rank poorly, never fail.
		return framework.FitnessVector{0, 0}
	}

	// Stage two: hold growth near its optimum and maximize the target
	// flux by tightening the biomass lower bound.
	lb[e.biomassIdx] = e.biomassFraction * growth
	target, _, err := solveFlux(e.s, lb, ub, e.unitObjective(e.targetIdx))
	if err != nil {
		return framework.FitnessVector{growth, 0}
	}

	return framework.FitnessVector{growth, target}
}

// fluxBounds returns the per-reaction bounds with knocked-out reactions
// (gene rule unsatisfied) clamped to zero flux.
func (e *Evaluator) fluxBounds(active map[string]bool) ([]float64, []float64) {
	lb := make([]float64, len(e.model.Reactions))
	ub := make([]float64, len(e.model.Reactions))
	for i, rxn := range e.model.Reactions {
		if e.rules[i].Eval(active) {
			lb[i] = rxn.LowerBound
			ub[i] = rxn.UpperBound
		}
	}
	return lb, ub
}

func (e *Evaluator) unitObjective(idx int) []float64 {
	obj := make([]float64, len(e.model.Reactions))
	obj[idx] = 1
	return obj
}
