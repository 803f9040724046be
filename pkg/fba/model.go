package fba

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Reaction is one conversion in the metabolic network. Stoichiometry maps
// metabolite ids to coefficients, negative for consumption and positive for
// production; exchange reactions simply omit one side. GeneRule is the
// boolean gene association controlling whether the reaction can carry flux.
type Reaction struct {
	ID            string             `json:"id"`
	Name          string             `json:"name,omitempty"`
	Stoichiometry map[string]float64 `json:"stoichiometry"`
	LowerBound    float64            `json:"lower_bound"`
	UpperBound    float64            `json:"upper_bound"`
	GeneRule      string             `json:"gene_rule,omitempty"`
}

// Model is a metabolic network in steady state: flux through every
// metabolite balances to zero, and the two named reactions define the
// objectives the optimizer trades off.
type Model struct {
	Name      string     `json:"name"`
	Reactions []Reaction `json:"reactions"`

	// BiomassReaction is the growth objective and the first fitness
	// dimension.
	BiomassReaction string `json:"biomass_reaction"`
	// TargetReaction is the synthetic objective (e.g. byproduct
	// secretion) and the second fitness dimension.
	TargetReaction string `json:"target_reaction"`
}

// LoadModel reads a model from a JSON file and validates it.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var model Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return &model, nil
}

// Validate checks structural consistency of the model.
func (m *Model) Validate() error {
	if len(m.Reactions) == 0 {
		return fmt.Errorf("model has no reactions")
	}
	ids := make(map[string]bool, len(m.Reactions))
	for i, rxn := range m.Reactions {
		if rxn.ID == "" {
			return fmt.Errorf("reaction %d has no id", i)
		}
		if ids[rxn.ID] {
			return fmt.Errorf("duplicate reaction id %q", rxn.ID)
		}
		ids[rxn.ID] = true
		if rxn.LowerBound > rxn.UpperBound {
			return fmt.Errorf("reaction %q: lower bound %g exceeds upper bound %g", rxn.ID, rxn.LowerBound, rxn.UpperBound)
		}
		if _, err := ParseRule(rxn.GeneRule); err != nil {
			return fmt.Errorf("reaction %q: %w", rxn.ID, err)
		}
	}
	if !ids[m.BiomassReaction] {
		return fmt.Errorf("biomass reaction %q not found", m.BiomassReaction)
	}
	if !ids[m.TargetReaction] {
		return fmt.Errorf("target reaction %q not found", m.TargetReaction)
	}
	return nil
}

// Genes returns the sorted gene universe referenced by the model's
// gene-reaction rules.
func (m *Model) Genes() []string {
	seen := map[string]bool{}
	var genes []string
	for _, rxn := range m.Reactions {
		rule, err := ParseRule(rxn.GeneRule)
		if err != nil {
			continue // Validate reports this; Genes stays best-effort
		}
		for _, id := range rule.Genes() {
			if !seen[id] {
				seen[id] = true
				genes = append(genes, id)
			}
		}
	}
	sort.Strings(genes)
	return genes
}

// Metabolites returns the sorted metabolite ids appearing in any reaction.
func (m *Model) Metabolites() []string {
	seen := map[string]bool{}
	var mets []string
	for _, rxn := range m.Reactions {
		for id := range rxn.Stoichiometry {
			if !seen[id] {
				seen[id] = true
				mets = append(mets, id)
			}
		}
	}
	sort.Strings(mets)
	return mets
}

func (m *Model) reactionIndex(id string) int {
	for i, rxn := range m.Reactions {
		if rxn.ID == id {
			return i
		}
	}
	return -1
}
