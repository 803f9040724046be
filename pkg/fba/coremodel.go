package fba

// CoreModel returns a small built-in central-carbon network used by tests
// and the demo CLI. Glucose is converted to biomass precursor through an
// efficient respiratory route, a fermentative route that spills acetate,
// or a low-yield bypass; acetate can be resorbed at a poor yield or
// secreted. Knocking out respiration trades growth for acetate secretion,
// which gives the optimizer a genuine Pareto surface:
//
//	wild type                -> growth 15.0, secretion 0.3
//	gOxaA knockout           -> growth 12.0, secretion 0.6
//	gOxaA + gResA knockout   -> growth 10.0, secretion 10.0
func CoreModel() *Model {
	return &Model{
		Name:            "toy_core",
		BiomassReaction: "BIOMASS",
		TargetReaction:  "EX_act",
		Reactions: []Reaction{
			{
				ID:            "EX_glc",
				Name:          "glucose uptake",
				Stoichiometry: map[string]float64{"glc": 1},
				LowerBound:    0,
				UpperBound:    10,
			},
			{
				ID:            "GLYC",
				Name:          "glycolysis",
				Stoichiometry: map[string]float64{"glc": -1, "pyr": 1},
				LowerBound:    0,
				UpperBound:    1000,
				GeneRule:      "gGlkA",
			},
			{
				ID:            "OXPH",
				Name:          "respiration",
				Stoichiometry: map[string]float64{"pyr": -1, "prec": 1.5},
				LowerBound:    0,
				UpperBound:    1000,
				GeneRule:      "gOxaA and gOxaB",
			},
			{
				ID:            "FERM",
				Name:          "fermentation",
				Stoichiometry: map[string]float64{"pyr": -1, "prec": 1, "act": 1},
				LowerBound:    0,
				UpperBound:    1000,
				GeneRule:      "gFerA",
			},
			{
				ID:            "BYP",
				Name:          "low-yield bypass",
				Stoichiometry: map[string]float64{"glc": -1, "prec": 0.8},
				LowerBound:    0,
				UpperBound:    1000,
				GeneRule:      "gBypA or gBypB",
			},
			{
				ID:            "RESORB",
				Name:          "acetate resorption",
				Stoichiometry: map[string]float64{"act": -1, "prec": 0.2},
				LowerBound:    0,
				UpperBound:    1000,
				GeneRule:      "gResA",
			},
			{
				ID:            "BIOMASS",
				Name:          "growth",
				Stoichiometry: map[string]float64{"prec": -1},
				LowerBound:    0,
				UpperBound:    1000,
			},
			{
				ID:            "EX_act",
				Name:          "acetate secretion",
				Stoichiometry: map[string]float64{"act": -1},
				LowerBound:    0,
				UpperBound:    1000,
			},
		},
	}
}
