package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/bioevolve/strainopt/pkg/config"
	"github.com/bioevolve/strainopt/pkg/fba"
	"github.com/bioevolve/strainopt/pkg/moea/algorithms"
	"github.com/bioevolve/strainopt/pkg/moea/util"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "strainopt: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	klog.InitFlags(nil)

	cfg := config.Default()
	if err := config.LoadEnvFile(""); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("apply environment: %w", err)
	}

	pflag.IntVar(&cfg.PopulationSize, "population-size", cfg.PopulationSize, "survivor target per generation")
	pflag.IntVar(&cfg.Generations, "generations", cfg.Generations, "fixed generation budget")
	pflag.Float64Var(&cfg.MutationRate, "mutation-rate", cfg.MutationRate, "per-gene activation flip probability")
	pflag.Float64Var(&cfg.CrossoverRate, "crossover-rate", cfg.CrossoverRate, "recombination probability, 0 disables crossover")
	pflag.IntVar(&cfg.RoundingDigits, "rounding-digits", cfg.RoundingDigits, "significant figures for fitness deduplication")
	pflag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	pflag.Float64Var(&cfg.BiomassFraction, "biomass-fraction", cfg.BiomassFraction, "growth floor while optimizing the target flux")
	pflag.StringVar(&cfg.ModelPath, "model", cfg.ModelPath, "model JSON file, empty selects the built-in core model")
	pflag.StringVar(&cfg.PlotPath, "plot", cfg.PlotPath, "write an HTML scatter plot of the front to this path")
	pflag.StringVar(&cfg.ExcelPath, "excel", cfg.ExcelPath, "write an xlsx export of the front to this path")
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	pflag.Parse()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	model := fba.CoreModel()
	if cfg.ModelPath != "" {
		loaded, err := fba.LoadModel(cfg.ModelPath)
		if err != nil {
			return err
		}
		model = loaded
	}

	evaluator, err := fba.NewEvaluator(model, cfg.BiomassFraction)
	if err != nil {
		return err
	}
	klog.InfoS("model loaded", "model", model.Name,
		"reactions", len(model.Reactions), "genes", len(evaluator.Genes()),
		"biomass", model.BiomassReaction, "target", model.TargetReaction)

	nsga, err := algorithms.NewNSGAII(algorithms.Config{
		PopulationSize: cfg.PopulationSize,
		Generations:    cfg.Generations,
		MutationRate:   cfg.MutationRate,
		CrossoverRate:  cfg.CrossoverRate,
		RoundingDigits: cfg.RoundingDigits,
		Seed:           cfg.Seed,
	}, evaluator)
	if err != nil {
		return err
	}

	result, err := nsga.Run(context.Background(), evaluator.Genes())
	if err != nil {
		return err
	}
	klog.InfoS("run finished", "generations", result.Generations,
		"population", len(result.Population), "paretoFront", len(result.ParetoFront))

	printFront(result.ParetoFront, evaluator)

	if cfg.ExcelPath != "" {
		if err := writeFrontXLSX(result.ParetoFront, evaluator, cfg.ExcelPath); err != nil {
			return fmt.Errorf("write excel report: %w", err)
		}
		klog.InfoS("excel report written", "path", cfg.ExcelPath)
	}
	if cfg.PlotPath != "" {
		if err := util.PlotFront(frontPoints(result.ParetoFront), evaluator, algorithms.Name, cfg.PlotPath); err != nil {
			return fmt.Errorf("plot front: %w", err)
		}
		klog.InfoS("plot written", "path", cfg.PlotPath)
	}
	return nil
}
