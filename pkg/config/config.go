package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the scalar run-parameter surface for a strain-design
// optimization. All values are fixed at run start.
type Config struct {
	// PopulationSize is the survivor target per generation.
	PopulationSize int
	// Generations is the fixed iteration budget.
	Generations int
	// MutationRate is the per-gene activation flip probability.
	MutationRate float64
	// CrossoverRate enables recombination when > 0; the reference
	// procedure is mutation-only.
	CrossoverRate float64
	// RoundingDigits is the significant-figure precision for fitness
	// deduplication and reporting. Too coarse merges genuinely distinct
	// strains, too fine lets solver noise through.
	RoundingDigits int
	// Seed fixes the random source for reproducible runs.
	Seed int64
	// BiomassFraction is the growth floor applied while the secondary
	// objective is optimized.
	BiomassFraction float64

	// ModelPath points at a model JSON file; empty selects the built-in
	// core model.
	ModelPath string
	// PlotPath, when set, receives an HTML scatter plot of the front.
	PlotPath string
	// ExcelPath, when set, receives an xlsx export of the front.
	ExcelPath string
}

// Default returns the parameters used by the reference procedure.
func Default() Config {
	return Config{
		PopulationSize:  50,
		Generations:     50,
		MutationRate:    0.02,
		CrossoverRate:   0,
		RoundingDigits:  4,
		Seed:            1,
		BiomassFraction: 0.99,
	}
}

// Validate checks the parameter ranges.
func (c *Config) Validate() error {
	if c.PopulationSize <= 0 {
		return fmt.Errorf("population size must be > 0")
	}
	if c.Generations <= 0 {
		return fmt.Errorf("generations must be > 0")
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("mutation rate must be in [0, 1]")
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("crossover rate must be in [0, 1]")
	}
	if c.RoundingDigits <= 0 {
		return fmt.Errorf("rounding digits must be > 0")
	}
	if c.BiomassFraction <= 0 || c.BiomassFraction > 1 {
		return fmt.Errorf("biomass fraction must be in (0, 1]")
	}
	return nil
}

// LoadEnvFile loads variables from a dotenv file into the process
// environment. A missing default file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}
	return godotenv.Load(path)
}

// ApplyEnv overrides config fields from STRAINOPT_* environment variables.
func (c *Config) ApplyEnv() error {
	var err error
	if err = envInt("STRAINOPT_POPULATION_SIZE", &c.PopulationSize); err != nil {
		return err
	}
	if err = envInt("STRAINOPT_GENERATIONS", &c.Generations); err != nil {
		return err
	}
	if err = envFloat("STRAINOPT_MUTATION_RATE", &c.MutationRate); err != nil {
		return err
	}
	if err = envFloat("STRAINOPT_CROSSOVER_RATE", &c.CrossoverRate); err != nil {
		return err
	}
	if err = envInt("STRAINOPT_ROUNDING_DIGITS", &c.RoundingDigits); err != nil {
		return err
	}
	if err = envInt64("STRAINOPT_SEED", &c.Seed); err != nil {
		return err
	}
	if err = envFloat("STRAINOPT_BIOMASS_FRACTION", &c.BiomassFraction); err != nil {
		return err
	}
	if v := os.Getenv("STRAINOPT_MODEL"); v != "" {
		c.ModelPath = v
	}
	if v := os.Getenv("STRAINOPT_PLOT"); v != "" {
		c.PlotPath = v
	}
	if v := os.Getenv("STRAINOPT_EXCEL"); v != "" {
		c.ExcelPath = v
	}
	return nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = parsed
	return nil
}

func envInt64(key string, dst *int64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = parsed
	return nil
}

func envFloat(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = parsed
	return nil
}
