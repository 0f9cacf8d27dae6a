package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/clemence/poliscope/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		users       = flag.Int("users", cfg.NumUsers, "number of users to generate")
		politicians = flag.Int("politicians", cfg.NumPoliticians, "number of politicians to generate")
		density     = flag.Float64("density", cfg.FollowDensity, "base follow probability")
		skew        = flag.Float64("skew", cfg.PopularitySkew, "politician popularity skew")
		foreign     = flag.Float64("foreign-share", cfg.ForeignShare, "share of users with non-French locations")
		seed        = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir   = flag.String("output-dir", "data", "directory to write users.csv, politicians.csv and matrix.json")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumUsers:       *users,
		NumPoliticians: *politicians,
		FollowDensity:  clampProbability(*density),
		PopularitySkew: *skew,
		ForeignShare:   clampProbability(*foreign),
		Seed:           *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	ds, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if err := generator.WriteDataset(ds, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d users and %d politicians into %s (run %s)\n",
		len(ds.Users), len(ds.Politicians), *outputDir, ds.Artifact.RunID)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
