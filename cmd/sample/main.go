package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/clemence/poliscope/internal/config"
	"github.com/clemence/poliscope/internal/dataset"
	"github.com/clemence/poliscope/internal/logging"
	"github.com/clemence/poliscope/internal/matrix"
	"github.com/clemence/poliscope/internal/report"
	"github.com/clemence/poliscope/internal/sample"
)

func main() {
	var (
		configPath      = flag.String("config", "", "Path to the pipeline config file (default poliscope.yaml, or POLISCOPE_CONFIG)")
		usersPath       = flag.String("users", "data/users_annotated.csv", "Path to the annotated users CSV")
		politiciansPath = flag.String("politicians", "data/politicians.csv", "Path to the politicians CSV")
		matrixPath      = flag.String("matrix", "data/matrix.json", "Path to the bipartite matrix artifact")
		outMatrix       = flag.String("out-matrix", "data/matrix_trimmed.json", "Path for the trimmed matrix artifact")
		outPoliticians  = flag.String("out-politicians", "data/politicians_annotated.csv", "Path for the annotated politicians CSV")
		outGenderRatio  = flag.String("out-gender-ratio", "data/gender_ratio.csv", "Path for the gender-ratio summary CSV")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "sample")

	users, err := dataset.LoadUsers(*usersPath)
	if err != nil {
		logger.Error("failed to load annotated users", "error", err, "path", *usersPath)
		os.Exit(1)
	}

	politicians, err := dataset.LoadPoliticians(*politiciansPath)
	if err != nil {
		logger.Error("failed to load politicians", "error", err, "path", *politiciansPath)
		os.Exit(1)
	}

	artifact, err := matrix.LoadArtifact(*matrixPath)
	if err != nil {
		logger.Error("failed to load matrix artifact", "error", err, "path", *matrixPath)
		os.Exit(1)
	}
	logger.Info("matrix loaded",
		"run_id", artifact.RunID,
		"rows", len(artifact.Matrix.RowIDs),
		"cols", len(artifact.Matrix.ColIDs),
	)

	selector := sample.New(cfg.Pipeline)
	selector.AnnotatePoliticians(politicians)

	// The gender-ratio summary covers the full matrix; the sample-restricted
	// columns come from the users' sample flags, not from the trim.
	ratios, err := report.GenderRatios(artifact.Matrix, users)
	if err != nil {
		logger.Error("gender-ratio summary failed", "error", err)
		os.Exit(1)
	}
	if err := report.WriteGenderRatios(*outGenderRatio, ratios); err != nil {
		logger.Error("failed to write gender-ratio summary", "error", err, "path", *outGenderRatio)
		os.Exit(1)
	}

	start := time.Now()
	trimmed, steps, err := selector.Trim(artifact, users, politicians)
	if err != nil {
		logger.Error("matrix trim failed", "error", err)
		os.Exit(1)
	}
	for _, step := range steps {
		logger.Info("trim step", "step", step.Name, "rows", step.Rows, "cols", step.Cols)
	}

	if err := trimmed.Save(*outMatrix); err != nil {
		logger.Error("failed to write trimmed artifact", "error", err, "path", *outMatrix)
		os.Exit(1)
	}
	if err := dataset.WriteAnnotatedPoliticians(*outPoliticians, politicians); err != nil {
		logger.Error("failed to write annotated politicians", "error", err, "path", *outPoliticians)
		os.Exit(1)
	}

	logger.Info("sampling complete",
		"duration", time.Since(start).String(),
		"rows", len(trimmed.Matrix.RowIDs),
		"cols", len(trimmed.Matrix.ColIDs),
		"matrix", *outMatrix,
	)
}
