package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/clemence/poliscope/internal/annotate"
	"github.com/clemence/poliscope/internal/config"
	"github.com/clemence/poliscope/internal/dataset"
	"github.com/clemence/poliscope/internal/gender"
	"github.com/clemence/poliscope/internal/geo"
	"github.com/clemence/poliscope/internal/logging"
	"github.com/clemence/poliscope/internal/sample"
)

func main() {
	var (
		configPath   = flag.String("config", "", "Path to the pipeline config file (default poliscope.yaml, or POLISCOPE_CONFIG)")
		usersPath    = flag.String("users", "data/users.csv", "Path to the users CSV")
		departements = flag.String("departements", "data/departements.csv", "Path to the départements gazetteer CSV")
		prefectures  = flag.String("prefectures", "", "Path to the préfectures/sous-préfectures CSV (optional)")
		villes       = flag.String("villes", "data/villes.csv", "Path to the villes gazetteer CSV")
		regions      = flag.String("regions", "data/regions.csv", "Path to the régions gazetteer CSV")
		firstNames   = flag.String("firstnames", "data/firstnames.csv", "Path to the first-name/gender reference CSV")
		outPath      = flag.String("out", "data/users_annotated.csv", "Path for the annotated users CSV")
		workers      = flag.Int("workers", 4, "Number of concurrent annotation workers")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "annotate")

	users, err := dataset.LoadUsers(*usersPath)
	if err != nil {
		logger.Error("failed to load users", "error", err, "path", *usersPath)
		os.Exit(1)
	}
	if len(users) == 0 {
		logger.Error("users table empty", "path", *usersPath)
		os.Exit(1)
	}

	gazetteer, err := dataset.LoadGazetteer(dataset.GazetteerPaths{
		Departements: *departements,
		Prefectures:  *prefectures,
		Villes:       *villes,
		Regions:      *regions,
	})
	if err != nil {
		logger.Error("failed to load gazetteer", "error", err)
		os.Exit(1)
	}

	entries, err := dataset.LoadFirstNames(*firstNames)
	if err != nil {
		logger.Error("failed to load first names", "error", err, "path", *firstNames)
		os.Exit(1)
	}
	dict := gender.NewDictionary(entries, cfg.Pipeline.ForcedFemale)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	annotator := annotate.New(geo.NewResolver(gazetteer), dict, cfg.Pipeline.Seed, *workers)

	start := time.Now()
	logger.Info("annotating users",
		"count", len(users),
		"workers", *workers,
		"dictionary", dict.Len(),
		"seed", cfg.Pipeline.Seed,
	)
	if err := annotator.Run(ctx, users); err != nil {
		logger.Error("annotation failed", "error", err)
		os.Exit(1)
	}

	sample.New(cfg.Pipeline).AnnotateUsers(users)

	located, gendered, sampled := 0, 0, 0
	for _, user := range users {
		if user.Location.Located() {
			located++
		}
		if user.Gender != "" {
			gendered++
		}
		if user.Sample {
			sampled++
		}
	}

	if err := dataset.WriteAnnotatedUsers(*outPath, users); err != nil {
		logger.Error("failed to write annotated users", "error", err, "path", *outPath)
		os.Exit(1)
	}

	logger.Info("annotation complete",
		"duration", time.Since(start).String(),
		"users", len(users),
		"located", located,
		"gendered", gendered,
		"sampled", sampled,
		"output", *outPath,
	)
}
