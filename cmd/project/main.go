package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/clemence/poliscope/internal/config"
	"github.com/clemence/poliscope/internal/dataset"
	"github.com/clemence/poliscope/internal/domain"
	"github.com/clemence/poliscope/internal/graph"
	"github.com/clemence/poliscope/internal/logging"
	"github.com/clemence/poliscope/internal/matrix"
	"github.com/clemence/poliscope/internal/report"
	"github.com/clemence/poliscope/internal/repository"
)

func main() {
	var (
		configPath      = flag.String("config", "", "Path to the pipeline config file (default poliscope.yaml, or POLISCOPE_CONFIG)")
		matrixPath      = flag.String("matrix", "data/matrix_trimmed.json", "Path to the (trimmed) bipartite matrix artifact")
		politiciansPath = flag.String("politicians", "data/politicians_annotated.csv", "Path to the politicians CSV")
		outDir          = flag.String("out-dir", "data/network", "Directory for edge lists and ERGM inputs")
		loadGraph       = flag.Bool("load-graph", false, "Also load the projected network into the graph database")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "project")

	artifact, err := matrix.LoadArtifact(*matrixPath)
	if err != nil {
		logger.Error("failed to load matrix artifact", "error", err, "path", *matrixPath)
		os.Exit(1)
	}

	politicians, err := dataset.LoadPoliticians(*politiciansPath)
	if err != nil {
		logger.Error("failed to load politicians", "error", err, "path", *politiciansPath)
		os.Exit(1)
	}

	start := time.Now()
	oneMode := matrix.Project(artifact.Matrix)
	edges := oneMode.Edges()
	logger.Info("projection complete",
		"run_id", artifact.RunID,
		"politicians", len(oneMode.Handles),
		"edges", len(edges),
		"duration", time.Since(start).String(),
	)

	nodes, err := buildNodes(oneMode, politicians)
	if err != nil {
		logger.Error("node attribute lookup failed", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("failed to create output dir", "error", err, "dir", *outDir)
		os.Exit(1)
	}
	if err := report.WriteEdgeList(filepath.Join(*outDir, "edges.csv"), edges); err != nil {
		logger.Error("failed to write edge list", "error", err)
		os.Exit(1)
	}
	if err := report.WriteERGMInputs(*outDir, nodes, edges, cfg.Pipeline.ERGMCutoffs); err != nil {
		logger.Error("failed to write ergm inputs", "error", err)
		os.Exit(1)
	}
	logger.Info("network artifacts written", "dir", *outDir, "cutoffs", cfg.Pipeline.ERGMCutoffs)

	if !*loadGraph {
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := buildGraphClient(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	repo := repository.New(client)
	if err := repo.LoadNetwork(ctx, nodes, edges); err != nil {
		logger.Error("failed to load network into graph", "error", err)
		os.Exit(1)
	}
	logger.Info("network loaded into graph", "nodes", len(nodes), "edges", len(edges))
}

// buildNodes joins the projection's handles with the politician registry.
// Every projected handle must have a registry entry; party labels are a
// required ERGM covariate.
func buildNodes(oneMode *matrix.OneMode, politicians []domain.Politician) ([]domain.PoliticianNode, error) {
	byHandle := make(map[string]domain.Politician, len(politicians))
	for _, p := range politicians {
		byHandle[p.Twitter] = p
	}

	followers := oneMode.Followers()
	nodes := make([]domain.PoliticianNode, 0, len(oneMode.Handles))
	for _, handle := range oneMode.Handles {
		p, ok := byHandle[handle]
		if !ok {
			return nil, domain.Integrity("politicians/unknown-column", handle, "projected handle absent from the politician registry")
		}
		nodes = append(nodes, domain.PoliticianNode{
			Handle:    handle,
			Party:     p.Party,
			Mandate:   p.Mandate,
			Followers: followers[handle],
		})
	}
	return nodes, nil
}

func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, graph.ErrMissingURI
	}
	client, err := graph.NewNeo4jClient(ctx, graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("connected to graph", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
	return client, nil
}
