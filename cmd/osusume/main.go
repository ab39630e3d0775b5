// Package main is the Osusume CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/osusume/internal/artifact"
	"github.com/hyperjump/osusume/internal/cli"
	"github.com/hyperjump/osusume/internal/config"
	"github.com/hyperjump/osusume/internal/dataset"
	"github.com/hyperjump/osusume/internal/models"
	"github.com/hyperjump/osusume/internal/scoring"
	"github.com/hyperjump/osusume/internal/server"
	"github.com/hyperjump/osusume/internal/trainer"
	"github.com/hyperjump/osusume/internal/watcher"
	"github.com/hyperjump/osusume/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/osusume/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "train":
		runTrain()
	case "recommend":
		runRecommend()
	case "fit":
		runFit()
	case "version", "--version", "-v":
		fmt.Printf("osusume version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`Usage: osusume <command> [flags]

Commands:
  server     Fit the dataset and serve recommendations over HTTP
  fit        Fit the dataset and print a snapshot summary
  train      Fit the dataset and train the offline ranking model
  recommend  Query a running server for recommendations
  version    Print version

Run "osusume <command> -h" for command flags.
`)
}

// buildSnapshot loads the dataset at cfg.Paths.Data and fits the feature
// pipeline over it.
func buildSnapshot(cfg *config.Config, logger *zap.Logger) (*scoring.Snapshot, error) {
	records, err := dataset.Load(cfg.Paths.Data)
	if err != nil {
		return nil, err
	}
	snap, err := scoring.Fit(records, &cfg.Training, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	logger.Info("snapshot fitted",
		zap.Int("records", len(snap.Records)),
		zap.Int("places", snap.Places()),
		zap.Int("vocabulary_size", snap.Vectorizer.VocabularySize()),
		zap.Int("clusters", snap.NClusters),
	)
	return snap, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	snap, err := buildSnapshot(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to fit dataset", zap.Error(err))
	}
	holder := &scoring.Holder{}
	holder.Store(snap)
	recommender := scoring.NewRecommender(cfg.Scoring)

	reload := func(ctx context.Context) (*scoring.Snapshot, error) {
		return buildSnapshot(cfg, logger)
	}

	watchOpts := []watcher.Option{}
	if debugMode {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	watchSvc := watcher.New(cfg.Paths.Data, func() {
		newSnap, err := buildSnapshot(cfg, logger)
		if err != nil {
			logger.Warn("dataset reload failed", zap.Error(err))
			return
		}
		holder.Store(newSnap)
		logger.Info("dataset reloaded", zap.Int("records", len(newSnap.Records)))
	}, watchOpts...)
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if err := watchSvc.Start(watchCtx); err != nil {
		logger.Warn("dataset watcher unavailable", zap.Error(err))
	}

	srv := server.NewServer(holder, recommender, reload, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	watchSvc.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runTrain() {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug || *debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	snap, err := buildSnapshot(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to fit dataset", zap.Error(err))
	}

	store := artifact.NewStore(cfg.Paths.Artifacts, cfg.Paths.Logs)
	tr := trainer.NewTrainer(cfg, store, logger)
	_, path, err := tr.Train(snap.Records, nil)
	if err != nil {
		logger.Fatal("Training failed", zap.Error(err))
	}
	fmt.Printf("Model saved at %s\n", path)
}

func runFit() {
	fs := flag.NewFlagSet("fit", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	snap, err := buildSnapshot(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to fit dataset", zap.Error(err))
	}
	fmt.Printf("Fitted %d records (%d places, %d vocabulary terms, %d clusters)\n",
		len(snap.Records), snap.Places(), snap.Vectorizer.VocabularySize(), snap.NClusters)
}

func runRecommend() {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8000", "server base URL")
	city := fs.String("city", "", "filter by city (exact, case-insensitive)")
	category := fs.String("category", "", "preferred category (substring match)")
	limit := fs.Int("limit", models.DefaultLimit, "maximum results")
	jsonOut := fs.Bool("json", false, "output JSON")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: osusume recommend [flags] <query>\n\n")
		fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces; it may be empty,\nin which case ranking uses rating, recency, and category only.\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[2:])
	query := strings.Join(fs.Args(), " ")

	req := &models.RecommendationRequest{
		Query:    query,
		City:     *city,
		Category: *category,
		Limit:    *limit,
	}
	body, err := json.Marshal(req)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	resp, err := http.Post(*serverURL+"/api/v1/recommend", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody map[string]string
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		fmt.Printf("Server returned %s: %s\n", resp.Status, errBody["error"])
		os.Exit(1)
	}

	var response models.RecommendationResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		fmt.Printf("Failed to decode response: %v\n", err)
		os.Exit(1)
	}
	format := cli.OutputText
	if *jsonOut {
		format = cli.OutputJSON
	}
	if err := cli.WriteRecommendations(os.Stdout, &response, format); err != nil {
		fmt.Printf("Failed to write results: %v\n", err)
		os.Exit(1)
	}
}
