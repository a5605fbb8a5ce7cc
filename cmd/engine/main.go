package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"recruit-match/internal/ai"
	"recruit-match/internal/ai/gemini"
	"recruit-match/internal/api/gojobs"
	"recruit-match/internal/config"
	"recruit-match/internal/listing"
	"recruit-match/internal/logger"
	"recruit-match/internal/match"
	"recruit-match/internal/models"
	"recruit-match/internal/scheduler"
	"recruit-match/internal/storage/postgres"
	"recruit-match/internal/storage/redis"
	"recruit-match/internal/syncer"

	"go.uber.org/zap"
)

func main() {
	profilePath := flag.String("match-profile", "", "run one match pass for the profile JSON file and exit")
	offset := flag.Int("offset", 0, "match result offset")
	limit := flag.Int("limit", 10, "match result page size")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, err := gojobs.New(cfg.APIBaseURL, cfg.ServiceKey, cfg.APITimeout, log)
	if err != nil {
		log.Fatal("failed to create registry client", zap.Error(err))
	}

	if *profilePath != "" {
		runMatchOnce(ctx, log, source, cfg, *profilePath, *offset, *limit)
		return
	}

	runDaemon(ctx, cancel, log, source, cfg)
}

// runMatchOnce ranks postings for one profile file and prints the page. Meant
// for operators verifying scoring behavior without the serving layer.
func runMatchOnce(ctx context.Context, log *zap.Logger, source *gojobs.Client, cfg *config.Config, path string, offset, limit int) {
	var scorer ai.Scorer
	if cfg.GeminiAPIKey != "" {
		generator, err := gemini.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatal("failed to create gemini generator", zap.Error(err))
		}
		scorer = gemini.NewScorer(generator, log)
		log.Info("gemini scorer ready", zap.String("model", generator.Model()))
	} else {
		log.Warn("GEMINI_API_KEY not set, match scoring disabled")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal("failed to read profile file", zap.Error(err))
	}

	var request struct {
		Profile     models.Profile      `json:"profile"`
		CoverLetter *models.CoverLetter `json:"coverLetter,omitempty"`
	}
	if err := json.Unmarshal(data, &request); err != nil {
		log.Fatal("failed to parse profile file", zap.Error(err))
	}

	engine := match.New(source, scorer, nil, log, cfg.MatchBatchLimit)

	page, err := engine.Match(ctx, &request.Profile, request.CoverLetter, offset, limit)
	if err != nil {
		log.Fatal("match failed", zap.Error(err))
	}

	out, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		log.Fatal("failed to encode match result", zap.Error(err))
	}
	fmt.Println(string(out))
}

// runDaemon keeps the posting catalog synchronized until shutdown.
func runDaemon(ctx context.Context, cancel context.CancelFunc, log *zap.Logger, source *gojobs.Client, cfg *config.Config) {
	log.Info("starting recruitment match engine",
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("sync_interval", cfg.SyncInterval),
	)

	log.Info("connecting to PostgreSQL...")
	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal("failed to ensure schema", zap.Error(err))
	}

	log.Info("connecting to Redis...")
	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close()

	sync := syncer.New(source, store, cache, log, cfg.SyncPageSize, cfg.SyncMaxPages, cfg.SyncInterval)
	listingSvc := listing.New(store, cache, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	sched := scheduler.New(sync, listingSvc, log, cfg.SyncCronHours)
	if err := sched.Start(ctx); err != nil {
		log.Fatal("failed to start sync scheduler", zap.Error(err))
	}

	log.Info("engine is running...")

	<-ctx.Done()

	log.Info("shutting down gracefully...")
	sched.Stop()

	log.Info("engine stopped")
}
