// Command seed fills the board database (and like counter) with demo data.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"board/internal/bootstrap"
	"board/internal/config"
	"board/internal/observability"
	"board/internal/seed"
)

func main() {
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	numAuthors := flag.Int("authors", 20, "Number of distinct authors")
	maxComments := flag.Int("comments", 5, "Maximum comments per post")
	maxLikes := flag.Int("likes", 10, "Maximum likes per post")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	randomSeed := flag.Int64("seed", 0, "Random seed (0 uses the clock)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	observability.ConfigureLogger(cfg.Env, cfg.LogLevel)
	log := observability.Logger

	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:  "board-seed",
		Environment:  cfg.Env,
		Enabled:      cfg.TracingEnabled,
		Exporter:     cfg.TracingExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SamplerRatio: cfg.TracingSamplerRatio,
	})
	if err != nil {
		log.Error("Failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := observability.WithCorrelationID(context.Background(), observability.GenerateCorrelationID())
	err = run(ctx, cfg, seed.Options{
		NumPosts:    *numPosts,
		NumAuthors:  *numAuthors,
		MaxComments: *maxComments,
		MaxLikes:    *maxLikes,
		ShouldClean: *shouldClean,
		RandomSeed:  *randomSeed,
	})
	_ = shutdown(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts seed.Options) error {
	observability.Logger.InfoContext(ctx, "Database seeder",
		slog.Int("posts", opts.NumPosts),
		slog.Int("authors", opts.NumAuthors),
		slog.Bool("clean", opts.ShouldClean),
	)

	rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{})
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	s := seed.NewSeeder(rt.DB.Primary, rt.Posts, rt.Likes, rt.Comments, opts)
	_, err = s.Run(ctx)
	return err
}
