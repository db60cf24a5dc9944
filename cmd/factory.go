package cmd

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/volleyclip/clipper/internal/config"
	"github.com/volleyclip/clipper/internal/logging"
	cliprepo "github.com/volleyclip/clipper/internal/repository/clip"
	jobrepo "github.com/volleyclip/clipper/internal/repository/job"
	videorepo "github.com/volleyclip/clipper/internal/repository/video"
	"github.com/volleyclip/clipper/internal/service/clipping"
	"github.com/volleyclip/clipper/internal/service/indexing"
	"github.com/volleyclip/clipper/internal/service/intel"
	"github.com/volleyclip/clipper/internal/service/storage"
	"github.com/volleyclip/clipper/internal/service/transcoder"
)

// app bundles the wired-up dependency graph shared by the commands
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool

	videos videorepo.Repository
	jobs   jobrepo.Repository
	clips  cliprepo.Repository

	indexing *indexing.Service
	clipping *clipping.Service
}

// newApp loads configuration and wires repositories and services
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.NewLogger(cfg.LogLevel)

	pool, err := config.NewDatabasePool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	videos := videorepo.NewRepository(pool)
	jobs := jobrepo.NewRepository(pool)
	clips := cliprepo.NewRepository(pool)

	store, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		config.CloseDatabasePool(pool)
		return nil, err
	}
	intelClient := intel.NewHTTPClient(cfg.Intel)

	extractor := clipping.NewExtractor(store, transcoder.NewFFmpegTranscoder(), cfg.Clipping, logger)

	return &app{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		videos: videos,
		jobs:   jobs,
		clips:  clips,

		indexing: indexing.NewService(videos, intelClient, store, cfg.Indexing, logger),
		clipping: clipping.NewService(jobs, clips, intelClient, extractor, logger),
	}, nil
}

// Close releases held resources
func (a *app) Close() {
	config.CloseDatabasePool(a.pool)
}
