// Package app wires configuration, storage, delivery sinks and services into one
// object shared by the HTTP server and the admin CLI.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/league-system/broadcast"
	"github.com/Dosada05/league-system/config"
	"github.com/Dosada05/league-system/db"
	"github.com/Dosada05/league-system/repositories"
	"github.com/Dosada05/league-system/services"
	"github.com/Dosada05/league-system/storage"
	"github.com/itbasis/go-clock"
)

type App struct {
	DB     *sql.DB
	Hub    *broadcast.Hub
	Clock  clock.Clock
	Logger *slog.Logger

	Teams        services.TeamService
	Players      services.PlayerService
	Competitions services.CompetitionService
	Fixtures     services.FixtureService
	Results      services.ResultService
	Queries      services.QueryService
	Auth         services.AuthService

	closers []func() error
}

type Options struct {
	// WithHub adds the websocket hub as a delivery sink. The caller must run it.
	WithHub bool
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*App, error) {
	conn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	a := &App{DB: conn, Clock: clock.New(), Logger: logger}
	a.closers = append(a.closers, conn.Close)

	var sinks broadcast.MultiNotifier
	if opts.WithHub {
		a.Hub = broadcast.NewHub(logger)
		sinks = append(sinks, a.Hub)
	}
	if cfg.NATSURL != "" {
		pub, err := broadcast.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() error { pub.Close(); return nil })
		sinks = append(sinks, pub)
		logger.Info("NATS publisher connected", slog.String("subject", cfg.NATSSubject))
	}
	var notifier broadcast.Notifier
	if len(sinks) > 0 {
		notifier = sinks
	}

	var archiver services.ScheduleArchiver
	r2cfg := storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	}
	if r2cfg.Enabled() {
		store, err := storage.NewCloudflareR2Store(ctx, r2cfg)
		if err != nil {
			a.Close()
			return nil, err
		}
		archiver = storage.NewSnapshotArchiver(store, "")
		logger.Info("Cloudflare R2 schedule archive enabled", slog.String("bucket", cfg.R2BucketName))
	}

	// Инициализация репозиториев
	tx := repositories.NewPostgresTransactor(conn)
	teamRepo := repositories.NewPostgresTeamRepository(conn)
	playerRepo := repositories.NewPostgresPlayerRepository(conn)
	compRepo := repositories.NewPostgresCompetitionRepository(conn)
	participantRepo := repositories.NewPostgresParticipantRepository(conn)
	fixtureRepo := repositories.NewPostgresFixtureRepository(conn)
	matchRepo := repositories.NewPostgresMatchRepository(conn)

	// Инициализация сервисов
	a.Teams = services.NewTeamService(tx, teamRepo, playerRepo, participantRepo, logger)
	a.Players = services.NewPlayerService(tx, playerRepo, teamRepo, participantRepo, matchRepo, logger)
	a.Competitions = services.NewCompetitionService(compRepo, participantRepo, teamRepo, playerRepo, logger)
	a.Fixtures = services.NewFixtureService(tx, compRepo, participantRepo, fixtureRepo, notifier, archiver, a.Clock, cfg.ConfirmationTimeout, logger)
	a.Results = services.NewResultService(tx, compRepo, playerRepo, fixtureRepo, matchRepo, notifier, a.Clock, logger)
	a.Queries = services.NewQueryService(compRepo, playerRepo, participantRepo, fixtureRepo, matchRepo, logger)
	a.Auth = services.NewAuthService(cfg.AdminPasswordHash, logger)

	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
