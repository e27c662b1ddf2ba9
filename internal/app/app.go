package app

import (
	"fmt"
	"net/http"

	"github.com/bayer4/wildcard-fantasy-sub000/external/gridstats"
	"github.com/bayer4/wildcard-fantasy-sub000/external/jobqueue"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/config"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/lineup"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/player"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/roster"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/rules"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/schedule"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/scoring"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/stats"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/domain/team"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/infrastructure/repository/memory"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/infrastructure/repository/postgres"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/interfaces/httpapi"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/platform/logging"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/platform/resilience"
	"github.com/bayer4/wildcard-fantasy-sub000/internal/usecase"
)

const seedWeek = 1

type repositories struct {
	team     team.Repository
	roster   roster.Repository
	player   player.Repository
	lineup   lineup.Repository
	schedule schedule.Repository
	stats    stats.Repository
	rules    rules.Repository
	scores   scoring.Repository
}

// NewHTTPServer wires repositories, services and the router into a
// ready-to-listen server. The returned cleanup releases the storage
// backend and must run after the server shuts down.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	lockSvc := usecase.NewLockService(repos.schedule, cfg.GlobalLockAt)
	lineupSvc := usecase.NewLineupService(repos.team, repos.roster, repos.player, repos.lineup, lockSvc, logger)
	scoringSvc := usecase.NewScoringService(
		repos.team, repos.roster, repos.player, repos.lineup,
		repos.schedule, repos.stats, repos.rules, repos.scores, logger,
	)
	rulesSvc := usecase.NewRulesService(repos.rules)
	statLineSvc := usecase.NewStatLineService(repos.player, repos.stats)

	var provider usecase.StatsProvider
	if cfg.GridStatsEnabled {
		provider = gridstats.NewClient(gridstats.ClientConfig{
			BaseURL:    cfg.GridStatsBaseURL,
			APIKey:     cfg.GridStatsAPIKey,
			Timeout:    cfg.GridStatsTimeout,
			PoolSize:   cfg.GridStatsPoolSize,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.GridStatsCircuitEnabled,
				FailureThreshold: cfg.GridStatsCircuitFailureCount,
				OpenTimeout:      cfg.GridStatsCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.GridStatsCircuitHalfOpenMaxReq,
			},
		})
	}

	var publisher usecase.RecomputePublisher
	if cfg.JobQueueEnabled {
		queuePublisher, pubErr := jobqueue.NewPublisher(jobqueue.PublisherConfig{
			BaseURL:          cfg.JobQueueBaseURL,
			Token:            cfg.JobQueueToken,
			TargetBaseURL:    cfg.JobQueueTargetBaseURL,
			InternalJobToken: cfg.InternalJobToken,
			Retries:          cfg.JobQueueRetries,
			Logger:           logger,
		})
		if pubErr != nil {
			_ = cleanup()
			return nil, nil, fmt.Errorf("build job queue publisher: %w", pubErr)
		}
		publisher = queuePublisher
	}

	ingestionSvc := usecase.NewIngestionService(repos.schedule, repos.stats, provider, publisher, logger)

	handler := httpapi.NewHandler(lineupSvc, scoringSvc, rulesSvc, lockSvc, ingestionSvc, statLineSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, nil, fmt.Errorf("open database: %w", err)
		}
		logger.Info("storage ready", "backend", "postgres", "db", dbNameFromURL(cfg.DBURL))
		return repositories{
			team:     postgres.NewTeamRepository(db),
			roster:   postgres.NewRosterRepository(db),
			player:   postgres.NewPlayerRepository(db),
			lineup:   postgres.NewLineupRepository(db),
			schedule: postgres.NewScheduleRepository(db),
			stats:    postgres.NewStatsRepository(db),
			rules:    postgres.NewRulesRepository(db),
			scores:   postgres.NewScoringRepository(db),
		}, db.Close, nil

	default:
		logger.Info("storage ready", "backend", "memory", "seed_week", seedWeek)
		return repositories{
			team:     memory.NewTeamRepository(memory.SeedTeams()),
			roster:   memory.NewRosterRepository(memory.SeedRoster()),
			player:   memory.NewPlayerRepository(memory.SeedPlayers()),
			lineup:   memory.NewLineupRepository(),
			schedule: memory.NewScheduleRepository(memory.SeedGames(seedWeek)),
			stats:    memory.NewStatsRepository(),
			rules:    memory.NewRulesRepository(memory.SeedRuleSets()),
			scores:   memory.NewScoringRepository(),
		}, func() error { return nil }, nil
	}
}
