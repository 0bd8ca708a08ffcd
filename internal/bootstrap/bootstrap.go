package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/datakota/usaha-assistant/internal/config"
	"github.com/datakota/usaha-assistant/internal/core/ports"
	"github.com/datakota/usaha-assistant/internal/core/usecase"
	memorycache "github.com/datakota/usaha-assistant/internal/infrastructure/cache/memory"
	rediscache "github.com/datakota/usaha-assistant/internal/infrastructure/cache/redis"
	"github.com/datakota/usaha-assistant/internal/infrastructure/geocode/nominatim"
	"github.com/datakota/usaha-assistant/internal/infrastructure/llm/ollama"
	"github.com/datakota/usaha-assistant/internal/infrastructure/queue/nats"
	"github.com/datakota/usaha-assistant/internal/infrastructure/repository/postgres"
	"github.com/datakota/usaha-assistant/internal/infrastructure/resilience"
	"github.com/datakota/usaha-assistant/internal/observability/logging"
	"github.com/datakota/usaha-assistant/internal/observability/metrics"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Registry   ports.BusinessRegistry
	ChatUC     ports.ChatService
	DescribeUC ports.DescribeService
	Metrics    *metrics.HTTPServerMetrics

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger := logging.NewJSONLogger("usaha-assistant", cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	registry := postgres.NewBusinessRepository(db)

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	generator := ollama.New(cfg.OllamaURL, cfg.OllamaModel, executor)
	geocoder := nominatim.New(cfg.NominatimURL, cfg.NominatimContact)

	var closers []func()
	closers = append(closers, func() { _ = db.Close() })

	var geocodeCache ports.GeocodeCache
	if cfg.RedisAddr != "" {
		shared, err := rediscache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.GeocodeCacheTTL())
		if err != nil {
			return nil, fmt.Errorf("init redis geocode cache: %w", err)
		}
		closers = append(closers, func() { _ = shared.Close() })
		geocodeCache = shared
		logger.Info("geocode cache: redis", "addr", cfg.RedisAddr)
	} else {
		geocodeCache = memorycache.NewLRU(cfg.GeocodeCacheSize)
		logger.Info("geocode cache: in-process lru", "capacity", cfg.GeocodeCacheSize)
	}

	var events ports.EventPublisher
	if cfg.NATSURL != "" {
		publisher, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
			ResilienceExecutor: executor,
		})
		if err != nil {
			return nil, fmt.Errorf("init interaction publisher: %w", err)
		}
		closers = append(closers, publisher.Close)
		events = publisher
		logger.Info("interaction events enabled", "subject", cfg.NATSSubject)
	}

	chatUC := usecase.NewChatUseCase(registry, generator, events, logger)
	describeUC := usecase.NewDescribeUseCase(
		geocoder, geocodeCache, generator, logger,
		cfg.GeocodeTimeout(), cfg.GenerateTimeout(),
	)

	return &App{
		Config: cfg,
		Logger: logger,

		Registry:   registry,
		ChatUC:     chatUC,
		DescribeUC: describeUC,
		Metrics:    metrics.NewHTTPServerMetrics("api"),

		closeFn: func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
