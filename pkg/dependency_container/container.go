package dependency_container

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/folioworks/folio/pkg/app/chat"
	appRateLimit "github.com/folioworks/folio/pkg/app/ratelimit"
	"github.com/folioworks/folio/pkg/app/search"
	appWebhook "github.com/folioworks/folio/pkg/app/webhook"
	"github.com/folioworks/folio/pkg/config"
	domainContent "github.com/folioworks/folio/pkg/domain/content"
	"github.com/folioworks/folio/pkg/domain/ratelimit"
	"github.com/folioworks/folio/pkg/domain/webhook"
	handlers "github.com/folioworks/folio/pkg/handlers/http"
	"github.com/folioworks/folio/pkg/infra/cache"
	"github.com/folioworks/folio/pkg/infra/cache/event"
	"github.com/folioworks/folio/pkg/infra/cache/subscriber"
	infraContent "github.com/folioworks/folio/pkg/infra/content"
	"github.com/folioworks/folio/pkg/infra/database"
	"github.com/folioworks/folio/pkg/infra/httpx"
	"github.com/folioworks/folio/pkg/infra/jwt"
	"github.com/folioworks/folio/pkg/infra/metrics"
	"github.com/folioworks/folio/pkg/infra/providers"
	providersFactory "github.com/folioworks/folio/pkg/infra/providers/factory"
	infraRateLimit "github.com/folioworks/folio/pkg/infra/ratelimit"
	"github.com/folioworks/folio/pkg/infra/repository"
	"github.com/folioworks/folio/pkg/infra/webhookfile"
	"github.com/folioworks/folio/pkg/middleware"
	"github.com/sirupsen/logrus"

	// registers the schema migrations
	_ "github.com/folioworks/folio/pkg/infra/migrations"
)

const (
	// ShutdownTimeout bounds how long serve waits for queued deliveries.
	ShutdownTimeout = 15 * time.Second

	RateLimitStoreRedis = "redis"
	DeliveryLogJSONL    = "jsonl"
)

type Container struct {
	Cfg                 *config.Config
	Logger              *logrus.Logger
	DB                  *database.DB
	Cache               cache.Client
	EventPublisher      cache.EventPublisher
	EventListener       cache.EventListener
	RateLimiter         appRateLimit.Limiter
	ContentRepository   domainContent.Repository
	ContentWatcher      *infraContent.Watcher
	SearchService       search.Service
	WebhookRepository   webhook.Repository
	DeliveryRepository  webhook.DeliveryRepository
	WebhookService      appWebhook.Service
	WebhookDispatcher   appWebhook.Dispatcher
	ChatService         chat.Service
	MetricsWorker       metrics.Worker
	JWTManager          jwt.Manager
	HandlerTransport    *handlers.HandlerTransport
	MiddlewareTransport *middleware.Transport

	closers []io.Closer
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
}

// NewContainer opens storage and wires every component used by serve.
// Background loops are not started here.
func NewContainer(di ContainerDI) (*Container, error) {
	cfg := di.Cfg
	logger := di.Logger
	c := &Container{Cfg: cfg, Logger: logger}

	db, err := OpenDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}
	c.DB = db
	c.closers = append(c.closers, closerFunc(db.Close))

	// events
	if cfg.Redis.Enabled {
		cacheInstance, err := cache.NewClient(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TLS:      cfg.Redis.TLS,
		}, logger)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Cache = cacheInstance
		c.closers = append(c.closers, cacheInstance)
		c.EventPublisher = cache.NewRedisEventPublisher(cacheInstance)
		c.EventListener = cache.NewRedisEventListener(logger, cacheInstance, event.Registry)
	} else {
		bus := cache.NewLocalEventBus(logger)
		c.EventPublisher = bus
		c.EventListener = bus
	}

	// rate limiting
	var store ratelimit.Store
	if cfg.RateLimit.Store == RateLimitStoreRedis {
		if c.Cache == nil {
			_ = c.Close()
			return nil, errors.New("rate_limit.store is redis but redis is disabled")
		}
		store = infraRateLimit.NewRedisStore(c.Cache.RedisClient(), nil)
	} else {
		store = infraRateLimit.NewMemoryStore()
	}
	c.RateLimiter = appRateLimit.NewLimiter(logger, store, nil)

	// content and search
	c.ContentRepository = infraContent.NewFileRepository(logger, cfg.Content.Root)
	c.SearchService = search.NewService(logger, c.ContentRepository, &search.ServiceOpts{
		Threshold:    cfg.Search.Threshold,
		CacheTTL:     cfg.Search.CacheTTL,
		DefaultLimit: cfg.Search.DefaultLimit,
	})
	c.ContentWatcher = infraContent.NewWatcher(logger, c.ContentRepository, c.EventPublisher, cfg.Content.Root, cfg.Content.Debounce)

	// webhooks
	c.WebhookRepository = repository.NewWebhookRepository(db.DB)
	if cfg.Webhooks.DeliveryLog == DeliveryLogJSONL {
		deliveryLog, err := webhookfile.NewDeliveryLog(cfg.Webhooks.DeliveryLogPath)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to open delivery log: %w", err)
		}
		c.DeliveryRepository = deliveryLog
		c.closers = append(c.closers, deliveryLog)
	} else {
		c.DeliveryRepository = repository.NewDeliveryRepository(db.DB)
	}
	c.WebhookService = appWebhook.NewService(logger, c.WebhookRepository, c.DeliveryRepository, nil)
	deliverer := appWebhook.NewDeliverer(
		logger,
		c.WebhookRepository,
		c.DeliveryRepository,
		httpx.NewFastHTTPClient(
			httpx.WithTimeout(cfg.Webhooks.DeliveryTimeout),
			httpx.WithUserAgent(appWebhook.UserAgent),
		),
		&appWebhook.DelivererOpts{Timeout: cfg.Webhooks.DeliveryTimeout},
	)
	c.WebhookDispatcher = appWebhook.NewDispatcher(logger, c.WebhookRepository, deliverer, &appWebhook.DispatcherOpts{
		Workers:   cfg.Webhooks.Workers,
		QueueSize: cfg.Webhooks.QueueSize,
	})

	// subscribers
	cache.RegisterEventSubscriber[event.ReindexRequestedEvent](
		c.EventListener,
		subscriber.NewReindexSubscriber(logger, c.SearchService),
	)
	if cfg.Webhooks.ContentEvents {
		cache.RegisterEventSubscriber[event.ContentChangedEvent](
			c.EventListener,
			subscriber.NewWebhookSubscriber(logger, c.WebhookDispatcher),
		)
	}

	// chat
	if cfg.Chat.Enabled {
		chatService, err := newChatService(cfg, logger, c.SearchService)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.ChatService = chatService
	}

	c.JWTManager = jwt.NewJwtManager(&cfg.Server)
	c.MetricsWorker = metrics.NewWorker(logger, metrics.DefaultQueueSize)

	c.MiddlewareTransport = &middleware.Transport{
		AdminAuthMiddleware:    middleware.NewAdminAuthMiddleware(logger, c.JWTManager),
		RateLimitMiddleware:    middleware.NewRateLimitMiddleware(logger, c.RateLimiter, rateLimitRules(cfg.RateLimit), c.JWTManager),
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(logger),
	}
	if cfg.Metrics.Enabled {
		c.MiddlewareTransport.MetricsMiddleware = middleware.NewMetricsMiddleware(c.MetricsWorker)
	}

	c.HandlerTransport = &handlers.HandlerTransport{
		HealthHandler:         handlers.NewHealthHandler(),
		ReadyHandler:          handlers.NewReadyHandler(logger, c.readinessChecks()),
		VersionHandler:        handlers.NewVersionHandler(),
		SearchHandler:         handlers.NewSearchHandler(logger, c.SearchService),
		SuggestHandler:        handlers.NewSuggestHandler(logger, c.SearchService),
		ReindexHandler:        handlers.NewReindexHandler(logger, c.SearchService),
		ChatHandler:           handlers.NewChatHandler(logger, c.ChatService),
		ContactHandler:        handlers.NewContactHandler(logger, c.WebhookDispatcher),
		NewsletterHandler:     handlers.NewNewsletterHandler(logger, c.WebhookDispatcher),
		CreateWebhookHandler:  handlers.NewCreateWebhookHandler(logger, c.WebhookService),
		ListWebhooksHandler:   handlers.NewListWebhooksHandler(logger, c.WebhookService),
		DeleteWebhookHandler:  handlers.NewDeleteWebhookHandler(logger, c.WebhookService),
		ListDeliveriesHandler: handlers.NewListDeliveriesHandler(logger, c.WebhookService),
		TriggerWebhookHandler: handlers.NewTriggerWebhookHandler(logger, c.WebhookDispatcher),
	}

	return c, nil
}

// OpenDatabase connects to the configured database and applies migrations.
func OpenDatabase(cfg *config.Config, logger *logrus.Logger) (*database.DB, error) {
	db, err := database.NewDB(logger, &database.Config{
		Driver:   cfg.Database.Driver,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		Path:     cfg.Database.Path,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

func newChatService(cfg *config.Config, logger *logrus.Logger, searchService search.Service) (chat.Service, error) {
	client, err := providersFactory.NewProviderLocator(
		providersFactory.WithOpenAIBaseURL(cfg.Chat.BaseURL),
	).Get(cfg.Chat.Provider)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat: %w", err)
	}
	if cfg.Chat.APIKey == "" {
		return nil, fmt.Errorf("failed to initialize chat: %w", providers.ErrMissingAPIKey)
	}
	return chat.NewService(logger, searchService, client, &chat.ServiceOpts{
		Provider: cfg.Chat.Provider,
		Config: providers.Config{
			APIKey:       cfg.Chat.APIKey,
			Model:        cfg.Chat.Model,
			MaxTokens:    cfg.Chat.MaxTokens,
			Temperature:  cfg.Chat.Temperature,
			SystemPrompt: cfg.Chat.SystemPrompt,
		},
		ContextItems: cfg.Chat.ContextItems,
		Timeout:      cfg.Chat.Timeout,
	}), nil
}

func rateLimitRules(cfg config.RateLimitConfig) *appRateLimit.Rules {
	rules := make([]appRateLimit.Rule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		rules = append(rules, appRateLimit.Rule{
			Prefix: r.Prefix,
			Config: ratelimit.Config{Window: r.Window, MaxRequests: r.MaxRequests},
		})
	}
	return appRateLimit.NewRules(ratelimit.Config{
		Window:      cfg.Default.Window,
		MaxRequests: cfg.Default.MaxRequests,
	}, rules)
}

func (c *Container) readinessChecks() map[string]handlers.ReadinessCheck {
	checks := map[string]handlers.ReadinessCheck{
		"database": c.DB.Ping,
	}
	if c.Cache != nil {
		checks["redis"] = c.Cache.Ping
	}
	return checks
}

// Close releases storage handles in reverse order of opening.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
