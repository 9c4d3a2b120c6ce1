package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/folioworks/folio/pkg/config"
	"github.com/folioworks/folio/pkg/infra/prometheus"
	"github.com/folioworks/folio/pkg/server/router"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const (
	MetricsPath     = "/metrics"
	shutdownTimeout = 10 * time.Second
)

// Server is one listener managed by the serve command.
type Server interface {
	Run() error
	Shutdown() error
}

type BaseServer struct {
	Config *config.Config
	Logger *logrus.Logger
	Router *fiber.App
	addr   string
}

func NewBaseServer(config *config.Config, logger *logrus.Logger, addr string) *BaseServer {
	r := fiber.New(WithProxySettings(fiber.Config{
		DisableStartupMessage: true,
		ReduceMemoryUsage:     true,
		Network:               fiber.NetworkTCP,
		BodyLimit:             1 * 1024 * 1024,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          60 * time.Second,
		IdleTimeout:           120 * time.Second,
		ErrorHandler:          jsonErrorHandler,
	}, config.Server))
	r.Server().NoDefaultServerHeader = true

	return &BaseServer{
		Config: config,
		Logger: logger,
		Router: r,
		addr:   addr,
	}
}

// WithProxySettings makes c.IP() read the proxy header, but only for requests
// whose peer is a trusted proxy. With no trusted proxies the header is ignored.
func WithProxySettings(fc fiber.Config, sc config.ServerConfig) fiber.Config {
	if len(sc.TrustedProxies) == 0 {
		return fc
	}
	header := sc.ProxyHeader
	if header == "" {
		header = fiber.HeaderXForwardedFor
	}
	fc.EnableTrustedProxyCheck = true
	fc.TrustedProxies = sc.TrustedProxies
	fc.ProxyHeader = header
	fc.EnableIPValidation = true
	return fc
}

func (s *BaseServer) WithRouters(routers ...router.ServerRouter) *BaseServer {
	for _, r := range routers {
		if err := r.BuildRoutes(s.Router); err != nil {
			s.Logger.WithError(err).Error("failed to build routes")
		}
	}
	return s
}

func (s *BaseServer) Run() error {
	s.Logger.WithField("addr", s.addr).Info("starting server")
	return s.Router.Listen(s.addr)
}

func (s *BaseServer) Shutdown() error {
	return s.Router.ShutdownWithTimeout(shutdownTimeout)
}

// Addr is the listen address passed to Run.
func (s *BaseServer) Addr() string {
	return s.addr
}

// NewAPIServer serves the public and admin API on server.port.
func NewAPIServer(cfg *config.Config, logger *logrus.Logger, routers ...router.ServerRouter) Server {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	return NewBaseServer(cfg, logger, addr).WithRouters(routers...)
}

// NewMetricsServer serves prometheus metrics on server.metrics_port.
func NewMetricsServer(cfg *config.Config, logger *logrus.Logger) Server {
	prometheus.Initialize()

	s := NewBaseServer(cfg, logger, fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.MetricsPort))
	s.Router.Use(recover.New())
	handler := fasthttpadaptor.NewFastHTTPHandler(prometheus.Handler())
	s.Router.Get(MetricsPath, func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	})
	return s
}

// RunUntil runs srv until ctx is cancelled, then shuts it down.
func RunUntil(ctx context.Context, srv Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
}

func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}
