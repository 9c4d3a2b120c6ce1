package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/folioworks/folio/pkg/app/search"
	"github.com/folioworks/folio/pkg/infra/httpx"
	"github.com/folioworks/folio/pkg/infra/prometheus"
	"github.com/folioworks/folio/pkg/infra/providers"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyMessage = errors.New("message is required")
	// ErrUnavailable means the breaker is rejecting calls.
	ErrUnavailable = errors.New("chat is temporarily unavailable")
	ErrProvider    = errors.New("chat provider failed")
)

const (
	DefaultContextItems = 3
	DefaultTimeout      = 30 * time.Second
	MaxHistory          = 10

	defaultSystemPrompt = "You are the assistant on a personal portfolio site. " +
		"Answer questions about the author's projects, writing and research. " +
		"Keep answers short and point to pages when they are relevant."
)

type Request struct {
	Message string
	History []providers.Message
}

type Source struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Reply struct {
	Reply   string   `json:"reply"`
	Model   string   `json:"model"`
	Sources []Source `json:"sources"`
}

//go:generate mockery --name=Service --dir=. --output=./mocks --filename=service_mock.go --case=underscore --with-expecter
type Service interface {
	Ask(ctx context.Context, req Request) (*Reply, error)
}

type ServiceOpts struct {
	Provider     string
	Config       providers.Config
	ContextItems int
	Timeout      time.Duration
	Breaker      httpx.CircuitBreaker
}

type service struct {
	logger       *logrus.Logger
	search       search.Service
	client       providers.Client
	provider     string
	config       providers.Config
	contextItems int
	timeout      time.Duration
	breaker      httpx.CircuitBreaker
}

func NewService(
	logger *logrus.Logger,
	searchService search.Service,
	client providers.Client,
	opts *ServiceOpts,
) Service {
	if opts == nil {
		opts = &ServiceOpts{}
	}
	s := &service{
		logger:       logger,
		search:       searchService,
		client:       client,
		provider:     opts.Provider,
		config:       opts.Config,
		contextItems: opts.ContextItems,
		timeout:      opts.Timeout,
		breaker:      opts.Breaker,
	}
	if s.contextItems <= 0 {
		s.contextItems = DefaultContextItems
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	if s.config.SystemPrompt == "" {
		s.config.SystemPrompt = defaultSystemPrompt
	}
	if s.breaker == nil {
		s.breaker = httpx.NewCircuitBreaker("chat-"+s.provider, 30*time.Second, 5, httpx.WithBreakerLogger(logger))
	}
	return s
}

func (s *service) Ask(ctx context.Context, req Request) (*Reply, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	hits := s.search.Search(ctx, retrievalQuery(message), s.contextItems)
	sources := make([]Source, 0, len(hits))
	for _, h := range hits {
		sources = append(sources, Source{ID: h.Item.ID, Title: h.Item.Title, URL: h.Item.URL})
	}

	cfg := s.config
	cfg.SystemPrompt = buildSystemPrompt(s.config.SystemPrompt, hits)

	history := req.History
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}

	var resp *providers.Completion
	err := s.breaker.Execute(func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		var askErr error
		resp, askErr = s.client.Ask(callCtx, &cfg, history, message)
		return askErr
	})
	if err != nil {
		if errors.Is(err, httpx.ErrCircuitOpen) {
			prometheus.ChatRequests.WithLabelValues(s.provider, "rejected").Inc()
			return nil, ErrUnavailable
		}
		prometheus.ChatRequests.WithLabelValues(s.provider, "error").Inc()
		s.logger.WithError(err).WithField("provider", s.provider).Error("chat completion failed")
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	prometheus.ChatRequests.WithLabelValues(s.provider, "ok").Inc()
	s.logger.WithFields(logrus.Fields{
		"provider": s.provider,
		"model":    resp.Model,
		"tokens":   resp.Usage.Total(),
		"sources":  len(sources),
	}).Debug("chat completion")

	return &Reply{
		Reply:   resp.Text,
		Model:   resp.Model,
		Sources: sources,
	}, nil
}

func buildSystemPrompt(base string, hits []search.Result) string {
	if len(hits) == 0 {
		return base
	}
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n\nRelevant pages:\n")
	for _, h := range hits {
		b.WriteString("- ")
		b.WriteString(h.Item.Title)
		if h.Item.URL != "" {
			b.WriteString(" (")
			b.WriteString(h.Item.URL)
			b.WriteString(")")
		}
		if h.Item.Description != "" {
			b.WriteString(": ")
			b.WriteString(h.Item.Description)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// retrievalQuery keeps the head of long messages; search only matches the
// first search.MaxPatternRunes runes anyway.
func retrievalQuery(message string) string {
	r := []rune(message)
	if len(r) > search.MaxPatternRunes {
		return string(r[:search.MaxPatternRunes])
	}
	return message
}
