package factory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/folioworks/folio/pkg/infra/providers"
	"github.com/folioworks/folio/pkg/infra/providers/anthropic"
	"github.com/folioworks/folio/pkg/infra/providers/openai"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var ErrUnsupportedProvider = errors.New("unsupported provider")

type ProviderLocator interface {
	Get(provider string) (providers.Client, error)
}

type LocatorOption func(*providerLocator)

// WithOpenAIBaseURL points the openai provider at a compatible endpoint.
func WithOpenAIBaseURL(url string) LocatorOption {
	return func(l *providerLocator) {
		l.openaiBaseURL = url
	}
}

type providerLocator struct {
	openaiBaseURL string
}

func NewProviderLocator(opts ...LocatorOption) ProviderLocator {
	l := &providerLocator{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Get matches provider names case-insensitively.
func (l *providerLocator) Get(provider string) (providers.Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderOpenAI:
		var opts []openai.Option
		if l.openaiBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(l.openaiBaseURL))
		}
		return openai.NewOpenaiClient(opts...), nil
	case ProviderAnthropic:
		return anthropic.NewAnthropicClient(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
}
