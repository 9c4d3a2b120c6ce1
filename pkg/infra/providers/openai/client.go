package openai

import (
	"context"
	"fmt"
	"sync"

	"github.com/folioworks/folio/pkg/infra/providers"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"golang.org/x/sync/singleflight"
)

type client struct {
	clientPool *sync.Map
	sf         singleflight.Group
	baseURL    string
}

type Option func(*client)

// WithBaseURL points the client at a compatible API other than api.openai.com.
func WithBaseURL(url string) Option {
	return func(c *client) {
		c.baseURL = url
	}
}

func NewOpenaiClient(opts ...Option) providers.Client {
	c := &client{clientPool: &sync.Map{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) Ask(
	ctx context.Context,
	config *providers.Config,
	history []providers.Message,
	prompt string,
) (*providers.Completion, error) {
	if config.APIKey == "" {
		return nil, providers.ErrMissingAPIKey
	}
	if config.Model == "" {
		return nil, providers.ErrMissingModel
	}

	openaiClient := c.getOrCreateClient(config.APIKey)

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	if config.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(config.SystemPrompt))
	}
	for _, m := range history {
		switch m.Role {
		case providers.RoleUser:
			messages = append(messages, openai.UserMessage(m.Content))
		case providers.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		}
	}
	if prompt != "" {
		messages = append(messages, openai.UserMessage(prompt))
	}

	params := openai.ChatCompletionNewParams{
		Model:    config.Model,
		Messages: messages,
	}
	if config.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(config.MaxTokens))
	}
	if config.Temperature > 0 {
		params.Temperature = openai.Float(config.Temperature)
	}

	resp, err := openaiClient.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, providers.ErrEmptyResponse
	}

	return &providers.Completion{
		ID:    resp.ID,
		Model: resp.Model,
		Text:  resp.Choices[0].Message.Content,
		Usage: providers.Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
	}, nil
}

func (c *client) getOrCreateClient(apiKey string) *openai.Client {
	if v, ok := c.clientPool.Load(apiKey); ok {
		if cli, ok := v.(*openai.Client); ok {
			return cli
		}
	}
	v, _, _ := c.sf.Do(apiKey, func() (any, error) {
		if v2, ok := c.clientPool.Load(apiKey); ok {
			return v2, nil
		}
		opts := []option.RequestOption{option.WithAPIKey(apiKey)}
		if c.baseURL != "" {
			opts = append(opts, option.WithBaseURL(c.baseURL))
		}
		cli := openai.NewClient(opts...)
		c.clientPool.Store(apiKey, &cli)
		return &cli, nil
	})
	if cli, ok := v.(*openai.Client); ok {
		return cli
	}
	cli := openai.NewClient(option.WithAPIKey(apiKey))
	return &cli
}
