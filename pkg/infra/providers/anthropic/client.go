package anthropic

import (
	"context"
	"fmt"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/folioworks/folio/pkg/infra/providers"
)

const (
	defaultModel     = "claude-3-5-haiku-latest"
	defaultMaxTokens = 512
)

type client struct {
	clientPool *sync.Map
}

func NewAnthropicClient() providers.Client {
	return &client{
		clientPool: &sync.Map{},
	}
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

	anthropicClient := c.getOrCreateClient(config.APIKey)

	messages := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, m := range history {
		switch m.Role {
		case providers.RoleUser:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case providers.RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	if prompt != "" {
		messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)))
	}

	model := anthropic.Model(defaultModel)
	if config.Model != "" {
		model = anthropic.Model(config.Model)
	}
	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     model,
		Messages:  messages,
		MaxTokens: int64(maxTokens),
	}
	if config.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: config.SystemPrompt, Type: "text"},
		}
	}
	if config.Temperature > 0 {
		params.Temperature = anthropic.Float(config.Temperature)
	}

	message, err := anthropicClient.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}

	var responseText string
	for _, content := range message.Content {
		if content.Type == "text" {
			responseText = content.Text
			break
		}
	}
	if responseText == "" {
		return nil, providers.ErrEmptyResponse
	}

	return &providers.Completion{
		ID:    message.ID,
		Model: string(model),
		Text:  responseText,
		Usage: providers.Usage{
			InputTokens:  int(message.Usage.InputTokens),
			OutputTokens: int(message.Usage.OutputTokens),
		},
	}, nil
}

func (c *client) getOrCreateClient(apiKey string) anthropic.Client {
	if v, ok := c.clientPool.Load(apiKey); ok {
		if cli, ok := v.(anthropic.Client); ok {
			return cli
		}
	}
	cli := anthropic.NewClient(option.WithAPIKey(apiKey))
	actual, _ := c.clientPool.LoadOrStore(apiKey, cli)
	if stored, ok := actual.(anthropic.Client); ok {
		return stored
	}
	return cli
}
