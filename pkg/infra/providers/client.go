package providers

import (
	"context"
	"errors"
)

var (
	ErrMissingAPIKey = errors.New("API key is required")
	ErrMissingModel  = errors.New("model is required")
	ErrEmptyResponse = errors.New("no completions returned")
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Config struct {
	APIKey       string  `json:"-"`
	Model        string  `json:"model"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
}

// Message is one earlier turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completion is the assistant's answer to one Ask call.
type Completion struct {
	ID    string `json:"id"`
	Model string `json:"model"`
	Text  string `json:"text"`
	Usage Usage  `json:"usage"`
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter

type Client interface {
	Ask(ctx context.Context, config *Config, history []Message, prompt string) (*Completion, error)
}
