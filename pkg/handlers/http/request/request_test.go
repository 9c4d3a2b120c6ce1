package request

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateWebhookRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateWebhookRequest
		wantErr string
	}{
		{name: "ok", req: CreateWebhookRequest{URL: "https://example.com/hook", Events: []string{"blog.created"}}},
		{name: "missing url", req: CreateWebhookRequest{Events: []string{"blog.created"}}, wantErr: "url is required"},
		{name: "no events", req: CreateWebhookRequest{URL: "https://example.com"}, wantErr: "events is required"},
		{name: "empty event", req: CreateWebhookRequest{URL: "https://example.com", Events: []string{""}}, wantErr: "events[0] is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestContactRequest_Validate(t *testing.T) {
	req := ContactRequest{Name: "  Ada ", Email: "not-an-email", Message: "short"}

	err := req.Validate()

	assert.ErrorContains(t, err, "email must be a valid email address")
	assert.ErrorContains(t, err, "message must be at least 10 characters")
	assert.Equal(t, "Ada", req.Name)
}

func TestNewsletterRequest_NormalizesEmail(t *testing.T) {
	req := NewsletterRequest{Email: " Ada@Example.COM "}

	assert.NoError(t, req.Validate())
	assert.Equal(t, "ada@example.com", req.Email)
}

func TestChatRequest_Validate(t *testing.T) {
	req := ChatRequest{Message: "hi", History: []ChatMessage{{Role: "system", Content: "x"}}}
	assert.ErrorContains(t, req.Validate(), "role must be one of: user assistant")

	req = ChatRequest{Message: strings.Repeat("a", 2001)}
	assert.ErrorContains(t, req.Validate(), "message must be at most 2000 characters")
}
