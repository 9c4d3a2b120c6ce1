package webhook_test

import (
	"encoding/json"
	"testing"

	appWebhook "github.com/folioworks/folio/pkg/app/webhook"
	"github.com/folioworks/folio/pkg/domain/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign_KnownVector(t *testing.T) {
	// RFC 4231 test case 2
	sig := appWebhook.Sign([]byte("what do ya want for nothing?"), "Jefe")
	assert.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", sig)
}

func TestVerify(t *testing.T) {
	payload := []byte(`{"event":"blog.created"}`)
	sig := appWebhook.Sign(payload, "s3cret")

	assert.True(t, appWebhook.Verify(payload, sig, "s3cret"))
	assert.False(t, appWebhook.Verify(payload, sig, "other"))
	assert.False(t, appWebhook.Verify([]byte(`{"event":"blog.updated"}`), sig, "s3cret"))
	assert.False(t, appWebhook.Verify(payload, "not-hex", "s3cret"))
	assert.False(t, appWebhook.Verify(payload, sig[:10], "s3cret"))
}

func TestGenerateSecret(t *testing.T) {
	a, err := appWebhook.GenerateSecret()
	require.NoError(t, err)
	b, err := appWebhook.GenerateSecret()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestVerifyBody(t *testing.T) {
	unsigned, err := json.Marshal(webhook.Payload{
		Event:     webhook.EventBlogCreated,
		Timestamp: "2025-02-28T08:15:36Z",
		Data:      map[string]interface{}{"id": "post-1", "views": 12},
	})
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(unsigned, &body))
	body["signature"] = appWebhook.Sign(unsigned, "s3cret")
	signed, err := json.Marshal(body)
	require.NoError(t, err)

	assert.True(t, appWebhook.VerifyBody(signed, "s3cret"))
	assert.False(t, appWebhook.VerifyBody(signed, "wrong"))
	assert.False(t, appWebhook.VerifyBody([]byte("{"), "s3cret"))
}
