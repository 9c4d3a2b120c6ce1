package webhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/folioworks/folio/pkg/domain/webhook"
)

const secretBytes = 32

func GenerateSecret() (string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate webhook secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Sign returns the hex encoded HMAC-SHA256 of payload keyed by secret.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the signature of payload and compares it in constant time.
func Verify(payload []byte, signature, secret string) bool {
	got, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), got)
}

// VerifyBody checks a delivered request body: the signature field is
// removed and the remaining payload is verified against it.
func VerifyBody(body []byte, secret string) bool {
	var p webhook.Payload
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		return false
	}
	signature := p.Signature
	p.Signature = ""
	unsigned, err := json.Marshal(p)
	if err != nil {
		return false
	}
	return Verify(unsigned, signature, secret)
}

// canonicalPayload marshals p with data normalised through a generic JSON
// round trip, so object keys are sorted no matter what type data had.
func canonicalPayload(p webhook.Payload) (webhook.Payload, []byte, error) {
	raw, err := json.Marshal(p.Data)
	if err != nil {
		return p, nil, fmt.Errorf("failed to encode payload data: %w", err)
	}
	var normalised interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&normalised); err != nil {
		return p, nil, fmt.Errorf("failed to normalise payload data: %w", err)
	}
	p.Data = normalised
	p.Signature = ""
	unsigned, err := json.Marshal(p)
	if err != nil {
		return p, nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return p, unsigned, nil
}
