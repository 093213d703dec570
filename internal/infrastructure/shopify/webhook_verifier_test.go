package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func signPayload(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerify(t *testing.T) {
	const secret = "shpss_webhook_secret"
	payload := []byte(`{"domain":"example.myshopify.com"}`)
	verifier := NewWebhookVerifier(secret)

	tests := []struct {
		name    string
		header  string
		wantErr bool
	}{
		{"valid signature", signPayload(secret, payload), false},
		{"missing header", "", true},
		{"wrong secret", signPayload("other_secret", payload), true},
		{"tampered header", signPayload(secret, []byte(`{"domain":"evil.myshopify.com"}`)), true},
		{"garbage header", "not-base64-at-all", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verifier.Verify(payload, tt.header)
			if (err != nil) != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	const secret = "shpss_webhook_secret"
	verifier := NewWebhookVerifier(secret)

	header := signPayload(secret, []byte(`{"domain":"example.myshopify.com"}`))
	if err := verifier.Verify([]byte(`{"domain":"evil.myshopify.com"}`), header); err == nil {
		t.Error("Verify() accepted a tampered payload")
	}
}
