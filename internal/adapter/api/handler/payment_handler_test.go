package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(secret, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	h := NewPaymentHandler(nil, "whsec_test")

	payload := []byte(`{"type":"checkout.session.completed"}`)
	timestamp := "1700000000"
	header := "t=" + timestamp + ",v1=" + signPayload("whsec_test", timestamp, payload)

	assert.True(t, h.verifySignature(payload, header))
}

func TestVerifySignatureRejectsTamperedPayload(t *testing.T) {
	h := NewPaymentHandler(nil, "whsec_test")

	payload := []byte(`{"type":"checkout.session.completed"}`)
	timestamp := "1700000000"
	header := "t=" + timestamp + ",v1=" + signPayload("whsec_test", timestamp, payload)

	assert.False(t, h.verifySignature([]byte(`{"type":"tampered"}`), header))
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	h := NewPaymentHandler(nil, "whsec_test")

	payload := []byte(`{}`)
	timestamp := "1700000000"
	header := "t=" + timestamp + ",v1=" + signPayload("whsec_other", timestamp, payload)

	assert.False(t, h.verifySignature(payload, header))
}

func TestVerifySignatureMalformedHeader(t *testing.T) {
	h := NewPaymentHandler(nil, "whsec_test")

	assert.False(t, h.verifySignature([]byte(`{}`), ""))
	assert.False(t, h.verifySignature([]byte(`{}`), "v1=abc"))
	assert.False(t, h.verifySignature([]byte(`{}`), "t=1700000000"))
}

func TestVerifySignatureNoSecretConfigured(t *testing.T) {
	h := NewPaymentHandler(nil, "")

	payload := []byte(`{}`)
	timestamp := "1700000000"
	header := "t=" + timestamp + ",v1=" + signPayload("", timestamp, payload)

	assert.False(t, h.verifySignature(payload, header))
}
