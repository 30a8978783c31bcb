package mercadopago

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"autowebinar-be/pkg/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signManifest(secret, dataID, requestID, ts string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "id:%s;request-id:%s;ts:%s;", dataID, requestID, ts)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "test-webhook-secret"
	dataID := "12345678901"
	requestID := "req-abc-123"
	ts := "1704908010"

	v1 := signManifest(secret, dataID, requestID, ts)
	header := fmt.Sprintf("ts=%s,v1=%s", ts, v1)

	require.NoError(t, VerifySignature(secret, header, requestID, dataID))

	// spaces after the comma are tolerated
	require.NoError(t, VerifySignature(secret, fmt.Sprintf("ts=%s, v1=%s", ts, v1), requestID, dataID))
}

func TestVerifySignatureLowercasesDataID(t *testing.T) {
	secret := "s3cret"
	requestID := "req-1"
	ts := "1704908010"

	// manifest is built over the lowercased id
	v1 := signManifest(secret, "abc123def", requestID, ts)
	header := fmt.Sprintf("ts=%s,v1=%s", ts, v1)

	require.NoError(t, VerifySignature(secret, header, requestID, "ABC123DEF"))
}

func TestVerifySignatureRejects(t *testing.T) {
	secret := "test-webhook-secret"
	dataID := "12345678901"
	requestID := "req-abc-123"
	ts := "1704908010"
	v1 := signManifest(secret, dataID, requestID, ts)

	cases := []struct {
		name   string
		header string
		reqID  string
		dataID string
	}{
		{"wrong secret key", fmt.Sprintf("ts=%s,v1=%s", ts, signManifest("other", dataID, requestID, ts)), requestID, dataID},
		{"tampered data id", fmt.Sprintf("ts=%s,v1=%s", ts, v1), requestID, "99999999999"},
		{"tampered request id", fmt.Sprintf("ts=%s,v1=%s", ts, v1), "req-other", dataID},
		{"tampered ts", fmt.Sprintf("ts=1704908011,v1=%s", v1), requestID, dataID},
		{"missing v1", fmt.Sprintf("ts=%s", ts), requestID, dataID},
		{"empty header", "", requestID, dataID},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := VerifySignature(secret, c.header, c.reqID, c.dataID)
			assert.ErrorIs(t, err, gateway.ErrInvalidSignature)
		})
	}
}
