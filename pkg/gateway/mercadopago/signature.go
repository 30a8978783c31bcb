package mercadopago

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"autowebinar-be/pkg/gateway"
)

// VerifySignature authenticates a Mercado Pago webhook delivery. The
// x-signature header carries "ts=<unix>,v1=<hex hmac>"; the HMAC-SHA256 is
// computed over the manifest
//
//	id:<data.id>;request-id:<x-request-id>;ts:<ts>;
//
// with data.id lowercased, keyed by the webhook secret.
func VerifySignature(secret, signatureHeader, requestID, dataID string) error {
	ts, v1, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return err
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", strings.ToLower(dataID), requestID, ts)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	if subtle.ConstantTimeCompare([]byte(expected), []byte(v1)) != 1 {
		return gateway.ErrInvalidSignature
	}
	return nil
}

func parseSignatureHeader(header string) (ts, v1 string, err error) {
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "ts":
			ts = value
		case "v1":
			v1 = value
		}
	}
	if ts == "" || v1 == "" {
		return "", "", fmt.Errorf("%w: malformed x-signature header", gateway.ErrInvalidSignature)
	}
	return ts, v1, nil
}
