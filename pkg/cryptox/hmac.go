package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HMACSHA256Hex signs message with secret and returns lowercase hex.
func HMACSHA256Hex(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHMACSHA256Hex checks a hex signature produced by a third party.
// Case is ignored because gateways disagree on it.
func VerifyHMACSHA256Hex(secret, message, signature string) bool {
	got, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(signature)))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hmac.Equal(mac.Sum(nil), got)
}
