package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// Token sizes in bytes before encoding.
const (
	TokenSize128 = 16
	TokenSize256 = 32
)

// GenerateToken returns size random bytes as unpadded base64url.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// FingerprintToken is the SHA-256 of token, base64url encoded. Refresh
// tokens are stored as fingerprints only.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// MatchFingerprint compares token against a stored fingerprint in
// constant time. An empty fingerprint never matches.
func MatchFingerprint(token, fingerprint string) bool {
	if fingerprint == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(FingerprintToken(token)), []byte(fingerprint)) == 1
}
