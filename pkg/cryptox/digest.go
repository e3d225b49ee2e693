package cryptox

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// DigestCode returns a keyed BLAKE2b-256 digest binding code to phone.
// Live OTP codes are kept only in this form so a dump of the ledger
// backend does not leak usable codes.
func DigestCode(key []byte, phone, code string) string {
	// blake2b only rejects keys longer than 64 bytes.
	if len(key) > blake2b.Size {
		key = key[:blake2b.Size]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		panic("cryptox: " + err.Error())
	}
	h.Write([]byte(phone))
	h.Write([]byte{0})
	h.Write([]byte(code))
	return hex.EncodeToString(h.Sum(nil))
}

// EqualDigest compares two digests in constant time.
func EqualDigest(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
