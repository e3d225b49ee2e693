package cryptox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadOrCreateSecret reads a secret from path, generating and persisting
// a 256-bit one on first use. Every instance that shares the OTP ledger
// must share this file.
func LoadOrCreateSecret(path string) ([]byte, error) {
	path = filepath.Clean(path)

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		s := strings.TrimSpace(string(b))
		if s == "" {
			return nil, fmt.Errorf("secret file %s is empty", path)
		}
		return []byte(s), nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}

	s, err := GenerateToken(TokenSize256)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, []byte(s), 0o600); err != nil {
		return nil, err
	}
	return []byte(s), nil
}
