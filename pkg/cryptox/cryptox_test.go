package cryptox_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/estate/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	a, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	b, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)

	require.Len(t, a, 43)
	require.NotEqual(t, a, b)

	for _, size := range []int{0, -1} {
		tok, err := cryptox.GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, tok)
	}
}

func TestFingerprint(t *testing.T) {
	fp := cryptox.FingerprintToken("refresh-token")

	require.Len(t, fp, 43)
	require.Equal(t, fp, cryptox.FingerprintToken("refresh-token"))
	require.True(t, cryptox.MatchFingerprint("refresh-token", fp))
	require.False(t, cryptox.MatchFingerprint("other-token", fp))
	require.False(t, cryptox.MatchFingerprint("refresh-token", ""))
}

func TestDigestCode(t *testing.T) {
	key := []byte("ledger-key")

	d := cryptox.DigestCode(key, "9876543210", "4821")
	require.Len(t, d, 64)
	require.True(t, cryptox.EqualDigest(d, cryptox.DigestCode(key, "9876543210", "4821")))

	// Same code for a different phone, or under a different key, differs.
	require.False(t, cryptox.EqualDigest(d, cryptox.DigestCode(key, "9876543211", "4821")))
	require.False(t, cryptox.EqualDigest(d, cryptox.DigestCode([]byte("other"), "9876543210", "4821")))
	require.False(t, cryptox.EqualDigest(d, cryptox.DigestCode(key, "9876543210", "4822")))

	// Oversized keys are truncated rather than rejected.
	long := make([]byte, 100)
	require.Len(t, cryptox.DigestCode(long, "9876543210", "4821"), 64)
}

func TestHMACSHA256Hex(t *testing.T) {
	// RFC 4231 test case 2.
	sig := cryptox.HMACSHA256Hex("Jefe", "what do ya want for nothing?")
	require.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", sig)

	require.True(t, cryptox.VerifyHMACSHA256Hex("Jefe", "what do ya want for nothing?", sig))
	require.True(t, cryptox.VerifyHMACSHA256Hex("Jefe", "what do ya want for nothing?", " 5BDCC146BF60754E6A042426089575C75A003F089D2739839DEC58B964EC3843 "))
	require.False(t, cryptox.VerifyHMACSHA256Hex("Jefe", "what do ya want for something?", sig))
	require.False(t, cryptox.VerifyHMACSHA256Hex("Jefe", "what do ya want for nothing?", "not-hex"))
}

func TestLoadOrCreateSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := cryptox.LoadOrCreateSecret(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := cryptox.LoadOrCreateSecret(path)
	require.NoError(t, err)
	require.Equal(t, first, second)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))
	_, err = cryptox.LoadOrCreateSecret(empty)
	require.Error(t, err)
}
