//go:build !production

package otp

// debugBypassCode is accepted by verification in non-production builds
// when the runtime switch also allows it. Production builds do not
// contain it at all.
const debugBypassCode = "1234"

// IsDebugBypass reports whether code is the development bypass code.
func IsDebugBypass(code string) bool {
	return code == debugBypassCode
}
