//go:build production

package otp

// IsDebugBypass is always false in production builds.
func IsDebugBypass(string) bool { return false }
