package config

import "time"

type SecurityConfig interface {
	GetAuthSecret() string
	GetCookieMaxAge() time.Duration
	GetEnableRateLimiting() bool
	GetRedisAddr() string
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetAuthSecret is the process-wide secret behind cookie sealing. The server
// refuses to start without it (see Validate).
func (Security) GetAuthSecret() string {
	return GetEnv("AUTH_SECRET", "")
}

func (Security) GetCookieMaxAge() time.Duration {
	return 30 * 24 * time.Hour // Refresh token cookie lives for 30 days
}

func (s Security) GetEnableRateLimiting() bool {
	return s.GetRedisAddr() != ""
}

func (Security) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "")
}
