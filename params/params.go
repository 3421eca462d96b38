package params

import "time"

const (
	ServerBodyLimit    = 1048576 // 1 MiB
	ServerIdleTimeout  = 30 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 10 * time.Second

	SessionLifetime           = 30 * time.Minute  // idle time before a session expires
	SessionRegenerateInterval = 300 * time.Second // minimum interval between session id rotations
	SessionAbsoluteAge        = 30 * time.Minute  // session age that forces an id rotation on touch

	CSRFTokenExpiration  = 1 * time.Hour // lifetime of an unused CSRF token
	CSRFTokenLength      = 32            // random bytes per token
	CSRFCookieName       = "csrf_token"
	CSRFCookieExpiration = 1 * time.Hour

	LoginMaxAttempts   = 5                // failed logins allowed per window
	LoginAttemptWindow = 15 * time.Minute // rolling window for login attempts
	RateLimitKeyPrefix = "rl:"
	SettingsKeyPrefix  = "st:"

	PasswordResetTokenExpiration = 30 * time.Minute

	MinInvestmentAmount = 10.0
	MaxAmountMagnitude  = 1_000_000_000.0 // upper bound for any financial amount
	MaxAmountDecimals   = 8

	HealthCheckServerAddr = ":3001"
)
