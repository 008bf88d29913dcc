package config

import "time"

// SessionConfig controls editor session storage.  TTL slides: every read
// or write of a session pushes its expiry out again.
type SessionConfig struct {
	TTL    time.Duration
	Prefix string
}

// LoadSessionConfig reads SESSION_TTL and SESSION_PREFIX.
func LoadSessionConfig() SessionConfig {
	cfg := SessionConfig{
		TTL:    envDur("SESSION_TTL", 30*time.Minute),
		Prefix: envStr("SESSION_PREFIX", "stagex:editor"),
	}
	if cfg.TTL < time.Minute {
		cfg.TTL = time.Minute
	}
	return cfg
}
