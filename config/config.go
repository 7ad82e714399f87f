package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// AppConfig holds the console configuration. Redis settings are read
// separately by the database package.
type AppConfig struct {
	UpstreamBaseURL string
	ListenAddr      string
	SymmetricKey    string
	AllowedOrigins  []string
}

// Load reads the configuration from environment variables. The upstream
// URL and session key are mandatory; everything else has a default.
func Load() (*AppConfig, error) {
	upstream := os.Getenv("UPSTREAM_API_URL")
	if upstream == "" {
		return nil, errors.New("missing UPSTREAM_API_URL environment variable")
	}

	key := os.Getenv("CONSOLE_SESSION_KEY")
	if len(key) != 32 {
		return nil, errors.Errorf("CONSOLE_SESSION_KEY must be exactly 32 bytes, got %d", len(key))
	}

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8930"
	}

	origins := []string{"http://localhost:3000"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	return &AppConfig{
		UpstreamBaseURL: strings.TrimRight(upstream, "/"),
		ListenAddr:      listenAddr,
		SymmetricKey:    key,
		AllowedOrigins:  origins,
	}, nil
}

// GetSymmetricKey returns the session key bytes.
func (c *AppConfig) GetSymmetricKey() []byte {
	return []byte(c.SymmetricKey)
}
