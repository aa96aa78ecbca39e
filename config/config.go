package config

import (
	"os"
	"path/filepath"
)

// Config holds the runtime settings for the client application. Everything
// comes from environment variables with workable local defaults.
type Config struct {
	// APIBaseURL is the root of the platform REST API, without the /api prefix.
	APIBaseURL string
	// WSBaseURL is the root used for the realtime endpoint (ws:// or wss://).
	WSBaseURL string
	// ListenAddr is where the local UI is served.
	ListenAddr string
	// TokenPath is the file holding the persisted bearer token.
	TokenPath string
	// CheckoutURLTemplate turns a checkout session id into the hosted payment
	// page URL. Must contain a single %s verb.
	CheckoutURLTemplate string
}

func Load() Config {
	return Config{
		APIBaseURL:          getEnv("SCCP_API_URL", "http://127.0.0.1:8080"),
		WSBaseURL:           getEnv("SCCP_WS_URL", "ws://127.0.0.1:8080"),
		ListenAddr:          getEnv("SCCP_LISTEN_ADDR", "127.0.0.1:3000"),
		TokenPath:           getEnv("SCCP_TOKEN_PATH", defaultTokenPath()),
		CheckoutURLTemplate: getEnv("SCCP_CHECKOUT_URL", "https://checkout.stripe.com/c/pay/%s"),
	}
}

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".sccp-token"
	}
	return filepath.Join(dir, "sccp", "token")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
