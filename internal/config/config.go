package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	CoinGeckoBaseURL      string
	CoinGeckoPollSecs     int
	CoinGeckoTimeoutSecs  int
	CoinGeckoRateLimitMin int

	RefreshSchedule  string
	RefreshDropStale bool

	HTTPPort           int
	ChartWidth         int
	ChartHeight        int
	CORSAllowedOrigins []string

	SSHPort        int
	SSHHostKeyPath string

	WidgetLogFile string
}

func Load() *Config {
	cfg := &Config{
		CoinGeckoBaseURL: strings.TrimSpace(os.Getenv("COINGECKO_BASE_URL")),
		RefreshSchedule:  strings.TrimSpace(os.Getenv("REFRESH_SCHEDULE")),
		WidgetLogFile:    strings.TrimSpace(os.Getenv("WIDGET_LOG_FILE")),
	}

	if cfg.CoinGeckoBaseURL == "" {
		cfg.CoinGeckoBaseURL = "https://api.coingecko.com/api/v3"
	}

	cfg.CoinGeckoPollSecs = positiveInt("COINGECKO_POLL_SECS", 60)
	cfg.CoinGeckoTimeoutSecs = positiveInt("COINGECKO_TIMEOUT_SECS", 30)

	cfg.CoinGeckoRateLimitMin = 8
	if v := strings.TrimSpace(os.Getenv("COINGECKO_RATE_LIMIT_PER_MIN")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.CoinGeckoRateLimitMin = n
		}
	}
	if cfg.CoinGeckoRateLimitMin == 0 {
		log.Println("Warning: COINGECKO_RATE_LIMIT_PER_MIN=0, client-side rate limiting disabled")
	}

	cfg.RefreshDropStale = strings.EqualFold(strings.TrimSpace(os.Getenv("REFRESH_DROP_STALE")), "true")

	cfg.HTTPPort = positiveInt("HTTP_PORT", 8080)
	cfg.ChartWidth = positiveInt("CHART_WIDTH", 600)
	cfg.ChartHeight = positiveInt("CHART_HEIGHT", 300)
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	cfg.SSHPort = positiveInt("SSH_PORT", 2222)
	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/sol_ticker_ed25519"
	}

	return cfg
}

func positiveInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}
