package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all service settings, populated from environment variables.
type AppConfig struct {
	// Live weather provider credentials. When neither key is set the
	// resolver serves simulated data only.
	OpenWeatherAPIKey string
	WeatherAPIKey     string

	// PreferLive controls whether the live provider chain is tried before
	// the simulated source. Defaults to true when any API key is set.
	PreferLive bool

	// Country qualifier appended to region names in provider queries.
	WeatherCountry string

	// HTTPTimeout bounds each outbound live weather call.
	HTTPTimeout time.Duration

	// RefreshInterval controls how often the background job resolves
	// weather for each tracked region.
	RefreshInterval time.Duration

	// Regions tracked by the background refresher.
	Regions []string

	// Observation history retention.
	StoreMaxHistory int           // max number of observations per region (0 = unlimited)
	StoreMaxAge     time.Duration // max age of observations (0 = unlimited)

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.WeatherCountry = getenvDefault("WEATHER_COUNTRY", "IN")

	cfg.PreferLive = cfg.OpenWeatherAPIKey != "" || cfg.WeatherAPIKey != ""
	if v := os.Getenv("WEATHER_PREFER_LIVE"); v != "" {
		cfg.PreferLive = v == "true"
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Refresh interval: default 15 minutes.
	intervalStr := getenvDefault("REFRESH_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	// Observation retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 96) // roughly 24h at 15-minute intervals

	maxAgeStr := getenvDefault("STORE_MAX_AGE", "24h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_MAX_AGE: %w", err)
	}
	cfg.StoreMaxAge = maxAge
	cfg.Port = getenvDefault("PORT", "8080")

	cfg.Regions = splitRegions(os.Getenv("WEATHER_REGIONS"))

	return cfg, nil
}

func splitRegions(s string) []string {
	var regions []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			regions = append(regions, r)
		}
	}
	return regions
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
