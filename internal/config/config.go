package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

type Config struct {
	Port        string
	HTTPTimeout time.Duration
	LogLevel    slog.Level
	CORSOrigins []string
	Generation  Generation
}

// Generation fixes everything the synthetic dataset depends on.
type Generation struct {
	Seed    uint32
	EndDate time.Time
	Days    int
	// Today anchors the dashboard date presets (7d, 30d, ...).
	Today time.Time
}

func DefaultGeneration() Generation {
	return Generation{
		Seed:    42,
		EndDate: time.Date(2026, time.February, 11, 0, 0, 0, 0, time.UTC),
		Days:    180,
		Today:   time.Date(2026, time.February, 12, 0, 0, 0, 0, time.UTC),
	}
}

// fileConfig is the optional YAML layer; env wins over it.
type fileConfig struct {
	Server struct {
		Port           string   `yaml:"port"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		LogLevel       string   `yaml:"log_level"`
		CORSOrigins    []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Generation struct {
		Seed    *uint32 `yaml:"seed"`
		EndDate string  `yaml:"end_date"`
		Days    int     `yaml:"days"`
		Today   string  `yaml:"today"`
	} `yaml:"generation"`
}

func Default() Config {
	return Config{
		Port:        "8080",
		HTTPTimeout: 15 * time.Second,
		LogLevel:    slog.LevelInfo,
		CORSOrigins: []string{"http://localhost:3000"},
		Generation:  DefaultGeneration(),
	}
}

// Load reads a YAML file on top of the defaults. Missing fields keep defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return cfg, err
	}
	if fc.Server.Port != "" {
		cfg.Port = fc.Server.Port
	}
	if fc.Server.TimeoutSeconds > 0 {
		cfg.HTTPTimeout = time.Duration(fc.Server.TimeoutSeconds) * time.Second
	}
	if fc.Server.LogLevel != "" {
		cfg.LogLevel = parseLevel(fc.Server.LogLevel)
	}
	if len(fc.Server.CORSOrigins) > 0 {
		cfg.CORSOrigins = fc.Server.CORSOrigins
	}
	if fc.Generation.Seed != nil {
		cfg.Generation.Seed = *fc.Generation.Seed
	}
	if d, ok := parseDate(fc.Generation.EndDate); ok {
		cfg.Generation.EndDate = d
	}
	if fc.Generation.Days > 0 {
		cfg.Generation.Days = fc.Generation.Days
	}
	if d, ok := parseDate(fc.Generation.Today); ok {
		cfg.Generation.Today = d
	}
	return cfg, nil
}

// FromEnv loads .env (if any), then CONFIG_FILE (if set), then env overrides.
// Bad values fall back silently to what was there.
func FromEnv() Config {
	_ = godotenv.Load()

	cfg := Default()
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		if c, err := Load(p); err == nil {
			cfg = c
		} else {
			slog.Warn("config file ignored", slog.String("path", p), slog.String("err", err.Error()))
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			cfg.HTTPTimeout = d
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = parseLevel(v)
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}
	if v := os.Getenv("STRATIS_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			cfg.Generation.Seed = uint32(n)
		}
	}
	if d, ok := parseDate(os.Getenv("STRATIS_END_DATE")); ok {
		cfg.Generation.EndDate = d
	}
	if v := os.Getenv("STRATIS_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Generation.Days = n
		}
	}
	if d, ok := parseDate(os.Getenv("STRATIS_TODAY")); ok {
		cfg.Generation.Today = d
	}
	return cfg
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	return t, err == nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
