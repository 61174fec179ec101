// Package config loads probe settings from the environment and,
// optionally, a YAML file via Viper. File values override the built-in
// defaults; environment variables are read by FromEnv for the common
// no-config-file case.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hamed0406/endpointprobe/internal/domain"
)

type Config struct {
	Targets      []string      `mapstructure:"targets"`       // ordered probe sequence
	Timeout      time.Duration `mapstructure:"timeout"`       // per-request, not cumulative
	PreviewLimit int           `mapstructure:"preview_limit"` // body preview chars
	DiagnoseDNS  bool          `mapstructure:"diagnose_dns"`  // log DNS context on failures

	LogDir string `mapstructure:"log_dir"`

	// serve mode
	Addr           string   `mapstructure:"addr"`
	ReadAPIKeys    []string `mapstructure:"read_api_keys"`    // may list targets
	TriggerAPIKeys []string `mapstructure:"trigger_api_keys"` // may also start probe runs
	ProbeRPM       int      `mapstructure:"probe_rpm"`        // probe-trigger rate limit, req/min
	ProbeBurst     int      `mapstructure:"probe_burst"`      // burst above the sustained rate

	SlackWebhook string `mapstructure:"slack_webhook"`
}

func defaultTargetURLs() []string {
	ts := domain.DefaultTargets()
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.URL)
	}
	return out
}

// FromEnv builds a Config from environment variables with defaults that
// reproduce the built-in probe sequence.
func FromEnv() Config {
	cfg := Config{
		Targets:      defaultTargetURLs(),
		Timeout:      domain.DefaultTimeout,
		PreviewLimit: domain.DefaultBodyPreviewLimit,
		LogDir:       "logs",
		Addr:         "127.0.0.1:8080",
		ProbeRPM:     30,
		ProbeBurst:   5,
	}

	if v := os.Getenv("PROBE_TARGETS"); v != "" {
		cfg.Targets = splitList(v)
	}
	if v := os.Getenv("PROBE_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.Timeout = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("BODY_PREVIEW_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PreviewLimit = n
		}
	}
	if v := os.Getenv("DNS_DIAGNOSTICS"); v == "1" || strings.EqualFold(v, "true") {
		cfg.DiagnoseDNS = true
	}
	if v := os.Getenv("LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	cfg.ReadAPIKeys = splitList(os.Getenv("READ_API_KEYS"))
	cfg.TriggerAPIKeys = splitList(os.Getenv("TRIGGER_API_KEYS"))
	if v := os.Getenv("PROBE_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ProbeRPM = n
		}
	}
	if v := os.Getenv("PROBE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ProbeBurst = n
		}
	}
	cfg.SlackWebhook = os.Getenv("SLACK_WEBHOOK")

	return cfg
}

// Load reads and parses the YAML file at path using Viper. It returns
// the parsed Config and the Viper instance (needed for Watch).
func Load(path string) (Config, *viper.Viper, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, nil, fmt.Errorf("config: reading %q: %w", path, err)
	}
	cfg, err := unmarshal(v)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, v, nil
}

// Watch registers an onChange callback that fires whenever the config
// file is saved. Invalid reloads are logged and skipped; the previous
// config stays active.
func Watch(v *viper.Viper, logger *zap.Logger, onChange func(Config)) {
	if logger == nil {
		logger = zap.NewNop()
	}
	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshal(v)
		if err != nil {
			logger.Warn("config_reload_failed", zap.Error(err))
			return
		}
		logger.Info("config_reloaded", zap.Int("targets", len(cfg.Targets)))
		onChange(cfg)
	})
}

// TargetList converts the configured URLs into domain targets,
// preserving order.
func (c Config) TargetList() []domain.Target {
	out := make([]domain.Target, 0, len(c.Targets))
	now := time.Now().UTC()
	for _, u := range c.Targets {
		out = append(out, domain.Target{URL: u, CreatedAt: now})
	}
	return out
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("targets", defaultTargetURLs())
	v.SetDefault("timeout", "5s")
	v.SetDefault("preview_limit", domain.DefaultBodyPreviewLimit)
	v.SetDefault("diagnose_dns", false)
	v.SetDefault("log_dir", "logs")
	v.SetDefault("addr", "127.0.0.1:8080")
	v.SetDefault("probe_rpm", 30)
	v.SetDefault("probe_burst", 5)

	return v
}

func unmarshal(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing: %w", err)
	}
	if len(cfg.Targets) == 0 {
		return Config{}, fmt.Errorf("config: at least one target must be defined")
	}
	for i, t := range cfg.Targets {
		if strings.TrimSpace(t) == "" {
			return Config{}, fmt.Errorf("config: target[%d] is empty", i)
		}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultTimeout
	}
	if cfg.PreviewLimit <= 0 {
		cfg.PreviewLimit = domain.DefaultBodyPreviewLimit
	}
	return cfg, nil
}

func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
