package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamed0406/endpointprobe/internal/config"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{
		"PROBE_TARGETS", "PROBE_TIMEOUT_MS", "BODY_PREVIEW_LIMIT",
		"DNS_DIAGNOSTICS", "LOG_DIR", "ADDR", "SLACK_WEBHOOK",
	} {
		os.Unsetenv(k)
	}
	cfg := config.FromEnv()

	require.Len(t, cfg.Targets, 5)
	assert.Equal(t, "http://localhost:3000", cfg.Targets[0])
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 200, cfg.PreviewLimit)
	assert.False(t, cfg.DiagnoseDNS)
	assert.Equal(t, "logs", cfg.LogDir)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PROBE_TARGETS", "http://a:1, http://b:2/ping")
	t.Setenv("PROBE_TIMEOUT_MS", "1234")
	t.Setenv("BODY_PREVIEW_LIMIT", "50")
	t.Setenv("DNS_DIAGNOSTICS", "true")
	t.Setenv("ADDR", ":9090")
	t.Setenv("TRIGGER_API_KEYS", "trig_x")
	t.Setenv("READ_API_KEYS", "read_a,read_b")
	t.Setenv("PROBE_RPM", "10")
	t.Setenv("PROBE_BURST", "3")

	cfg := config.FromEnv()

	require.Equal(t, []string{"http://a:1", "http://b:2/ping"}, cfg.Targets)
	assert.Equal(t, 1234*time.Millisecond, cfg.Timeout)
	assert.Equal(t, 50, cfg.PreviewLimit)
	assert.True(t, cfg.DiagnoseDNS)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, []string{"trig_x"}, cfg.TriggerAPIKeys)
	require.Len(t, cfg.ReadAPIKeys, 2)
	assert.Equal(t, 10, cfg.ProbeRPM)
	assert.Equal(t, 3, cfg.ProbeBurst)
}

func TestLoad_ValidYAML(t *testing.T) {
	yaml := `
targets:
  - "http://svc-a:8000/healthz"
  - "http://svc-b:8001/ping"
timeout: "2s"
preview_limit: 100
diagnose_dns: true
addr: ":9091"
probe_rpm: 12
`
	f := writeTempYAML(t, yaml)
	cfg, v, err := config.Load(f)
	require.NoError(t, err)
	require.NotNil(t, v)

	require.Len(t, cfg.Targets, 2)
	assert.Equal(t, "http://svc-a:8000/healthz", cfg.Targets[0])
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, 100, cfg.PreviewLimit)
	assert.True(t, cfg.DiagnoseDNS)
	assert.Equal(t, ":9091", cfg.Addr)
	assert.Equal(t, 12, cfg.ProbeRPM)
}

func TestLoad_MissingFile_ReturnsError(t *testing.T) {
	_, _, err := config.Load("/nonexistent/path/probe.yaml")
	assert.Error(t, err)
}

func TestLoad_EmptyTargets_ReturnsError(t *testing.T) {
	yaml := `
targets: []
`
	f := writeTempYAML(t, yaml)
	_, _, err := config.Load(f)
	assert.Error(t, err, "a config with no targets should be rejected")
}

func TestLoad_BlankTarget_ReturnsError(t *testing.T) {
	yaml := `
targets:
  - "http://ok:1"
  - "   "
`
	f := writeTempYAML(t, yaml)
	_, _, err := config.Load(f)
	assert.Error(t, err)
}

func TestTargetList_PreservesOrder(t *testing.T) {
	cfg := config.Config{Targets: []string{"http://a", "http://b", "http://c"}}
	ts := cfg.TargetList()
	require.Len(t, ts, 3)
	assert.Equal(t, "http://a", ts[0].URL)
	assert.Equal(t, "http://c", ts[2].URL)
}

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "probe-*.yaml")
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}
