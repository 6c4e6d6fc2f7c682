package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const fullConfig = `port: "9090"
log_level: debug

db:
  path: test.db

auth:
  signing_key: unit-test-key
  token_ttl: 12h

sim:
  tick: 250ms

engine:
  dt_s: 1.0
  c_thermal_j_per_c: 1.0e6
  t_initial_c: 30.0
  q_base_w: 2500.0
  q_extra_default_w: 0.0
  q_max_w: 18000.0
  tau_fan_s: 10.0
`

// minimalConfig leaves every defaulted key out.
const minimalConfig = `db:
  path: test.db

auth:
  signing_key: unit-test-key

engine:
  dt_s: 1.0
  c_thermal_j_per_c: 1.0e6
  t_initial_c: 30.0
  q_base_w: 2500.0
  q_extra_default_w: 0.0
  q_max_w: 18000.0
  tau_fan_s: 10.0
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoad_FullConfig(t *testing.T) {
	dir := writeConfig(t, fullConfig)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9090" || cfg.LogLevel != "debug" || cfg.DBPath != "test.db" {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
	if cfg.SimTick != 250*time.Millisecond {
		t.Fatalf("sim tick: got %v, want 250ms", cfg.SimTick)
	}
	if cfg.SigningKey != "unit-test-key" || cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("unexpected auth config: %+v", cfg)
	}

	e := cfg.Engine
	if e.DT != 1.0 || e.CThermal != 1e6 || e.TInitial != 30.0 {
		t.Fatalf("unexpected engine params: %+v", e)
	}
	if e.QBase != 2500.0 || e.QExtraDefault != 0.0 || e.QMax != 18000.0 || e.TauFan != 10.0 {
		t.Fatalf("unexpected engine params: %+v", e)
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	dir := writeConfig(t, minimalConfig)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("port: got %q, want default %q", cfg.Port, defaultPort)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("log level: got %q, want default %q", cfg.LogLevel, defaultLogLevel)
	}
	if cfg.SimTick != defaultSimTick {
		t.Fatalf("sim tick: got %v, want default %v", cfg.SimTick, defaultSimTick)
	}
	// No TTL default here; the auth service applies its own.
	if cfg.TokenTTL != 0 {
		t.Fatalf("token ttl: got %v, want 0", cfg.TokenTTL)
	}
}

func TestLoad_MissingRequiredKey(t *testing.T) {
	// Drop one engine constant from the full file.
	contents := strings.Replace(fullConfig, "  q_max_w: 18000.0\n", "", 1)
	dir := writeConfig(t, contents)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for missing engine.q_max_w")
	}
	if !strings.Contains(err.Error(), "engine.q_max_w") {
		t.Fatalf("error should name the missing key, got: %v", err)
	}
}

func TestLoad_RejectsInvalidEngineParams(t *testing.T) {
	contents := strings.Replace(fullConfig, "dt_s: 1.0", "dt_s: 0.0", 1)
	dir := writeConfig(t, contents)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for dt_s = 0")
	}
	if !strings.Contains(err.Error(), "engine config") {
		t.Fatalf("expected engine config error, got: %v", err)
	}
}

func TestLoad_RejectsInvalidTick(t *testing.T) {
	contents := strings.Replace(fullConfig, "tick: 250ms", "tick: -1s", 1)
	dir := writeConfig(t, contents)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for negative tick")
	}
	if !strings.Contains(err.Error(), "sim.tick") {
		t.Fatalf("expected sim.tick error, got: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
