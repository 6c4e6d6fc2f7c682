package config

import (
	"fmt"
	"time"

	"hvacsim/internal/sim"

	"github.com/spf13/viper"
)

// Config is everything main needs to assemble the application.
type Config struct {
	Port     string
	LogLevel string
	DBPath   string
	SimTick  time.Duration

	SigningKey string
	TokenTTL   time.Duration

	Engine sim.Params
}

// Keys every deployment must provide. The physical constants have no
// universal defaults: a missing key fails the load instead of silently
// simulating the wrong plant.
var requiredKeys = []string{
	"db.path",
	"auth.signing_key",
	"engine.dt_s",
	"engine.c_thermal_j_per_c",
	"engine.t_initial_c",
	"engine.q_base_w",
	"engine.q_extra_default_w",
	"engine.q_max_w",
	"engine.tau_fan_s",
}

const (
	defaultPort     = "8080"
	defaultLogLevel = "info"
	defaultSimTick  = 1 * time.Second
)

// Load reads <dir>/config.yml and assembles a validated Config.
func Load(dir string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return parse(v)
}

func parse(v *viper.Viper) (Config, error) {
	for _, key := range requiredKeys {
		if !v.IsSet(key) {
			return Config{}, fmt.Errorf("config key %q is required", key)
		}
	}

	v.SetDefault("port", defaultPort)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("sim.tick", defaultSimTick)

	cfg := Config{
		Port:       v.GetString("port"),
		LogLevel:   v.GetString("log_level"),
		DBPath:     v.GetString("db.path"),
		SimTick:    v.GetDuration("sim.tick"),
		SigningKey: v.GetString("auth.signing_key"),
		TokenTTL:   v.GetDuration("auth.token_ttl"),
		Engine: sim.Params{
			DT:            v.GetFloat64("engine.dt_s"),
			CThermal:      v.GetFloat64("engine.c_thermal_j_per_c"),
			TInitial:      v.GetFloat64("engine.t_initial_c"),
			QBase:         v.GetFloat64("engine.q_base_w"),
			QExtraDefault: v.GetFloat64("engine.q_extra_default_w"),
			QMax:          v.GetFloat64("engine.q_max_w"),
			TauFan:        v.GetFloat64("engine.tau_fan_s"),
		},
	}

	if err := cfg.Engine.Validate(); err != nil {
		return Config{}, fmt.Errorf("engine config: %w", err)
	}
	if cfg.SimTick <= 0 {
		return Config{}, fmt.Errorf("sim.tick must be positive, got %v", cfg.SimTick)
	}
	return cfg, nil
}
