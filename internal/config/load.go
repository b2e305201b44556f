package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// envPrefix is the environment variable prefix for every setting.
const envPrefix = "CLAUSERISK"

// newViper builds a Viper instance reading YAML, with CLAUSERISK_*
// environment overrides. Nested keys map "." to "_", so
// "severity.high" resolves to CLAUSERISK_SEVERITY_HIGH.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// registerScalarDefaults makes the scalar settings known to Viper so
// that environment overrides apply even when the file omits them.
func registerScalarDefaults(v *viper.Viper, d *RiskConfig) {
	v.SetDefault("workers", d.Workers)
	v.SetDefault("severity.high", d.Severity.High)
	v.SetDefault("severity.medium", d.Severity.Medium)
	v.SetDefault("exposure.critical_above", d.Exposure.CriticalAbove)
	v.SetDefault("exposure.medium_above", d.Exposure.MediumAbove)
	v.SetDefault("exposure.critical_multiplier", d.Exposure.CriticalMultiplier)
	v.SetDefault("exposure.high_multiplier", d.Exposure.HighMultiplier)
	v.SetDefault("exposure.medium_multiplier", d.Exposure.MediumMultiplier)
	v.SetDefault("exposure.low_multiplier", d.Exposure.LowMultiplier)
	v.SetDefault("mapping.override_below", d.Mapping.OverrideBelow)
	v.SetDefault("mapping.min_keyword_hits", d.Mapping.MinKeywordHits)
	v.SetDefault("mitigation.max_critical_actions", d.Mitigation.MaxCriticalActions)
	v.SetDefault("mitigation.max_high_actions", d.Mitigation.MaxHighActions)
	v.SetDefault("mitigation.effort_low_max", d.Mitigation.EffortLowMax)
	v.SetDefault("mitigation.effort_medium_max", d.Mitigation.EffortMediumMax)
	v.SetDefault("mitigation.effort_high_max", d.Mitigation.EffortHighMax)
}

// Load builds the effective configuration: built-in defaults, then the
// YAML file at path (skipped when path is empty), then CLAUSERISK_*
// environment variables, including any from a .env file in the working
// directory. The result is validated before it is returned.
//
// A category block present in the file replaces that category's
// defaults as a whole.
func Load(path string) (*RiskConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := DefaultConfig()
	v := newViper()
	registerScalarDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %q: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteYAML renders the configuration as YAML.
func (c *RiskConfig) WriteYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
