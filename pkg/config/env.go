package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by ApplyEnvironmentOverrides
const (
	EnvWorldWidth   = "GWARS_WORLD_WIDTH"
	EnvWorldHeight  = "GWARS_WORLD_HEIGHT"
	EnvSubStepMs    = "GWARS_SUBSTEP_MS"
	EnvGravity      = "GWARS_GRAVITY"
	EnvWavesEnabled = "GWARS_WAVES_ENABLED"
	EnvWaveScript   = "GWARS_WAVE_SCRIPT"
	EnvEnemyCatalog = "GWARS_ENEMY_CATALOG"
	EnvAudioEnabled = "GWARS_AUDIO_ENABLED"
)

// ApplyEnvironmentOverrides replaces config values with any GWARS_*
// environment variables that are set.
func ApplyEnvironmentOverrides(config *GameConfig) error {
	floats := []struct {
		key    string
		target *float32
	}{
		{EnvWorldWidth, &config.World.Width},
		{EnvWorldHeight, &config.World.Height},
		{EnvSubStepMs, &config.Physics.SubStepMs},
		{EnvGravity, &config.Physics.Gravity},
	}
	for _, f := range floats {
		if err := overrideFloat(f.key, f.target); err != nil {
			return err
		}
	}

	if err := overrideBool(EnvWavesEnabled, &config.Waves.Enabled); err != nil {
		return err
	}
	if err := overrideBool(EnvAudioEnabled, &config.Audio.Enabled); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvWaveScript); ok {
		config.Waves.ScriptPath = v
	}
	if v, ok := os.LookupEnv(EnvEnemyCatalog); ok {
		config.Enemies.CatalogPath = v
	}
	return nil
}

func overrideFloat(key string, target *float32) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = float32(f)
	return nil
}

func overrideBool(key string, target *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = b
	return nil
}

// LoadConfigFromEnv returns the default configuration with environment
// overrides applied and validated.
func LoadConfigFromEnv() (*GameConfig, error) {
	config := DefaultConfig()
	if err := ApplyEnvironmentOverrides(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
