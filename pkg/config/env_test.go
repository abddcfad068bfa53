package config

import "testing"

func TestApplyEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvWorldWidth, "1000")
	t.Setenv(EnvWorldHeight, "700.5")
	t.Setenv(EnvSubStepMs, "4")
	t.Setenv(EnvGravity, "0.40875")
	t.Setenv(EnvWavesEnabled, "false")
	t.Setenv(EnvWaveScript, "scripts/waves.lua")
	t.Setenv(EnvEnemyCatalog, "data/enemies.yaml")
	t.Setenv(EnvAudioEnabled, "0")

	config := DefaultConfig()
	if err := ApplyEnvironmentOverrides(config); err != nil {
		t.Fatalf("ApplyEnvironmentOverrides() error = %v", err)
	}

	if config.World.Width != 1000 || config.World.Height != 700.5 {
		t.Errorf("world = %vx%v", config.World.Width, config.World.Height)
	}
	if config.Physics.SubStepMs != 4 || config.Physics.Gravity != 0.40875 {
		t.Errorf("physics = %+v", config.Physics)
	}
	if config.Waves.Enabled || config.Audio.Enabled {
		t.Error("Expected waves and audio disabled")
	}
	if config.Waves.ScriptPath != "scripts/waves.lua" || config.Enemies.CatalogPath != "data/enemies.yaml" {
		t.Errorf("paths = %q, %q", config.Waves.ScriptPath, config.Enemies.CatalogPath)
	}
}

func TestApplyEnvironmentOverrides_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{EnvWorldWidth, "wide"},
		{EnvSubStepMs, ""},
		{EnvWavesEnabled, "maybe"},
		{EnvAudioEnabled, "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if err := ApplyEnvironmentOverrides(DefaultConfig()); err == nil {
				t.Errorf("Expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config, err := LoadConfigFromEnv()
		if err != nil {
			t.Fatalf("LoadConfigFromEnv() error = %v", err)
		}
		if config.World.Width != DefaultConfig().World.Width {
			t.Errorf("Expected default width, got %v", config.World.Width)
		}
	})

	t.Run("invalid_after_override", func(t *testing.T) {
		t.Setenv(EnvWorldWidth, "-5")
		if _, err := LoadConfigFromEnv(); err == nil {
			t.Error("Expected validation error")
		}
	})
}
