package main

import (
	"testing"

	"github.com/bastiangx/spaceserve/pkg/config"
)

// configured hyperparameters must survive when no overriding flag is set
func TestEffectiveSettingsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Restore.MaxWordLen = 15
	cfg.Restore.Lambda = 5.0
	cfg.Restore.IgnoreCase = false

	// flag values are the built-in defaults, none explicitly set
	params, fold := effectiveSettings(cfg, map[string]bool{}, 20, 10.0, true)
	if params.MaxWordLen != 15 || params.Lambda != 5.0 {
		t.Errorf("Expected configured (15, 5.0), got (%d, %g)", params.MaxWordLen, params.Lambda)
	}
	if fold {
		t.Error("Expected configured ignore_case=false to hold")
	}
}

func TestEffectiveSettingsFlagOverride(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Restore.Lambda = 5.0

	set := map[string]bool{"lambda": true}
	params, _ := effectiveSettings(cfg, set, 20, 2.5, true)
	if params.Lambda != 2.5 {
		t.Errorf("Expected set flag lambda 2.5 to win, got %g", params.Lambda)
	}
	if params.MaxWordLen != cfg.Restore.MaxWordLen {
		t.Errorf("Expected unset flag to keep configured L=%d, got %d",
			cfg.Restore.MaxWordLen, params.MaxWordLen)
	}
}
