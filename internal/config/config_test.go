package config

import (
	"testing"
)

func TestNewFromEnvDefaults(t *testing.T) {
	cfg, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv failed: %v", err)
	}

	if cfg.SlotVariant != "standard" {
		t.Errorf("slot variant = %q, want standard", cfg.SlotVariant)
	}
	if cfg.HealthWeight != 0.4 || cfg.TasteWeight != 0.4 || cfg.VarietyWeight != 0.2 {
		t.Errorf("weights = %v/%v/%v, want 0.4/0.4/0.2", cfg.HealthWeight, cfg.TasteWeight, cfg.VarietyWeight)
	}
	if cfg.NoRepeatWindow != 7 {
		t.Errorf("no-repeat window = %d, want 7", cfg.NoRepeatWindow)
	}
	if cfg.PlanTTLDays != 7 {
		t.Errorf("plan ttl = %d, want 7", cfg.PlanTTLDays)
	}
}

func TestNewFromEnvOverrides(t *testing.T) {
	t.Setenv("MEAL_SLOTS", "extended")
	t.Setenv("SCORE_WEIGHT_HEALTH", "0.5")
	t.Setenv("SCORE_WEIGHT_TASTE", "0.5")
	t.Setenv("SCORE_WEIGHT_VARIETY", "0.0")
	t.Setenv("REPEAT_LOOKBACK", "3")

	cfg, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv failed: %v", err)
	}
	if cfg.SlotVariant != "extended" {
		t.Errorf("slot variant = %q, want extended", cfg.SlotVariant)
	}
	if cfg.HealthWeight != 0.5 || cfg.VarietyWeight != 0.0 {
		t.Errorf("weights not overridden: %+v", cfg)
	}
	if cfg.RepeatLookback != 3 {
		t.Errorf("lookback = %d, want 3", cfg.RepeatLookback)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	t.Run("weights", func(t *testing.T) {
		t.Setenv("SCORE_WEIGHT_HEALTH", "0.9")
		if _, err := NewFromEnv(); err == nil {
			t.Error("weights summing to 1.5 accepted")
		}
	})

	t.Run("slot variant", func(t *testing.T) {
		t.Setenv("MEAL_SLOTS", "brunch-only")
		if _, err := NewFromEnv(); err == nil {
			t.Error("unknown slot variant accepted")
		}
	})

	t.Run("malformed number", func(t *testing.T) {
		t.Setenv("NO_REPEAT_WINDOW", "seven")
		if _, err := NewFromEnv(); err == nil {
			t.Error("non-numeric window accepted")
		}
	})
}
