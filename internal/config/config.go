package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
)

// Defaults for optional settings.
const (
	DefaultDBPath         = "data/nutriplan.db"
	DefaultCorpusDir      = "data/recipes"
	DefaultSlotVariant    = "standard"
	DefaultHealthWeight   = 0.4
	DefaultTasteWeight    = 0.4
	DefaultVarietyWeight  = 0.2
	DefaultNoRepeatWindow = 7
	DefaultRepeatLookback = 9
	DefaultPlanTTLDays    = 7
)

// Config holds the configuration for the application.
type Config struct {
	DBPath    string
	CorpusDir string

	// Planner tuning
	SlotVariant    string
	HealthWeight   float64
	TasteWeight    float64
	VarietyWeight  float64
	NoRepeatWindow int
	RepeatLookback int
	PlanTTLDays    int

	// Collaborator services (optional; static fallbacks apply)
	FlavorDBURL      string
	FlavorDBAdminKey string
	GeminiAPIKey     string

	// Telegram Config
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowUserID int64

	// Default profile for CLI runs without an explicit user
	UserName          string
	UserAge           int
	UserWeightKg      float64
	UserHeightCm      float64
	UserGender        string
	UserActivityLevel float64
	UserGoal          string
}

// NewFromEnv creates a new Config object from environment variables and
// validates the startup invariants.
func NewFromEnv() (*Config, error) {
	cfg := &Config{
		DBPath:           envOr("NUTRIPLAN_DB_PATH", DefaultDBPath),
		CorpusDir:        envOr("NUTRIPLAN_CORPUS_DIR", DefaultCorpusDir),
		SlotVariant:      envOr("MEAL_SLOTS", DefaultSlotVariant),
		FlavorDBURL:      os.Getenv("FLAVORDB_API_URL"),
		FlavorDBAdminKey: os.Getenv("FLAVORDB_ADMIN_API_KEY"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
	}

	var err error
	if cfg.HealthWeight, err = envFloat("SCORE_WEIGHT_HEALTH", DefaultHealthWeight); err != nil {
		return nil, err
	}
	if cfg.TasteWeight, err = envFloat("SCORE_WEIGHT_TASTE", DefaultTasteWeight); err != nil {
		return nil, err
	}
	if cfg.VarietyWeight, err = envFloat("SCORE_WEIGHT_VARIETY", DefaultVarietyWeight); err != nil {
		return nil, err
	}
	if cfg.NoRepeatWindow, err = envInt("NO_REPEAT_WINDOW", DefaultNoRepeatWindow); err != nil {
		return nil, err
	}
	if cfg.RepeatLookback, err = envInt("REPEAT_LOOKBACK", DefaultRepeatLookback); err != nil {
		return nil, err
	}
	if cfg.PlanTTLDays, err = envInt("PLAN_TTL_DAYS", DefaultPlanTTLDays); err != nil {
		return nil, err
	}

	cfg.UserName = envOr("USER_NAME", "default")
	cfg.UserGender = envOr("USER_GENDER", "other")
	cfg.UserGoal = envOr("USER_GOAL", "maintenance")
	if cfg.UserAge, err = envInt("USER_AGE", 30); err != nil {
		return nil, err
	}
	if cfg.UserWeightKg, err = envFloat("USER_WEIGHT_KG", 70); err != nil {
		return nil, err
	}
	if cfg.UserHeightCm, err = envFloat("USER_HEIGHT_CM", 170); err != nil {
		return nil, err
	}
	if cfg.UserActivityLevel, err = envFloat("USER_ACTIVITY_LEVEL", 1.4); err != nil {
		return nil, err
	}

	// Telegram Config (Optional for CLI, required for Bot)
	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramWebhookURL = os.Getenv("TELEGRAM_WEBHOOK_URL")
	if v := os.Getenv("TELEGRAM_ALLOW_USER_ID"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.TelegramAllowUserID)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces configuration invariants. Violations are startup
// errors, never per-request conditions.
func (c *Config) Validate() error {
	if c.SlotVariant != "standard" && c.SlotVariant != "extended" {
		return fmt.Errorf("MEAL_SLOTS must be \"standard\" or \"extended\", got %q", c.SlotVariant)
	}
	sum := c.HealthWeight + c.TasteWeight + c.VarietyWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring weights sum to %v, must sum to 1.0", sum)
	}
	if c.NoRepeatWindow < 1 {
		return fmt.Errorf("NO_REPEAT_WINDOW must be >= 1, got %d", c.NoRepeatWindow)
	}
	if c.RepeatLookback < 1 {
		return fmt.Errorf("REPEAT_LOOKBACK must be >= 1, got %d", c.RepeatLookback)
	}
	if c.PlanTTLDays < 1 {
		return fmt.Errorf("PLAN_TTL_DAYS must be >= 1, got %d", c.PlanTTLDays)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid float %q", key, v)
	}
	return f, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}
