package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"nutriplan/internal/config"
	"nutriplan/internal/intake"
	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
	"nutriplan/internal/planstore"
	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
)

// Bot wraps the Telegram API around the planner, importer, and stores.
type Bot struct {
	api          *tgbotapi.BotAPI
	cfg          *config.Config
	mealPlanner  *planner.Planner
	parser       *intake.Parser
	importer     *recipe.Importer
	planStore    *planstore.Store
	metricsStore *metrics.Store
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(
	cfg *config.Config,
	mealPlanner *planner.Planner,
	parser *intake.Parser,
	importer *recipe.Importer,
	planStore *planstore.Store,
	metricsStore *metrics.Store,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          api,
		cfg:          cfg,
		mealPlanner:  mealPlanner,
		parser:       parser,
		importer:     importer,
		planStore:    planStore,
		metricsStore: metricsStore,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	if b.cfg.TelegramAllowUserID != 0 && update.Message.From.ID != b.cfg.TelegramAllowUserID {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	switch {
	case msg.Text == "/metrics":
		b.handleMetricsCommand(msg.Chat.ID)
	case msg.Text == "/show":
		b.handleShowCommand(msg)
	case msg.Text == "/shopping":
		b.handleShoppingCommand(msg)
	case strings.HasPrefix(msg.Text, "http://"), strings.HasPrefix(msg.Text, "https://"):
		b.handleImportRequest(msg)
	default:
		b.handlePlanRequest(msg)
	}
}

func (b *Bot) handleImportRequest(msg *tgbotapi.Message) {
	if b.importer == nil {
		b.send(msg.Chat.ID, "❌ Recipe import is not configured on this deployment.")
		return
	}

	sentMsg, err := b.sendAndReturn(msg.Chat.ID, "✂️ *Importing recipe...*")
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	rec, err := b.importer.ImportURL(ctx, msg.Text)
	var finalText string
	if err != nil {
		log.Printf("Error importing recipe: %v", err)
		finalText = fmt.Sprintf("❌ *Error importing recipe:*\n```\n%v\n```", sanitize(err.Error()))
	} else {
		finalText = fmt.Sprintf("✅ *Recipe Saved!*\n\n*Name:* %s\n*Calories:* %d kcal\n*Ingredients:* %d",
			rec.Name, rec.Calories, len(rec.Ingredients))
	}
	b.edit(msg.Chat.ID, sentMsg.MessageID, finalText)
}

func (b *Bot) handlePlanRequest(msg *tgbotapi.Message) {
	sentMsg, err := b.sendAndReturn(msg.Chat.ID, "🧑‍🍳 *Thinking...* \n(Scoring recipes and generating your plan)")
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx := context.Background()
	userID := fmt.Sprintf("%d", msg.From.ID)
	log.Printf("Generating plan for request: %s", msg.Text)

	user := profile.UserProfile{
		Name:          msg.From.UserName,
		Age:           b.cfg.UserAge,
		WeightKg:      b.cfg.UserWeightKg,
		HeightCm:      b.cfg.UserHeightCm,
		Gender:        profile.Gender(b.cfg.UserGender),
		ActivityLevel: b.cfg.UserActivityLevel,
		Goal:          profile.Goal(b.cfg.UserGoal),
	}
	days := 7

	if b.parser != nil && strings.TrimSpace(msg.Text) != "" {
		prefs, err := b.parser.Parse(ctx, msg.Text)
		if err != nil {
			log.Printf("Warning: could not parse request, planning with defaults: %v", err)
		} else {
			user.LikedIngredients = prefs.Liked
			user.DislikedIngredients = prefs.Disliked
			if prefs.Days > 0 {
				days = prefs.Days
			}
		}
	}

	start := time.Now()
	plan, err := b.mealPlanner.CreatePlan(ctx, user, days)
	if err != nil {
		log.Printf("Error generating plan: %v", err)
		b.edit(msg.Chat.ID, sentMsg.MessageID, fmt.Sprintf("❌ *Error generating plan:*\n```\n%v\n```", sanitize(err.Error())))
		return
	}

	ttl := time.Duration(b.cfg.PlanTTLDays) * 24 * time.Hour
	if err := b.planStore.Put(ctx, userID, plan, ttl); err != nil {
		log.Printf("Warning: failed to save meal plan for user %s: %v", userID, err)
	}
	if err := b.metricsStore.RecordPlan(ctx, userID, plan, time.Since(start)); err != nil {
		log.Printf("Warning: failed to record plan run: %v", err)
	}

	b.edit(msg.Chat.ID, sentMsg.MessageID, formatPlanMarkdown(plan))
	b.send(msg.Chat.ID, formatShoppingListMarkdown(plan))
}

func (b *Bot) handleShowCommand(msg *tgbotapi.Message) {
	plan, err := b.loadPlan(msg)
	if plan == nil {
		if err != nil {
			log.Printf("Error loading plan: %v", err)
		}
		return
	}
	b.send(msg.Chat.ID, formatPlanMarkdown(plan))
}

func (b *Bot) handleShoppingCommand(msg *tgbotapi.Message) {
	plan, err := b.loadPlan(msg)
	if plan == nil {
		if err != nil {
			log.Printf("Error loading plan: %v", err)
		}
		return
	}
	b.send(msg.Chat.ID, formatShoppingListMarkdown(plan))
}

func (b *Bot) loadPlan(msg *tgbotapi.Message) (*planner.PlanResponse, error) {
	userID := fmt.Sprintf("%d", msg.From.ID)
	plan, err := b.planStore.Get(context.Background(), userID)
	if errors.Is(err, planstore.ErrNotFound) {
		b.send(msg.Chat.ID, "No current meal plan. Send me a request to generate one!")
		return nil, nil
	}
	if err != nil {
		b.send(msg.Chat.ID, "❌ Error loading your plan.")
		return nil, err
	}
	return plan, nil
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	daily, err := b.metricsStore.GetDailyRuns(context.Background(), 7)
	if err != nil {
		b.send(chatID, "❌ Error fetching metrics.")
		return
	}

	health := metrics.GetSysHealth(dataDir(b.cfg))

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent Plan Runs*\n")
	if len(daily) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range daily {
		sb.WriteString(fmt.Sprintf("• *%s*: %d runs, %d days generated (avg %dms)\n", d.Date, d.Runs, d.DaysGenerated, d.AvgDurationMS))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataSize))

	b.send(chatID, sb.String())
}

func formatPlanMarkdown(plan *planner.PlanResponse) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 *Meal Plan* (%d days)\n\n", len(plan.Days)))

	for _, day := range plan.Days {
		sb.WriteString(fmt.Sprintf("*Day %d* — %d/%d kcal\n", day.Day, day.Stats.Calories, day.Stats.TargetCalories))
		for _, task := range plan.PrepTimeline[day.Day] {
			rec := day.Meals[task.Slot]
			sb.WriteString(fmt.Sprintf("%s %s: %s\n", task.Time, task.Slot, rec.Name))
		}
		sb.WriteString("\n")
	}

	stats := plan.OverallStats
	sb.WriteString(fmt.Sprintf("_Health %.2f · Taste %.2f · Variety %.2f_\n", stats.AvgHealthMatch, stats.AvgTasteMatch, stats.AvgVariety))
	sb.WriteString(fmt.Sprintf("_Carbon: %.2f kg CO2e (%s)_", stats.TotalCarbonKg, stats.SustainabilityRating))
	return sb.String()
}

func formatShoppingListMarkdown(plan *planner.PlanResponse) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n")

	var categories []string
	for cat, items := range plan.ShoppingList {
		if len(items) > 0 {
			categories = append(categories, cat)
		}
	}
	sort.Strings(categories)

	for _, cat := range categories {
		sb.WriteString(fmt.Sprintf("\n*%s*\n", cat))
		items := plan.ShoppingList[cat]
		var names []string
		for name := range items {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("• %s (%s)\n", name, items[name].Quantity))
		}
	}
	return sb.String()
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}

func (b *Bot) sendAndReturn(chatID int64, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	return b.api.Send(msg)
}

func (b *Bot) edit(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func sanitize(s string) string {
	return strings.ReplaceAll(s, "`", "'")
}

// dataDir is the directory whose disk usage the health report shows,
// derived from the configured database location.
func dataDir(cfg *config.Config) string {
	return filepath.Dir(cfg.DBPath)
}
