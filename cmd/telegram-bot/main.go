package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutriplan/internal/config"
	"nutriplan/internal/database"
	"nutriplan/internal/flavor"
	"nutriplan/internal/intake"
	"nutriplan/internal/llm"
	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
	"nutriplan/internal/planstore"
	"nutriplan/internal/recipe"
	"nutriplan/internal/sustainability"
	"nutriplan/internal/telegram"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TelegramBotToken == "" || cfg.TelegramWebhookURL == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN and TELEGRAM_WEBHOOK_URL must be set")
	}

	ctx := context.Background()

	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	corpus, err := recipe.NewFileCorpus(cfg.CorpusDir)
	if err != nil {
		log.Fatalf("Failed to initialize recipe corpus: %v", err)
	}

	var parser *intake.Parser
	var importer *recipe.Importer
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		defer geminiClient.Close()
		parser = intake.NewParser(geminiClient)
		importer = recipe.NewImporter(geminiClient, corpus)
	} else {
		log.Println("GEMINI_API_KEY not set; request parsing and recipe import disabled.")
	}

	var flavorLookup flavor.Lookup = flavor.NewStaticLookup()
	if cfg.FlavorDBURL != "" {
		flavorLookup = flavor.NewRemoteLookup(cfg.FlavorDBURL, cfg.FlavorDBAdminKey)
	}

	mealPlanner, err := planner.NewPlanner(
		ctx,
		corpus,
		flavor.NewModel(flavorLookup),
		sustainability.NewEstimator(sustainability.NewStaticLookup()),
		planner.Config{
			SlotVariant:    cfg.SlotVariant,
			HealthWeight:   cfg.HealthWeight,
			TasteWeight:    cfg.TasteWeight,
			VarietyWeight:  cfg.VarietyWeight,
			NoRepeatWindow: cfg.NoRepeatWindow,
			RepeatLookback: cfg.RepeatLookback,
		},
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)
	if err != nil {
		log.Fatalf("Failed to initialize planner: %v", err)
	}

	bot, err := telegram.NewBot(
		cfg,
		mealPlanner,
		parser,
		importer,
		planstore.NewStore(db.SQL),
		metrics.NewStore(db.SQL),
	)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
