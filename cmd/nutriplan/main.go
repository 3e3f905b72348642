package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"nutriplan/internal/app"
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
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	corpus, err := recipe.NewFileCorpus(cfg.CorpusDir)
	if err != nil {
		log.Fatalf("Failed to initialize recipe corpus: %v", err)
	}

	// LLM-backed features are optional; without a key the planner still
	// works from stored recipes and default preferences.
	var parser *intake.Parser
	var importer *recipe.Importer
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
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
	flavorModel := flavor.NewModel(flavorLookup)

	mealPlanner, err := planner.NewPlanner(
		ctx,
		corpus,
		flavorModel,
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

	application := app.NewApp(
		cfg,
		mealPlanner,
		flavorModel,
		parser,
		importer,
		planstore.NewStore(db.SQL),
		metrics.NewStore(db.SQL),
	)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "plan":
		planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
		user := planCmd.String("user", "default_user", "User id to plan for")
		days := planCmd.Int("days", 7, "Number of days to plan")
		request := planCmd.String("request", "", "Free-text preferences (e.g. \"5 days, no salmon\")")
		planCmd.Parse(os.Args[2:])

		if err := application.GeneratePlan(ctx, *user, *request, *days); err != nil {
			log.Fatalf("Plan generation failed: %v", err)
		}
	case "show":
		showCmd := flag.NewFlagSet("show", flag.ExitOnError)
		user := showCmd.String("user", "default_user", "User id")
		showCmd.Parse(os.Args[2:])

		if err := application.ShowPlan(ctx, *user); err != nil {
			log.Fatalf("Failed to show plan: %v", err)
		}
	case "import":
		if len(os.Args) < 3 {
			fmt.Println("Usage: nutriplan import <url>")
			os.Exit(1)
		}
		if err := application.ImportRecipe(ctx, os.Args[2]); err != nil {
			log.Fatalf("Import failed: %v", err)
		}
	case "pair":
		if len(os.Args) < 4 {
			fmt.Println("Usage: nutriplan pair <ingredient1> <ingredient2>")
			os.Exit(1)
		}
		if err := application.AnalyzePairing(ctx, os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("Pairing analysis failed: %v", err)
		}
	case "metrics":
		metricsCmd := flag.NewFlagSet("metrics", flag.ExitOnError)
		days := metricsCmd.Int("days", 7, "Show runs from the last N days")
		metricsCmd.Parse(os.Args[2:])

		if err := application.ShowMetrics(ctx, *days); err != nil {
			log.Fatalf("Failed to show metrics: %v", err)
		}
	case "cleanup":
		if err := application.Cleanup(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: nutriplan <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan       Generate a meal plan (-user, -days, -request)")
	fmt.Println("  show       Show the current stored plan (-user)")
	fmt.Println("  import     Import a recipe from a URL into the corpus")
	fmt.Println("  pair       Analyze the flavor compatibility of two ingredients")
	fmt.Println("  metrics    Show plan-run stats (-days)")
	fmt.Println("  cleanup    Remove expired plans and old run records")
}
