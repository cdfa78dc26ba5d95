package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mattmelloy/rotation-app/internal/ai"
	"github.com/mattmelloy/rotation-app/internal/cli"
	"github.com/mattmelloy/rotation-app/internal/cloudsync"
	"github.com/mattmelloy/rotation-app/internal/config"
	"github.com/mattmelloy/rotation-app/internal/logger"
	"github.com/mattmelloy/rotation-app/internal/models"
	"github.com/mattmelloy/rotation-app/internal/remote"
	"github.com/mattmelloy/rotation-app/internal/state"
	"github.com/mattmelloy/rotation-app/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Data    string `help:"Store file path." type:"path" default:"${data_path}"`
	Debug   bool   `help:"Verbose logging to stderr."`

	Meal struct {
		Add       cli.MealAddCmd       `cmd:"" help:"Add a meal to the library."`
		Edit      cli.MealEditCmd      `cmd:"" help:"Edit a meal's fields or refile its tier."`
		List      cli.MealListCmd      `cmd:"" help:"List meals grouped by rotation tier."`
		Show      cli.MealShowCmd      `cmd:"" help:"Show a full recipe."`
		Delete    cli.MealDeleteCmd    `cmd:"" help:"Delete a meal."`
		Refine    cli.MealRefineCmd    `cmd:"" help:"Edit a recipe with an AI instruction."`
		Thermomix cli.MealThermomixCmd `cmd:"" help:"Generate a Thermomix method for a meal."`
	} `cmd:"" help:"Manage the meal library."`

	Week struct {
		Show  cli.WeekShowCmd  `cmd:"" help:"Show the week plan." default:"1"`
		Auto  cli.WeekAutoCmd  `cmd:"" help:"Auto-assign a meal to the least-full day."`
		Set   cli.WeekSetCmd   `cmd:"" help:"Assign a meal to a specific day."`
		Unset cli.WeekUnsetCmd `cmd:"" help:"Remove a meal from a day, or clear the day."`
		Clear cli.WeekClearCmd `cmd:"" help:"Clear the week, votes, and shopping list."`
	} `cmd:"" help:"Manage the week plan."`

	Vote cli.VoteCmd `cmd:"" help:"Record family votes and distribute winners across the week."`
	Shop cli.ShopCmd `cmd:"" help:"Open the shopping checklist."`

	Import struct {
		URL   cli.ImportURLCmd   `cmd:"" help:"Import a recipe from a web page."`
		Text  cli.ImportTextCmd  `cmd:"" help:"Generate a recipe from text or a dish name."`
		Image cli.ImportImageCmd `cmd:"" help:"Read a recipe from a photo."`
	} `cmd:"" help:"Import recipes with AI."`

	Account struct {
		Signup cli.AccountSignupCmd `cmd:"" help:"Create a cloud account."`
		Login  cli.AccountLoginCmd  `cmd:"" help:"Sign in to a cloud account."`
		Logout cli.AccountLogoutCmd `cmd:"" help:"Sign out. Cloud data is kept."`
		Sync   cli.AccountSyncCmd   `cmd:"" help:"Pull the latest cloud snapshot."`
		Status cli.AccountStatusCmd `cmd:"" help:"Show identity and sync state."`
	} `cmd:"" help:"Cloud account and sync."`

	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Snapshot the local store."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
	} `cmd:"" help:"Back up and restore local data."`

	Seed struct {
		Remove cli.SeedRemoveCmd `cmd:"" help:"Remove the built-in example meals."`
	} `cmd:"" help:"Manage the built-in example meals."`

	Cleanup cli.CleanupCmd `cmd:"" help:"Strip stored recipe scans to reclaim space."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run health checks."`
	Dump    cli.DebugCmd   `cmd:"" help:"Dump raw records for the active namespace."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("rotation"),
		kong.Description("Household meal planner with rotation tiers, weekly voting, and cloud sync"),
		kong.UsageOnError(),
		kong.Vars{
			"version":   "v0.3.0",
			"data_path": config.DefaultDataPath(),
		},
	)

	cfg, err := config.NewFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(CLI.Data), 0700); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(CLI.Data)}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Data, ".json") {
		store = storage.NewJSONStore(CLI.Data)
	} else {
		store = storage.NewSQLiteStore(CLI.Data)
	}
	if err := store.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	warn := func(msg string) { fmt.Fprintln(os.Stderr, msg) }
	manager := state.NewManager(store, warn)

	appCtx := &cli.Context{
		Manager:  manager,
		Store:    store,
		Config:   cfg,
		DataPath: CLI.Data,
	}

	if cfg.AIEnabled() {
		svc, err := ai.NewGemini(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: AI unavailable: %v\n", err)
		} else {
			defer svc.Close()
			appCtx.AI = svc
		}
	}

	if cfg.RemoteEnabled() {
		client := remote.NewHTTPClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		coord := cloudsync.NewCoordinator(client, manager, remote.NewSessionStore(), warn)
		appCtx.Sync = coord

		// Resume a stored session if there is one; otherwise run as guest.
		if err := coord.Start(context.Background()); err != nil {
			if !errors.Is(err, remote.ErrNoSession) {
				fmt.Fprintf(os.Stderr, "Warning: could not resume session: %v\n", err)
			}
			if err := coord.StartGuest(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
	} else {
		if err := appCtx.Manager.SetIdentity(models.Guest()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
