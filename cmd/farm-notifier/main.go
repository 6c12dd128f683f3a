// Package main contains the entrypoint for the farm notifier service.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smsmy/farm-notifier/internal/agenda"
	"github.com/smsmy/farm-notifier/internal/bot"
	"github.com/smsmy/farm-notifier/internal/bot/tasks"
	"github.com/smsmy/farm-notifier/internal/config"
	"github.com/smsmy/farm-notifier/internal/database"
	"github.com/smsmy/farm-notifier/internal/logger"
	"github.com/smsmy/farm-notifier/internal/messages"
	"github.com/smsmy/farm-notifier/internal/schedule"
	"github.com/smsmy/farm-notifier/internal/server"
	"github.com/smsmy/farm-notifier/internal/telegram"
	"github.com/smsmy/farm-notifier/internal/weather"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all application components (config, logger, db,
// weather, telegram, scheduler, API server), handles graceful shutdown,
// and returns an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	once := flag.Bool("once", false, "Run a single daily notification pass and exit")
	feedChanged := flag.Bool("feed-changed", false, "Record a feed change for today and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Error("Invalid scheduler timezone", "timezone", cfg.Scheduler.Timezone, "error", err)
		return 1
	}

	rules, err := cfg.Compile()
	if err != nil {
		log.Error("Invalid farm schedule configuration", "error", err)
		return 1
	}

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	if *feedChanged {
		today := schedule.DateOf(time.Now().In(loc))
		if err := store.MarkFeedChanged(ctx, today); err != nil {
			log.Error("Failed to record feed change", "error", err)
			return 1
		}
		log.Info("Feed change recorded", "date", today)
		return 0
	}

	engine := schedule.NewEngine(rules, store, log)
	builder := agenda.NewBuilder(engine, log, loc)
	weatherClient := weather.NewClient(
		cfg.Weather.APIKey, cfg.Weather.City, cfg.Weather.Country,
		cfg.Weather.BaseURL, cfg.Weather.Timeout, log)
	renderer := messages.NewRenderer("")

	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}
	notifier := telegram.NewNotifier(tg, cfg.Telegram.ChatID, cfg.Telegram.Pacing, cfg.Telegram.ImageDir, log)

	deps := tasks.Deps{
		Logger:   log,
		Config:   cfg,
		Store:    store,
		Builder:  builder,
		Weather:  weatherClient,
		Renderer: renderer,
		Notifier: notifier,
		Location: loc,
	}

	if *once {
		log.Info("Running single daily notification pass...")
		if err := tasks.NewDailyNotificationsTask(deps)(ctx); err != nil {
			log.Error("Daily notification pass failed", "error", err)
			return 1
		}
		return 0
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, loc, tasks.RegisterAllTasks(deps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	var apiServer *server.Server
	if cfg.Server.Enabled {
		apiServer = server.New(cfg.Server.ListenAddr, builder, weatherClient, store, log, server.Options{
			Location:    loc,
			DefaultDays: cfg.Server.HorizonDays,
		})
	}

	app := bot.NewBot(log, sched, apiServer)

	log.Info("Starting farm notifier...")
	runErr := app.Run(ctx)
	log.Info("Run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
