package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"luastrack.ie/internal/app"
	"luastrack.ie/internal/appconf"
	"luastrack.ie/internal/logging"
	"luastrack.ie/internal/luas"
	"luastrack.ie/internal/restapi"
	"luastrack.ie/internal/tracker"
	"luastrack.ie/luasdb"
)

// shutdownGracePeriod bounds how long an in-flight poll, detection cycle, or
// HTTP request may run after a shutdown signal.
const shutdownGracePeriod = 10 * time.Second

func main() {
	var cfg appconf.Config
	var envFlag, configPath string
	var pollSeconds, detectSeconds int

	flag.IntVar(&cfg.Port, "port", 4000, "API server port")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	flag.StringVar(&cfg.StopCode, "stop", "cab", "Luas stop code to track")
	flag.StringVar(&cfg.FeedURL, "feed-url", luas.DefaultFeedURL, "Luas forecast feed URL")
	flag.StringVar(&cfg.DBPath, "db-path", "luastrack.db", "Path to SQLite database file")
	flag.IntVar(&pollSeconds, "poll-interval", 30, "Forecast poll interval in seconds")
	flag.IntVar(&detectSeconds, "detect-interval", 60, "Accuracy detection interval in seconds")
	flag.StringVar(&configPath, "config", "", "Optional YAML config file")
	flag.Parse()

	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)
	cfg.PollInterval = time.Duration(pollSeconds) * time.Second
	cfg.DetectInterval = time.Duration(detectSeconds) * time.Second

	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)
	slog.SetDefault(logger)

	if configPath != "" {
		fileCfg, err := appconf.LoadFile(configPath)
		if err != nil {
			logger.Error("failed to load config file", "error", err, "path", configPath)
			os.Exit(1)
		}
		fileCfg.Apply(&cfg)
	}

	db, err := luasdb.NewClient(luasdb.NewConfig(cfg.DBPath, cfg.Env, false), logger)
	if err != nil {
		logger.Error("failed to open database", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer logging.SafeCloseWithLogging(db, logger, "database")

	manager := tracker.NewManager(tracker.Config{
		StopCode:       cfg.StopCode,
		PollInterval:   cfg.PollInterval,
		DetectInterval: cfg.DetectInterval,
	}, luas.NewClient(cfg.FeedURL), db, logger)
	manager.Start()

	application := &app.Application{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Tracker: manager,
	}

	router := httprouter.New()
	restapi.NewRestAPI(application).SetRoutes(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		logger.Info("shutting down", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()

		manager.Shutdown()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logger.Info("starting server",
		"addr", srv.Addr,
		"env", cfg.Env.String(),
		"stop", cfg.StopCode)

	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		logger.Error(err.Error())
		os.Exit(1)
	}

	if err := <-shutdownErr; err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("stopped server")
}
