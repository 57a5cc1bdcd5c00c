package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"waitlist/cmd/command"
	_ "waitlist/docs"
	"waitlist/internal/config"
)

// @title			Waitlist queue engine
// @version		1.0
// @description	Per-business waitlists with realtime updates and push notifications
// @BasePath		/
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logrus.New()

	if err := config.LoadEnvFile(); err != nil {
		logger.WithError(err).Warn("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithContext(ctx).Fatal(err)
	}
	configureLogger(logger, cfg)

	const description = "Waitlist queue engine"
	root := &cobra.Command{Short: description}
	root.AddCommand(
		command.Server{Logger: logger}.Command(ctx, cfg),
		command.MigrateCommand{Logger: logger}.Command(ctx, cfg),
	)

	if err := root.Execute(); err != nil {
		logger.WithContext(ctx).Errorf("failed to execute root command: \n%v", err)
		os.Exit(1)
	}
}

func configureLogger(logger *logrus.Logger, cfg *config.Config) {
	logger.SetLevel(cfg.LogLevel)
	if cfg.AppEnv == config.ProductionEnv {
		logger.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
