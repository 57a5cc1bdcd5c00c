package command

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"waitlist/internal/api"
	"waitlist/internal/config"
	"waitlist/internal/handlers"
	"waitlist/internal/profile"
	"waitlist/internal/push"
	"waitlist/internal/queue"
	"waitlist/internal/storage"
	"waitlist/internal/tasks"
	"waitlist/internal/ws"
)

type Server struct {
	Logger *logrus.Logger
}

func (cmd Server) Command(ctx context.Context, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "run waitlist server",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.main(cfg, ctx)
		},
	}
}

func (cmd Server) main(cfg *config.Config, ctx context.Context) {
	store, closeStore, err := storage.Open(ctx, cfg.Store, cmd.Logger)
	if err != nil {
		cmd.Logger.WithContext(ctx).Fatal(errors.Wrapf(err, "server : failed to open %s store", cfg.Store.Backend))
		return
	}
	defer func() {
		if err := closeStore(); err != nil {
			cmd.Logger.WithError(err).Error("server : failed to close store")
		}
	}()

	engine := queue.NewEngine(store, cmd.Logger, queue.WithCASAttempts(cfg.Queue.CASAttempts))

	hub := ws.NewHub(cmd.Logger)
	go hub.Run(ctx)

	dispatcher := push.NewExpoDispatcher(cfg.Push.Endpoint, nil, cmd.Logger)

	monitor := tasks.NewDelayMonitor(engine, hub, cmd.Logger)
	scheduler, err := tasks.InitScheduler(cfg.Tasks.DelayCheckSpec, monitor, cmd.Logger)
	if err != nil {
		cmd.Logger.WithContext(ctx).Fatal(errors.Wrap(err, "server : failed to start scheduler"))
		return
	}
	defer func() {
		<-scheduler.Stop().Done()
		cmd.Logger.Info("cron scheduler stopped")
	}()

	server := api.New(cfg.AppEnv, cmd.Logger)
	server.SetupAPIRoutes(
		handlers.NewQueueHandler(engine, hub, dispatcher, cmd.Logger),
		handlers.NewProfileHandler(profile.NewService(store, cmd.Logger), cmd.Logger),
		handlers.NewPushHandler(dispatcher),
		hub,
	)

	if err := server.Serve(ctx, fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
		cmd.Logger.WithError(err).Error("server : stopped with error")
	}
}
