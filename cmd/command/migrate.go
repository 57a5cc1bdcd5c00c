package command

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"waitlist/internal/config"
	"waitlist/internal/storage"
)

type MigrateCommand struct {
	Logger *log.Logger
}

func (cmd MigrateCommand) Command(ctx context.Context, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "create or update the documents table in postgres",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.main(cfg, ctx)
		},
	}
}

func (cmd MigrateCommand) main(cfg *config.Config, ctx context.Context) {
	db, err := storage.ConnectDatabase(cfg.Store.Postgres, cmd.Logger)
	if err != nil {
		cmd.Logger.WithContext(ctx).Fatal(errors.Wrap(err, "migrate : failed to connect to postgresql"))
		return
	}

	if err := storage.Migrate(db); err != nil {
		cmd.Logger.WithContext(ctx).Fatal(err)
		return
	}
	cmd.Logger.Info("migration finished")
}
