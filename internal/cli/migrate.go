package cli

import (
	"github.com/spf13/cobra"

	"github.com/deppfellow/expense-tracker/internal/config"
	"github.com/deppfellow/expense-tracker/internal/database"
	"github.com/deppfellow/expense-tracker/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			log := logger.NewLoggerWithService(cfg.Observability, nil)
			return database.Migrate(cmd.Context(), &log, cfg)
		},
	}
}
