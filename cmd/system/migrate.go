package system

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/glycare/cmd/cmdutil"
	"github.com/Alijeyrad/glycare/config"
	"github.com/Alijeyrad/glycare/internal/store"
	"github.com/Alijeyrad/glycare/pkg/database"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the record tables in the configured SQL store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.ReadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), serverTimeout(cfg))
			defer cancel()

			db, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Printf("Running migrations for %s store.\n", cfg.Store.Driver)
			if err := store.Migrate(ctx, db, slog.Default()); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			fmt.Println("Migrations executed successfully.")
			return nil
		},
	}

	return cmd
}

// openStore connects to the SQL store. The in-memory driver has nothing to
// migrate or seed, so it is rejected.
func openStore(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	dbCfg, ok := database.FromCentralConfig(cfg.Store)
	if !ok {
		return nil, fmt.Errorf("store.driver %q is not a SQL store; use postgres or sqlite", cfg.Store.Driver)
	}
	db, err := database.Open(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", dbCfg.Driver, err)
	}
	return db, nil
}

func serverTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(cfg.Server.TimeoutSeconds) * time.Second
}
