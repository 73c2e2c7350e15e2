package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pg "xfinance/internal/adapters/storage/postgres"
	"xfinance/internal/platform/config"
	"xfinance/internal/platform/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "xfinance",
		Short:         "Grid de inspeções con columnas gobernadas por papel",
		SilenceUsage:  true,
		SilenceErrors: true,
		// sin subcomando => serve
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.AddCommand(serveCmd(), migrateCmd(), gridCmd())
	return cmd
}

// bootstrap carga config y logger; común a todos los comandos.
func bootstrap() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, log, nil
}

// openDB abre Postgres y, si se pide, aplica migraciones antes.
func openDB(cfg *config.Config, log logger.Logger, migrate bool) (*sql.DB, error) {
	if cfg.DBDSN == "" {
		return nil, nil
	}
	if migrate {
		if err := pg.Migrate(cfg.DBDSN, log); err != nil {
			return nil, err
		}
	}
	db, err := pg.Open(cfg.DBDSN, cfg.DBMaxOpenConns)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}
