package main

import (
	"errors"

	"github.com/spf13/cobra"

	pg "xfinance/internal/adapters/storage/postgres"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones de esquema y el seed de permi",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			if cfg.DBDSN == "" {
				return errors.New("DB_DSN is required")
			}
			return pg.Migrate(cfg.DBDSN, log)
		},
	}
}
