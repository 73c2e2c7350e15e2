package main

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"xfinance/internal/domain/grid"
	"xfinance/internal/router"
)

// gridCmd carga el grid de un papel e imprime las filas como JSON.
func gridCmd() *cobra.Command {
	var (
		role     string
		order    string
		limit    int
		assigned int64
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Imprime el grid de un papel (JSON)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			db, err := openDB(cfg, log, false)
			if err != nil {
				return err
			}
			if db == nil {
				return errors.New("DB_DSN is required")
			}
			defer db.Close()

			mode, err := grid.ParseOrderMode(order)
			if err != nil {
				return err
			}

			_, svcs := router.Build(router.Options{DB: db, Config: cfg, Logger: log})
			rows, err := svcs.Grid.Load(cmd.Context(), grid.BuildInput{
				Role:       role,
				Order:      mode,
				Limit:      limit,
				AssignedTo: assigned,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Papel (admin, BackOffice, Inspetor...)")
	cmd.Flags().StringVar(&order, "order", "normal", "normal | player | deadline")
	cmd.Flags().IntVar(&limit, "limit", 0, "Últimos N registros por id (0 = todos)")
	cmd.Flags().Int64Var(&assigned, "mine", 0, "Solo registros cuyo responsable es este id_user")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}
