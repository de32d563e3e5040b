package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/contact-crm/internal/infrastructure/backend"
	"github.com/jhoicas/contact-crm/pkg/config"
	"github.com/jhoicas/contact-crm/pkg/logger"
)

// newRootCommand arma el CLI de migraciones. La conexión se abre en PersistentPreRunE
// con la misma configuración que la API (DB_DRIVER, DATABASE_URL, SQLITE_PATH...).
func newRootCommand() *cobra.Command {
	var b *backend.Backend

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Aplica, revierte o lista las migraciones del esquema",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: cmd.ErrOrStderr()})
			b, err = backend.Open(cmd.Context(), cfg.DB, log.Component("migrate"))
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if b != nil {
				b.Close()
			}
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica todas las migraciones pendientes",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				n, err := b.Migrator.Up(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d migraciones aplicadas\n", n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "down [n]",
			Short: "Revierte las últimas n migraciones (por defecto 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					v, err := strconv.Atoi(args[0])
					if err != nil || v < 1 {
						return fmt.Errorf("n debe ser un entero positivo: %q", args[0])
					}
					steps = v
				}
				n, err := b.Migrator.Down(cmd.Context(), steps)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d migraciones revertidas\n", n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Muestra el estado de cada migración",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				list, err := b.Migrator.Status(cmd.Context())
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tNAME\tSTATE\tAPPLIED AT")
				for _, st := range list {
					state, at := "pending", ""
					if st.Applied {
						state, at = "applied", st.AppliedAt.Format(time.RFC3339)
					}
					fmt.Fprintf(w, "%04d\t%s\t%s\t%s\n", st.Version, st.Name, state, at)
				}
				return w.Flush()
			},
		},
	)
	return root
}
