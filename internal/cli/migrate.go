package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"library-backend/internal/platform/db"
)

type MigrateOptions struct {
	*RootOptions
	Steps int
}

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MigrateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	up := &cobra.Command{
		Use:          "up",
		Short:        "Apply all pending migrations",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, opts, true)
		},
	}

	down := &cobra.Command{
		Use:          "down",
		Short:        "Roll back migrations",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Steps <= 0 {
				return fmt.Errorf("--steps must be positive, got %d", opts.Steps)
			}
			return runMigrate(cmd, opts, false)
		},
	}
	down.Flags().IntVar(&opts.Steps, "steps", 1, "number of migrations to roll back")

	list := &cobra.Command{
		Use:   "list",
		Short: "List embedded migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := db.MigrationNames()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}

	cmd.AddCommand(up, down, list)
	return cmd
}

func runMigrate(cmd *cobra.Command, opts *MigrateOptions, up bool) error {
	cfg, log, err := opts.load()
	if err != nil {
		return err
	}
	conn, err := db.Connect(cmd.Context(), cfg.DB)
	if err != nil {
		return err
	}
	defer conn.Close()

	if up {
		err = db.MigrateUp(cmd.Context(), conn)
	} else {
		err = db.MigrateDown(cmd.Context(), conn, opts.Steps)
	}
	if err != nil {
		return err
	}
	log.WithField("up", up).Info("migration finished")
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
