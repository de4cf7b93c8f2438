package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"library-backend/internal/platform/db"
	"library-backend/internal/platform/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand creates the root command for the library backend.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "library",
		Short: "Library backend",
		Long:  "Catalogue, book copies and lending API for the library.",
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", db.DefaultConfigPath, "path to config file")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewUserCommand(opts))

	return cmd
}

// load は設定とロガーをまとめて用意する
func (o *RootOptions) load() (*db.Config, *logrus.Logger, error) {
	cfg, err := db.LoadConfig(o.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(cfg.Mode, cfg.Log.Level), nil
}
