package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"library-backend/internal/platform/db"
	"library-backend/internal/server"
)

const shutdownTimeout = 10 * time.Second

type ServeOptions struct {
	*RootOptions
	Migrate bool
}

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Start the HTTP API",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Migrate, "migrate", false, "apply pending migrations before serving")

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	cfg, log, err := opts.load()
	if err != nil {
		return err
	}
	log.WithField("mode", cfg.Mode).Info("starting")

	conn, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.WithField("db", cfg.DB.DBName).Info("connected to DB")

	if opts.Migrate {
		if err := db.MigrateUp(ctx, conn); err != nil {
			return err
		}
		log.Info("migrations applied")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.NewRouter(cfg, db.Wrap(conn), log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		var err error
		if cfg.Server.CertFile != "" && cfg.Server.KeyFile != "" {
			log.Infof("listening on https://%s", cfg.Server.Addr)
			err = srv.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
		} else {
			log.Infof("listening on http://%s", cfg.Server.Addr)
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	// Graceful shutdown
	log.Info("shutting down...")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
