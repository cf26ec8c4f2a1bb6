package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aanand-mishra/students-roster/internal/http/handlers/page"
	"github.com/aanand-mishra/students-roster/internal/http/middleware"
	"github.com/aanand-mishra/students-roster/internal/logging"
	"github.com/aanand-mishra/students-roster/internal/roster"
	"github.com/aanand-mishra/students-roster/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The screen belongs to the TUI, so logs go to the configured file.
			log, closeLog, err := logging.ToFile(a.cfg.Env, a.cfg.LogFile)
			if err != nil {
				return err
			}
			defer closeLog()

			log.Info("starting roster tui",
				slog.String("variant", a.v.Name),
				slog.String("base_url", a.endpoint()))

			return tui.Run(cmd.Context(), a.controller(log))
		},
	}
}

func newWebCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the roster as a web page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("address") {
				a.cfg.WebAddr = addr
			}
			log := logging.Setup(a.cfg.Env, cmd.ErrOrStderr())

			ln, err := net.Listen("tcp", a.cfg.WebAddr)
			if err != nil {
				return err
			}
			return serveWeb(cmd.Context(), ln, a.controller(log), log)
		},
	}

	cmd.Flags().StringVar(&addr, "address", "", "listen address (default from config, localhost:3001)")
	return cmd
}

// serveWeb serves the page on ln until ctx is done, then shuts down
// gracefully. A failed initial load is shown on the page rather than
// aborting.
func serveWeb(ctx context.Context, ln net.Listener, ctrl *roster.Controller, log *slog.Logger) error {
	if err := ctrl.Load(ctx); err != nil {
		log.Warn("initial load failed", slog.String("error", err.Error()))
	}

	mux := http.NewServeMux()
	page.Register(mux, ctrl)

	var handler http.Handler = mux
	handler = chimw.Recoverer(handler)
	handler = middleware.Logger(log)(handler)
	handler = middleware.RequestID(handler)

	server := &http.Server{
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("roster web started",
			slog.String("address", ln.Addr().String()),
			slog.String("variant", ctrl.Variant().Name))

		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, stopping server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped gracefully")
	return nil
}
