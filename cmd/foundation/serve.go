package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	hxpanelecho "github.com/pthm/hxpanel/adapters/echo"
	"github.com/pthm/hxpanel/internal/config"
	"github.com/pthm/hxpanel/internal/content"
	"github.com/pthm/hxpanel/internal/site"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long: `Start the web server. The featured banner rotates on the server clock for as
long as the process runs. SIGINT or SIGTERM shuts the server down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, c, err := opts.loadAll()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			slog.SetDefault(newLogger(cfg, cmd.ErrOrStderr()))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, c)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides addr in config)")
	return cmd
}

// newServer wires the site into an echo instance.
func newServer(cfg *config.Config, c *content.Content) (*echo.Echo, *site.Site, error) {
	s, err := site.New(cfg, c)
	if err != nil {
		return nil, nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger())

	var mountOpts []hxpanelecho.Option
	if cfg.Secret != "" {
		mountOpts = append(mountOpts, hxpanelecho.WithKey([]byte(cfg.Secret)))
	} else {
		slog.Warn("no secret configured; using a random key, pages rendered before a restart will stop working")
	}
	reg := hxpanelecho.Mount(e, mountOpts...)
	s.Register(reg)
	s.Routes(e)
	return e, s, nil
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURIPath:  true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"path", v.URIPath,
				"status", v.Status,
				"duration", v.Latency,
			}
			if v.Error != nil {
				slog.Warn("req", append(attrs, "err", v.Error)...)
				return nil
			}
			slog.Info("req", attrs...)
			return nil
		},
	})
}

// serve runs the HTTP server and the featured rotator until ctx is done or
// either of them fails.
func serve(ctx context.Context, cfg *config.Config, c *content.Content) error {
	e, s, err := newServer(cfg, c)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Rotator.Run(gctx)
	})
	g.Go(func() error {
		slog.Info("listening", "addr", cfg.Addr, "faq_mode", cfg.FAQMode)
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", cfg.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
