package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pthm/hxpanel/internal/config"
	"github.com/pthm/hxpanel/internal/content"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "foundation",
		Short: "Hometown Foundation website",
		Long: `foundation serves the foundation's single-page site. The FAQ, the events
carousel, the navigation menu and the forms are server-rendered htmx
components; the featured banner is streamed to every visitor over SSE.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "config file path")

	root.AddCommand(newServeCmd(opts), newCheckCmd(opts), newVersionCmd())
	return root
}

// loadConfig reads and validates the configuration named by --config.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", o.configPath, err)
	}
	return cfg, nil
}

// loadAll reads the configuration and the content it points at.
func (o *rootOptions) loadAll() (*config.Config, *content.Content, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	c, err := content.Load(cfg.ContentPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, c, nil
}

// newLogger builds the process logger from the log_level and log_format
// settings. Both were checked by Validate.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	hopts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and site content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, c, err := opts.loadAll()
			if err != nil {
				return err
			}
			source := cfg.ContentPath
			if source == "" {
				source = "built-in"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config:  ok (faq_mode=%s, carousel_interval=%s)\n", cfg.FAQMode, cfg.CarouselInterval)
			fmt.Fprintf(out, "content: ok (%s: %d questions, %d events, %d featured)\n",
				source, len(c.FAQ), len(c.Events), len(c.Featured))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "foundation version %s\n", version)
		},
	}
}
