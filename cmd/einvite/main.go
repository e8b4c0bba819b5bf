package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/drake/einvite/config"
	"github.com/drake/einvite/debug"
	"github.com/drake/einvite/export"
	"github.com/drake/einvite/internal/logger"
	"github.com/drake/einvite/session"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "einvite",
		Short:        "Design a wedding invitation in the terminal and save it as a PNG",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := start()
			if err != nil {
				return err
			}
			defer a.session.Close()
			defer func() { _ = a.log.Sync() }()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			debug.NewMonitor(a.settings.Debug, a.session, a.log.Named("monitor")).Start(ctx)

			return a.session.Run(a.bootErr)
		},
	}
	root.AddCommand(newRenderCmd())
	return root
}

// renderFlags maps command-line flags to form fields.
var renderFlags = []struct {
	name, field, usage string
}{
	{"names", "names", `couple's names, "A & B"`},
	{"date", "date", "wedding date"},
	{"venue", "venue", "venue"},
	{"font", "font", "serif, sans-serif, cursive, monospace or fantasy"},
	{"color", "color", "text color, #rrggbb"},
	{"size", "size", "name size in px"},
	{"spacing", "spacing", "letter spacing in px"},
	{"align", "align", "left, center or right"},
	{"background", "background", "bundled background name, or a data: URI"},
}

func newRenderCmd() *cobra.Command {
	values := make(map[string]*string, len(renderFlags))
	var noBackground bool
	var out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write " + export.FileName + " without opening the form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := start()
			if err != nil {
				return err
			}
			defer a.session.Close()
			defer func() { _ = a.log.Sync() }()
			s := a.session
			if a.bootErr != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", a.bootErr)
			}

			fields := make(map[string]string)
			for _, f := range renderFlags {
				if cmd.Flags().Changed(f.name) {
					fields[f.field] = *values[f.name]
				}
			}
			if noBackground {
				fields["background"] = "none"
			}
			if err := s.Apply(fields); err != nil {
				return err
			}
			if out != "" {
				s.SetOutputDir(out)
			}

			path, err := s.Render(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	for _, f := range renderFlags {
		values[f.name] = cmd.Flags().String(f.name, "", f.usage)
	}
	cmd.Flags().BoolVar(&noBackground, "no-background", false, "render without a background image")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory")
	cmd.MarkFlagsMutuallyExclusive("background", "no-background")
	return cmd
}

// app is everything built before a command runs.
type app struct {
	settings config.Settings
	log      *zap.Logger
	session  *session.Session
	// bootErr is a failing init.lua; the session is still usable.
	bootErr error
}

// start loads configuration and boots a session.
func start() (*app, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, fmt.Errorf(".env: %w", err)
	}
	cfg := config.Load()

	log, err := logger.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return nil, err
	}

	s, err := session.New(session.Config{
		ConfigDir: cfg.ConfigDir,
		InitFile:  cfg.InitFile,
		OutputDir: cfg.OutputDir,
		Logger:    log,
	})
	if err != nil {
		log.Error("session", zap.Error(err))
		return nil, err
	}
	return &app{settings: cfg, log: log, session: s, bootErr: s.Boot()}, nil
}
