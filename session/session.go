// Package session wires configuration, the Lua engine, the renderer and the
// exporter together, then hands the result to the UI.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/drake/einvite/assets"
	"github.com/drake/einvite/export"
	"github.com/drake/einvite/invite"
	"github.com/drake/einvite/lua"
	"github.com/drake/einvite/render"
	"github.com/drake/einvite/ui"
)

// Config holds session configuration.
type Config struct {
	ConfigDir string // Path to ~/.config/einvite
	InitFile  string // Path to init.lua; skipped when missing
	OutputDir string // Default export directory
	Logger    *zap.Logger
}

// Session owns everything built at boot.
type Session struct {
	config Config
	log    *zap.Logger

	engine *lua.Engine
	assets *assets.Registry
	fonts  *render.FontSet

	// Written by init.lua through the adapter, read once boot is done.
	state     invite.State
	outputDir string

	rasterizer *render.Rasterizer
	exporter   *export.Exporter
}

// New creates a Session. It is passive: nothing runs until Boot.
func New(cfg Config) (*Session, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	fonts, err := render.NewFontSet()
	if err != nil {
		return nil, fmt.Errorf("loading fonts: %w", err)
	}

	s := &Session{
		config:    cfg,
		log:       log,
		assets:    assets.NewRegistry(),
		fonts:     fonts,
		state:     invite.Default(),
		outputDir: cfg.OutputDir,
	}
	adapter := NewLuaAdapter(s)
	s.engine = lua.NewEngine(adapter, adapter, adapter)
	return s, nil
}

// Boot runs init.lua and builds the renderer and exporter. A script error
// is returned but the session stays usable with whatever was applied
// before the error.
func (s *Session) Boot() error {
	err := s.boot()
	if err != nil {
		s.log.Warn("boot", zap.Error(err))
	}

	s.rasterizer = render.NewRasterizer(s.fonts, s.assets, s.log.Named("render"))
	s.exporter = export.New(s.outputDir, s.log.Named("export"))
	s.log.Info("session ready",
		zap.String("config_dir", s.config.ConfigDir),
		zap.String("output_dir", s.outputDir),
		zap.Strings("backgrounds", s.assets.Names()),
	)
	return err
}

func (s *Session) boot() error {
	if err := s.engine.Init(); err != nil {
		return err
	}
	s.engine.SetConfigDir(s.config.ConfigDir)

	if s.config.InitFile == "" {
		return nil
	}
	if _, err := os.Stat(s.config.InitFile); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := s.engine.DoFile(s.config.InitFile); err != nil {
		return fmt.Errorf("init.lua: %w", err)
	}
	return nil
}

// Stats is a snapshot for the debug monitor.
type Stats struct {
	Goroutines        int
	HeapAlloc         uint64
	Backgrounds       int
	CachedBackgrounds int
	OutputDir         string
}

// Stats returns runtime and renderer statistics. Safe to call from any
// goroutine after Boot.
func (s *Session) Stats() Stats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	st := Stats{
		Goroutines:  runtime.NumGoroutine(),
		HeapAlloc:   mem.HeapAlloc,
		Backgrounds: len(s.assets.Names()),
	}
	if s.rasterizer != nil {
		st.CachedBackgrounds = s.rasterizer.CachedBackgrounds()
	}
	if s.exporter != nil {
		st.OutputDir = s.exporter.Dir()
	}
	return st
}

// Close releases the Lua VM.
func (s *Session) Close() {
	s.engine.Close()
}

// State returns the form state after boot.
func (s *Session) State() invite.State {
	return s.state
}

// Apply overrides slots by name, e.g. from command-line flags.
func (s *Session) Apply(fields map[string]string) error {
	for field, value := range fields {
		if err := s.state.Set(field, value); err != nil {
			return err
		}
	}
	return nil
}

// SetOutputDir changes the export directory.
func (s *Session) SetOutputDir(dir string) {
	s.outputDir = dir
	if s.exporter != nil {
		s.exporter = export.New(dir, s.log.Named("export"))
	}
}

// Render exports the current state without the interactive form.
func (s *Session) Render(ctx context.Context) (string, error) {
	surface := s.rasterizer.Surface(render.Layout(s.state))
	return s.exporter.Export(ctx, surface)
}

// Run starts the interactive form and blocks until it exits.
func (s *Session) Run(bootErr error) error {
	opts := ui.Options{
		State:      s.state,
		Assets:     s.assets,
		Rasterizer: s.rasterizer,
		Exporter:   s.exporter,
		Logger:     s.log.Named("ui"),
	}
	if bootErr != nil {
		opts.Notice = bootErr.Error()
	}
	return ui.Run(opts)
}
