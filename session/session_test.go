package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/drake/einvite/export"
	"github.com/drake/einvite/invite"
)

func newSession(t *testing.T, script string) (*Session, string, error) {
	t.Helper()
	dir := t.TempDir()
	initFile := filepath.Join(dir, "init.lua")
	if script != "" {
		if err := os.WriteFile(initFile, []byte(script), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	s, err := New(Config{
		ConfigDir: dir,
		InitFile:  initFile,
		OutputDir: filepath.Join(dir, "default-out"),
		Logger:    zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s, dir, s.Boot()
}

func TestBootWithoutInitFile(t *testing.T) {
	s, dir, err := newSession(t, "")
	if err != nil {
		t.Fatalf("Boot() error = %v", err)
	}
	if diff := cmp.Diff(invite.Default(), s.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}

	path, err := s.Render(context.Background())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := filepath.Join(dir, "default-out", export.FileName); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestBootAppliesInitScript(t *testing.T) {
	s, dir, err := newSession(t, `
invite.set{ names = "Ann & Bob", align = "left", background = "none" }
invite.output("out")
invite.log("configured")
`)
	if err != nil {
		t.Fatalf("Boot() error = %v", err)
	}

	want := invite.Default()
	want.Names = "Ann & Bob"
	want.Align = invite.AlignLeft
	want.Background = invite.Background{}
	if diff := cmp.Diff(want, s.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}

	path, err := s.Render(context.Background())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := filepath.Join(dir, "out", export.FileName); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestBootScriptError(t *testing.T) {
	s, _, err := newSession(t, `
invite.set("date", "1st May 2026")
error("boom")
`)
	if err == nil || !strings.Contains(err.Error(), "init.lua") {
		t.Fatalf("Boot() error = %v, want init.lua error", err)
	}
	// Work done before the error is kept and the session still renders.
	if got := s.State().Date; got != "1st May 2026" {
		t.Errorf("date = %q, want value set before the error", got)
	}
	if _, err := s.Render(context.Background()); err != nil {
		t.Errorf("Render() after script error = %v", err)
	}
}

func TestRegisteredAssetIsUsable(t *testing.T) {
	s, dir, err := newSession(t, `
invite.assets.register("home.jpg", "backgrounds/home.jpg")
invite.set("background", "home.jpg")
`)
	if err != nil {
		t.Fatalf("Boot() error = %v", err)
	}
	if !contains(s.assets.Names(), "home.jpg") {
		t.Fatalf("names = %v, missing home.jpg", s.assets.Names())
	}

	// The file does not exist yet: rendering reports it.
	if _, err := s.Render(context.Background()); err == nil {
		t.Error("Render() with a missing registered file succeeded")
	}

	bundled, err := s.assets.Open("wed2.jpg")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "backgrounds"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "backgrounds", "home.jpg"), bundled, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Render(context.Background()); err != nil {
		t.Errorf("Render() error = %v", err)
	}
}

func TestApply(t *testing.T) {
	s, _, err := newSession(t, "")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Apply(map[string]string{"names": "Kim & Lee", "size": "32"}); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := s.State(); got.Names != "Kim & Lee" || got.Size != "32" {
		t.Errorf("state = %+v", got)
	}

	if err := s.Apply(map[string]string{"shadow": "yes"}); !errors.Is(err, invite.ErrUnknownField) {
		t.Errorf("Apply(shadow) error = %v, want ErrUnknownField", err)
	}
}

func TestSetOutputDirAfterBoot(t *testing.T) {
	s, _, err := newSession(t, "")
	if err != nil {
		t.Fatal(err)
	}
	out := t.TempDir()
	s.SetOutputDir(out)

	path, err := s.Render(context.Background())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := filepath.Join(out, export.FileName); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestScriptLogReachesLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dir := t.TempDir()
	initFile := filepath.Join(dir, "init.lua")
	if err := os.WriteFile(initFile, []byte(`invite.log("hello")`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := New(Config{ConfigDir: dir, InitFile: initFile, OutputDir: dir, Logger: zap.New(core)})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if err := s.Boot(); err != nil {
		t.Fatal(err)
	}

	if got := logs.FilterMessage("hello").Len(); got != 1 {
		t.Errorf("script log entries = %d, want 1", got)
	}
}

func contains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}
