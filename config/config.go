// Package config resolves where einvite keeps its files. Everything can be
// overridden from the environment or a .env file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvConfigDir = "EINVITE_CONFIG_DIR"
	EnvOutputDir = "EINVITE_OUTPUT_DIR"
	EnvLogFile   = "EINVITE_LOG_FILE"
	EnvDebug     = "EINVITE_DEBUG"
)

// Settings is the resolved configuration.
type Settings struct {
	ConfigDir string
	InitFile  string
	OutputDir string
	LogFile   string
	Debug     bool
}

// Dir returns the einvite configuration directory.
// Respects XDG_CONFIG_HOME on Unix, APPDATA on Windows.
func Dir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}

	var base string
	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, "einvite")
}

// InitFile returns the path to init.lua
func InitFile() string {
	return filepath.Join(Dir(), "init.lua")
}

// LoadEnv loads .env files into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Load resolves the settings from the environment.
func Load() Settings {
	s := Settings{
		ConfigDir: Dir(),
		InitFile:  InitFile(),
		OutputDir: os.Getenv(EnvOutputDir),
		LogFile:   os.Getenv(EnvLogFile),
		Debug:     os.Getenv(EnvDebug) == "1",
	}
	if s.OutputDir == "" {
		s.OutputDir = "."
	}
	if s.LogFile == "" {
		s.LogFile = filepath.Join(s.ConfigDir, "einvite.log")
	}
	return s
}
