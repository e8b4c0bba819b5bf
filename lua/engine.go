// Package lua runs init.lua. Scripts configure the starting form state,
// register extra backgrounds and fonts, and choose the export directory
// through the global "invite" table.
package lua

import (
	"os"
	"path/filepath"
	"strings"

	glua "github.com/yuin/gopher-lua"
)

// Engine wraps gopher-lua and manages the VM lifecycle.
// It knows how to run Lua code and expose APIs, nothing about where the
// scripts live.
type Engine struct {
	L *glua.LState

	// Cached table reference
	inviteTable *glua.LTable

	form   FormService
	assets AssetService
	sys    SystemService

	// Directory of the script being run, for resolving relative paths.
	scriptDir string
}

// NewEngine creates an Engine backed by the given services.
func NewEngine(form FormService, assets AssetService, sys SystemService) *Engine {
	return &Engine{
		form:   form,
		assets: assets,
		sys:    sys,
	}
}

// --- Lifecycle ---

// Init initializes (or re-initializes) the Lua VM with fresh state.
// It registers the API but does NOT load any scripts.
func (e *Engine) Init() error {
	if e.L != nil {
		e.L.Close()
	}

	e.L = glua.NewState()
	e.scriptDir = ""
	e.registerAPIs()
	return nil
}

// Close cleans up the Lua state.
func (e *Engine) Close() {
	if e.L != nil {
		e.L.Close()
		e.L = nil
	}
}

// --- Execution ---

// DoString executes a raw string of Lua code.
// The name parameter is used for stack traces.
func (e *Engine) DoString(name, code string) error {
	fn, err := e.L.Load(strings.NewReader(code), name)
	if err != nil {
		return err
	}
	e.L.Push(fn)
	return e.L.PCall(0, 0, nil)
}

// DoFile executes a Lua file from the filesystem.
// It temporarily adjusts package.path to allow local requires.
func (e *Engine) DoFile(path string) error {
	path = expandTilde(path)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	// Temporarily prepend script's directory to package.path
	pkg := e.L.GetGlobal("package").(*glua.LTable)
	oldPath := e.L.GetField(pkg, "path").String()
	e.L.SetField(pkg, "path", glua.LString(dir+"/?.lua;"+oldPath))

	prevDir := e.scriptDir
	e.scriptDir = dir

	err = e.L.DoFile(absPath)

	e.scriptDir = prevDir
	e.L.SetField(pkg, "path", glua.LString(oldPath))

	return err
}

// SetConfigDir publishes the configuration directory as invite.config_dir.
func (e *Engine) SetConfigDir(dir string) {
	e.L.SetField(e.inviteTable, "config_dir", glua.LString(dir))
}

// --- API Registration ---

func (e *Engine) registerAPIs() {
	e.inviteTable = e.L.NewTable()
	e.L.SetGlobal("invite", e.inviteTable)

	e.registerFormFuncs()
	e.registerAssetFuncs()
	e.registerSystemFuncs()
}

// --- Private Helpers ---

// resolvePath expands ~ and makes relative paths relative to the running
// script.
func (e *Engine) resolvePath(path string) string {
	path = expandTilde(path)
	if filepath.IsAbs(path) || e.scriptDir == "" {
		return path
	}
	return filepath.Join(e.scriptDir, path)
}

// expandTilde expands ~ to home directory.
func expandTilde(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
