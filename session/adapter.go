package session

import (
	"go.uber.org/zap"

	"github.com/drake/einvite/invite"
	"github.com/drake/einvite/lua"
)

// Compile-time interface checks for segregated services
var (
	_ lua.FormService   = (*LuaAdapter)(nil)
	_ lua.AssetService  = (*LuaAdapter)(nil)
	_ lua.SystemService = (*LuaAdapter)(nil)
	_ lua.Host          = (*LuaAdapter)(nil)
)

// LuaAdapter bridges Lua service interfaces to Session infrastructure.
type LuaAdapter struct {
	session *Session
}

// NewLuaAdapter creates an adapter wired to the session's components.
func NewLuaAdapter(s *Session) *LuaAdapter {
	return &LuaAdapter{session: s}
}

// --- FormService ---

func (a *LuaAdapter) SetField(field, value string) error {
	return a.session.state.Set(field, value)
}

func (a *LuaAdapter) GetField(field string) (string, error) {
	return a.session.state.Get(field)
}

// --- AssetService ---

func (a *LuaAdapter) RegisterAsset(name, path string) {
	a.session.assets.Register(name, path)
}

func (a *LuaAdapter) AssetNames() []string {
	return a.session.assets.Names()
}

func (a *LuaAdapter) RegisterFont(family, path string) error {
	return a.session.fonts.Register(invite.Font(family), path)
}

// --- SystemService ---

func (a *LuaAdapter) SetOutputDir(dir string) {
	a.session.outputDir = dir
}

func (a *LuaAdapter) Log(msg string) {
	a.session.log.Info(msg, zap.String("source", "init.lua"))
}
