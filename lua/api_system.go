package lua

import glua "github.com/yuin/gopher-lua"

// registerSystemFuncs registers invite.output and invite.log.
func (e *Engine) registerSystemFuncs() {
	// invite.output(dir): where wedding-invitation.png is written
	e.L.SetField(e.inviteTable, "output", e.L.NewFunction(func(L *glua.LState) int {
		e.sys.SetOutputDir(e.resolvePath(L.CheckString(1)))
		return 0
	}))

	// invite.log(msg): write to the log file
	e.L.SetField(e.inviteTable, "log", e.L.NewFunction(func(L *glua.LState) int {
		e.sys.Log(L.CheckString(1))
		return 0
	}))
}
