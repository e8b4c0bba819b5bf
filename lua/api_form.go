package lua

import glua "github.com/yuin/gopher-lua"

// registerFormFuncs registers invite.set and invite.get.
func (e *Engine) registerFormFuncs() {
	// invite.set{names = "A & B", size = 28, ...} or invite.set("names", "A & B")
	e.L.SetField(e.inviteTable, "set", e.L.NewFunction(func(L *glua.LState) int {
		if tbl, ok := L.Get(1).(*glua.LTable); ok {
			var err error
			tbl.ForEach(func(k, v glua.LValue) {
				if err != nil {
					return
				}
				err = e.form.SetField(k.String(), luaString(v))
			})
			if err != nil {
				L.RaiseError("%s", err.Error())
			}
			return 0
		}

		field := L.CheckString(1)
		if err := e.form.SetField(field, luaString(L.CheckAny(2))); err != nil {
			L.RaiseError("%s", err.Error())
		}
		return 0
	}))

	// invite.get(field): current value of a slot
	e.L.SetField(e.inviteTable, "get", e.L.NewFunction(func(L *glua.LState) int {
		value, err := e.form.GetField(L.CheckString(1))
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(glua.LString(value))
		return 1
	}))
}

// luaString converts a Lua value to the raw slot text. nil and false clear
// the slot.
func luaString(v glua.LValue) string {
	switch v {
	case glua.LNil, glua.LFalse:
		return ""
	}
	return v.String()
}
