package lua

import glua "github.com/yuin/gopher-lua"

// registerAssetFuncs registers invite.assets and invite.fonts.
func (e *Engine) registerAssetFuncs() {
	assets := e.L.NewTable()
	e.L.SetField(e.inviteTable, "assets", assets)

	// invite.assets.register(name, path): add or shadow a background
	e.L.SetField(assets, "register", e.L.NewFunction(func(L *glua.LState) int {
		name := L.CheckString(1)
		path := L.CheckString(2)
		e.assets.RegisterAsset(name, e.resolvePath(path))
		return 0
	}))

	// invite.assets.list(): every background name
	e.L.SetField(assets, "list", e.L.NewFunction(func(L *glua.LState) int {
		tbl := L.NewTable()
		for _, name := range e.assets.AssetNames() {
			tbl.Append(glua.LString(name))
		}
		L.Push(tbl)
		return 1
	}))

	fonts := e.L.NewTable()
	e.L.SetField(e.inviteTable, "fonts", fonts)

	// invite.fonts.register(family, path): use a font file for a family
	e.L.SetField(fonts, "register", e.L.NewFunction(func(L *glua.LState) int {
		family := L.CheckString(1)
		path := L.CheckString(2)
		if err := e.assets.RegisterFont(family, e.resolvePath(path)); err != nil {
			L.RaiseError("%s", err.Error())
		}
		return 0
	}))
}
