package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules defines the engine global in L:
//
//	engine.roll(notation)  rolls dice notation such as "2d6+1" and returns the total
//	engine.log(message)    writes message to the engine log at info level
//
// Precondition: L must be from NewSandboxedState.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "roll", L.NewFunction(m.luaRoll))
	L.SetField(engine, "log", L.NewFunction(m.luaLog))
	L.SetGlobal("engine", engine)
}

func (m *Manager) luaRoll(L *lua.LState) int {
	notation := L.CheckString(1)
	total, err := m.dice.Roll(notation)
	if err != nil {
		L.RaiseError("engine.roll: %s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(total))
	return 1
}

func (m *Manager) luaLog(L *lua.LState) int {
	m.logger.Info("script", zap.String("message", L.CheckString(1)))
	return 0
}
