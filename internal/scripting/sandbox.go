// Package scripting runs game content scripts in a sandboxed GopherLua VM.
// Items use it for scripted actions and locations for arrival hooks.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the maximum number of Lua opcodes a single load
// or hook call may execute when no limit is configured.
const DefaultInstructionLimit = 100_000

// openers are the only standard libraries a content script can reach.
var openers = []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath}

// removedGlobals are base functions that reach the file system, load
// arbitrary chunks or write to the console's stdout.
var removedGlobals = []string{"dofile", "loadfile", "load", "loadstring", "collectgarbage", "require", "print"}

// budget is a context that cancels itself once its opcode allowance is spent.
// The VM checks Done once per opcode.
type budget struct {
	context.Context
	cancel context.CancelFunc
	left   atomic.Int64
}

func (b *budget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

// SetBudget gives L a fresh allowance of limit opcodes, replacing any
// previous one. The returned cancel releases the allowance early.
//
// Precondition: limit >= 0; 0 uses DefaultInstructionLimit.
func SetBudget(L *lua.LState, limit int) context.CancelFunc {
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &budget{Context: ctx, cancel: cancel}
	b.left.Store(int64(limit))
	L.SetContext(b)
	return cancel
}

// NewSandboxedState returns a VM holding only the base, table, string and
// math libraries, with removedGlobals unset and an allowance of instLimit
// opcodes.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: the caller owns the LState and must call L.Close().
func NewSandboxedState(instLimit int) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range openers {
		L.Push(L.NewFunction(open))
		L.Call(0, 0)
	}
	for _, name := range removedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	SetBudget(L, instLimit)
	return L
}
