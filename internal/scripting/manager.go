package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wildone/internal/game/dice"
	"github.com/cory-johannsen/wildone/internal/game/entity"
	"github.com/cory-johannsen/wildone/internal/game/item"
)

// ErrUnknownHook is returned when a hook names a function no loaded script defines.
var ErrUnknownHook = errors.New("unknown script hook")

// Manager owns the content VM and dispatches item and location hooks to it.
//
// Every load and hook call gets its own instruction budget. Calls are
// serialized; the VM is single-threaded.
type Manager struct {
	mu     sync.Mutex
	L      *lua.LState
	limit  int
	dice   *dice.Service
	logger *zap.Logger
}

var _ item.ScriptRunner = (*Manager)(nil)

// NewManager creates a Manager with an empty VM.
//
// Precondition: d and logger must be non-nil; limit >= 0 (0 uses DefaultInstructionLimit).
// Postcondition: the engine global is registered.
func NewManager(d *dice.Service, logger *zap.Logger, limit int) *Manager {
	if d == nil {
		panic("scripting.NewManager: dice must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	m := &Manager{L: NewSandboxedState(limit), limit: limit, dice: d, logger: logger}
	m.RegisterModules(m.L)
	return m
}

// LoadDir executes every *.lua file in dir in lexicographic order.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns an error naming the first file that fails to load.
func (m *Manager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, path := range files {
		cancel := SetBudget(m.L, m.limit)
		err := m.L.DoFile(path)
		cancel()
		if err != nil {
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}
	m.logger.Debug("scripts loaded", zap.String("dir", dir), zap.Int("files", len(files)))
	return nil
}

// LoadString executes src as an inline chunk.
func (m *Manager) LoadString(src string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cancel := SetBudget(m.L, m.limit)
	defer cancel()
	if err := m.L.DoString(src); err != nil {
		return fmt.Errorf("scripting: loading inline chunk: %w", err)
	}
	return nil
}

// Has reports whether hook names a loaded Lua function.
func (m *Manager) Has(hook string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.L.GetGlobal(hook).(*lua.LFunction)
	return ok
}

// call invokes hook with args and returns its first nret results.
func (m *Manager) call(hook string, nret int, args ...lua.LValue) ([]lua.LValue, error) {
	fn, ok := m.L.GetGlobal(hook).(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHook, hook)
	}
	cancel := SetBudget(m.L, m.limit)
	defer cancel()
	if err := m.L.CallByParam(lua.P{Fn: fn, NRet: nret, Protect: true}, args...); err != nil {
		return nil, fmt.Errorf("scripting: hook %q: %w", hook, err)
	}
	ret := make([]lua.LValue, nret)
	for i := range ret {
		ret[i] = m.L.Get(i - nret)
	}
	m.L.Pop(nret)
	return ret, nil
}

// RunItemHook calls hook(actor, target), where both arguments are tables with
// name, is_player and dexterity fields. The hook may return up to three
// values: a message to narrate, damage and healing to apply to target.
//
// Postcondition: a non-number damage or heal is an error. Every failure is
// logged at Warn level.
func (m *Manager) RunItemHook(hook string, actor, target item.Combatant) (item.ScriptOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out, err := m.runItemHook(hook, actor, target)
	if err != nil {
		m.logger.Warn("scripting: item hook failed",
			zap.String("hook", hook),
			zap.String("actor", actor.Name()),
			zap.String("target", target.Name()),
			zap.Error(err),
		)
	}
	return out, err
}

func (m *Manager) runItemHook(hook string, actor, target item.Combatant) (item.ScriptOutcome, error) {
	ret, err := m.call(hook, 3, m.combatantTable(actor), m.combatantTable(target))
	if err != nil {
		return item.ScriptOutcome{}, err
	}
	var out item.ScriptOutcome
	if out.Message, err = optionalString(ret[0]); err != nil {
		return item.ScriptOutcome{}, fmt.Errorf("scripting: hook %q message: %w", hook, err)
	}
	if out.Damage, err = optionalInt(ret[1]); err != nil {
		return item.ScriptOutcome{}, fmt.Errorf("scripting: hook %q damage: %w", hook, err)
	}
	if out.Heal, err = optionalInt(ret[2]); err != nil {
		return item.ScriptOutcome{}, fmt.Errorf("scripting: hook %q heal: %w", hook, err)
	}
	return out, nil
}

// RunLocationHook calls hook(player) on arrival. The player table carries
// name, level, gold, experience, hit_points and maximum_hit_points. A
// returned string is narrated. Failures are returned unlogged; the session
// logs them with the location.
func (m *Manager) RunLocationHook(hook string, player *entity.Player) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ret, err := m.call(hook, 1, m.playerTable(player))
	if err != nil {
		return "", err
	}
	msg, err := optionalString(ret[0])
	if err != nil {
		return "", fmt.Errorf("scripting: hook %q: %w", hook, err)
	}
	return msg, nil
}

// Close releases the VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.L.Close()
}

func (m *Manager) combatantTable(c item.Combatant) *lua.LTable {
	t := m.L.NewTable()
	t.RawSetString("name", lua.LString(c.Name()))
	t.RawSetString("is_player", lua.LBool(c.IsPlayer()))
	t.RawSetString("dexterity", lua.LNumber(c.Dexterity()))
	return t
}

func (m *Manager) playerTable(p *entity.Player) *lua.LTable {
	t := m.L.NewTable()
	t.RawSetString("name", lua.LString(p.Name()))
	t.RawSetString("level", lua.LNumber(p.Level()))
	t.RawSetString("gold", lua.LNumber(p.Gold()))
	t.RawSetString("experience", lua.LNumber(p.ExperiencePoints()))
	t.RawSetString("hit_points", lua.LNumber(p.CurrentHitPoints()))
	t.RawSetString("maximum_hit_points", lua.LNumber(p.MaximumHitPoints()))
	return t
}

func optionalString(v lua.LValue) (string, error) {
	switch s := v.(type) {
	case *lua.LNilType:
		return "", nil
	case lua.LString:
		return string(s), nil
	default:
		return "", fmt.Errorf("expected string, got %s", v.Type())
	}
}

func optionalInt(v lua.LValue) (int, error) {
	switch n := v.(type) {
	case *lua.LNilType:
		return 0, nil
	case lua.LNumber:
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected number, got %s", v.Type())
	}
}
