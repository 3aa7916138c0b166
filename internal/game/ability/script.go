package ability

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/Shopify/go-lua"

	"github.com/udisondev/bestiary/internal/model"
)

// castFunction is the global every ability script must define:
// onCastSpell(caster, target, min, max) -> boolean.
const castFunction = "onCastSpell"

// ErrInvalidScriptPath is returned for script names escaping the scripts directory.
var ErrInvalidScriptPath = errors.New("script path must be local to the scripts directory")

// LuaScriptHost loads ability scripts from a directory, one Lua state per script.
type LuaScriptHost struct {
	dir string
}

// NewLuaScriptHost creates a host rooted at dir.
func NewLuaScriptHost(dir string) *LuaScriptHost {
	return &LuaScriptHost{dir: dir}
}

// Attach loads and runs the script, then checks that it defines onCastSpell.
func (h *LuaScriptHost) Attach(script string) (model.ScriptCallable, error) {
	if !filepath.IsLocal(script) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScriptPath, script)
	}
	path := filepath.Join(h.dir, script)

	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		return nil, fmt.Errorf("running %s: %w", path, err)
	}

	state.Global(castFunction)
	defined := state.IsFunction(-1)
	state.Pop(1)
	if !defined {
		return nil, fmt.Errorf("%s: %s is not defined", path, castFunction)
	}

	return &luaScript{name: script, state: state}, nil
}

// luaScript is an attached script. A Lua state is not safe for concurrent
// use, so casts are serialized.
type luaScript struct {
	name  string
	mu    sync.Mutex
	state *lua.State
}

var _ model.ScriptCallable = (*luaScript)(nil)

// Cast calls onCastSpell(caster, target, min, max) and returns its boolean result.
func (s *luaScript) Cast(casterID, targetID uint32, minValue, maxValue int32) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Global(castFunction)
	s.state.PushInteger(int(casterID))
	s.state.PushInteger(int(targetID))
	s.state.PushInteger(int(minValue))
	s.state.PushInteger(int(maxValue))

	if err := s.state.ProtectedCall(4, 1, 0); err != nil {
		return false, fmt.Errorf("script %s: %w", s.name, err)
	}
	ok := s.state.ToBoolean(-1)
	s.state.Pop(1)
	return ok, nil
}
