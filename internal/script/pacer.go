package script

import (
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/cellscribe/internal/diff"
)

// Pacer evaluates a Lua pace() hook to decide per-step typing delays.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes all
// evaluation. Script errors never stall a replay: on any failure Delay falls
// back to the base pace.
type Pacer struct {
	mu     sync.Mutex
	state  *lua.LState
	fn     lua.LValue
	closed bool
}

// Load reads a pace script from a file.
func Load(path string) (*Pacer, error) {
	state := newState()
	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, fmt.Errorf("running pace script %s: %w", path, err)
	}
	return newPacer(state, path)
}

// LoadString compiles a pace script from source.
func LoadString(src string) (*Pacer, error) {
	state := newState()
	if err := state.DoString(src); err != nil {
		state.Close()
		return nil, fmt.Errorf("running pace script: %w", err)
	}
	return newPacer(state, "inline")
}

func newState() *lua.LState {
	// io, os, debug and package stay closed; a pace hook only needs
	// arithmetic and string handling.
	state := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(state)
	lua.OpenTable(state)
	lua.OpenString(state)
	lua.OpenMath(state)
	return state
}

func newPacer(state *lua.LState, origin string) (*Pacer, error) {
	fn := state.GetGlobal("pace")
	if fn.Type() != lua.LTFunction {
		state.Close()
		return nil, fmt.Errorf("%w: %s", ErrNoPaceFunction, origin)
	}
	return &Pacer{state: state, fn: fn}, nil
}

// Delay evaluates pace(op, base_ms) and returns the resulting delay. The op
// argument is the operation name ("delete", "insert", "replace", "equal").
// A script error, a non-numeric result, or a negative result falls back to
// the base pace.
func (p *Pacer) Delay(op diff.OpTag, base time.Duration) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return base
	}

	baseMS := float64(base) / float64(time.Millisecond)
	err := p.state.CallByParam(lua.P{
		Fn:      p.fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(op.String()), lua.LNumber(baseMS))
	if err != nil {
		return base
	}

	ret := p.state.Get(-1)
	p.state.Pop(1)
	ms, ok := ret.(lua.LNumber)
	if !ok || float64(ms) < 0 {
		return base
	}
	return time.Duration(float64(ms) * float64(time.Millisecond))
}

// Close releases the Lua state. Delay calls after Close return the base pace.
func (p *Pacer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.state.Close()
}
