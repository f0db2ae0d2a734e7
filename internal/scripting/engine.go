package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/voxarena/server/internal/data"
	"github.com/voxarena/server/internal/handler"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for server-side game rules.
// Single-goroutine access only (hub loop).
type Engine struct {
	vm       *lua.LState
	fallback handler.DamageRule
	log      *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("HEADSHOT_MULTIPLIER", lua.LNumber(3))

	e := &Engine{vm: vm, fallback: handler.DefaultDamage{}, log: log}

	// Load core scripts first, then feature scripts
	for _, sub := range []string{"core", "combat"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HasFunc reports whether a global Lua function is defined.
func (e *Engine) HasFunc(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// HitDamage calls the Lua calc_hit_damage function. Without the function, or
// when it fails, the built-in rule applies.
//
//	calc_hit_damage({weapon = {name, bullet_damage, fire_interval, magazine_size}, headshot}) -> int
func (e *Engine) HitDamage(spec *data.WeaponSpec, headshot bool) int {
	fn, ok := e.vm.GetGlobal("calc_hit_damage").(*lua.LFunction)
	if !ok {
		return e.fallback.HitDamage(spec, headshot)
	}

	t := e.vm.NewTable()
	w := e.vm.NewTable()
	w.RawSetString("name", lua.LString(spec.Name))
	w.RawSetString("bullet_damage", lua.LNumber(spec.BulletDamage))
	w.RawSetString("fire_interval", lua.LNumber(spec.FireInterval))
	w.RawSetString("magazine_size", lua.LNumber(spec.MagazineSize))
	t.RawSetString("weapon", w)
	t.RawSetString("headshot", lua.LBool(headshot))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_hit_damage error", zap.Error(err))
		return e.fallback.HitDamage(spec, headshot)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua calc_hit_damage returned non-number", zap.String("type", result.Type().String()))
		return e.fallback.HitDamage(spec, headshot)
	}
	return int(n)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
