package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/voxarena/server/internal/data"
	"go.uber.org/zap"
)

func writeScript(t *testing.T, dir, sub, name, src string) {
	t.Helper()
	p := filepath.Join(dir, sub)
	if err := os.MkdirAll(p, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(p, name), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
}

func rifle() *data.WeaponSpec {
	return data.DefaultWeapons().Get("rifle")
}

func TestBundledHitDamageScript(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts"), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	if !e.HasFunc("calc_hit_damage") {
		t.Fatal("calc_hit_damage not loaded")
	}
	if got := e.HitDamage(rifle(), false); got != 20 {
		t.Errorf("body shot = %d, want 20", got)
	}
	if got := e.HitDamage(rifle(), true); got != 60 {
		t.Errorf("headshot = %d, want 60", got)
	}
}

func TestHitDamageOverride(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "combat", "flat.lua", `
function calc_hit_damage(ctx)
    if ctx.weapon.name == "rifle" then return 7 end
    return 1
end`)
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	if got := e.HitDamage(rifle(), true); got != 7 {
		t.Errorf("HitDamage = %d, want 7", got)
	}
}

func TestHitDamageFallback(t *testing.T) {
	dir := t.TempDir()
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	if got := e.HitDamage(rifle(), true); got != 60 {
		t.Errorf("missing function: HitDamage = %d, want built-in 60", got)
	}

	writeScript(t, dir, "combat", "broken.lua", `function calc_hit_damage(ctx) error("boom") end`)
	e2, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e2.Close()
	if got := e2.HitDamage(rifle(), false); got != 20 {
		t.Errorf("failing function: HitDamage = %d, want built-in 20", got)
	}
}

func TestLoadErrorIsReported(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core", "bad.lua", "function (")
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Error("expected a syntax error")
	}
}
