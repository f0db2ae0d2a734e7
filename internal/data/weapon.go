package data

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/voxarena/server/internal/component"
	"gopkg.in/yaml.v3"
)

//go:embed weapons.yaml
var defaultWeaponsYAML []byte

// WeaponSpec holds the tuning of one weapon, loaded from YAML.
type WeaponSpec struct {
	Name            component.WeaponType `yaml:"name"`
	BulletDamage    int                  `yaml:"bullet_damage"`
	FireInterval    float64              `yaml:"fire_interval"` // seconds between shots
	MagazineSize    int                  `yaml:"magazine_size"`
	MaxReservedAmmo int                  `yaml:"max_reserved_ammo"`
	ReloadTime      float64              `yaml:"reload_time"`
	SwapTime        float64              `yaml:"swap_time"`
	FireSound       string               `yaml:"fire_sound"`
}

type weaponListFile struct {
	Weapons []WeaponSpec `yaml:"weapons"`
}

// WeaponTable holds weapon specs indexed by name, in file order.
type WeaponTable struct {
	specs map[component.WeaponType]*WeaponSpec
	order []component.WeaponType
}

// Get returns the spec for a weapon, or nil if unknown.
func (t *WeaponTable) Get(w component.WeaponType) *WeaponSpec {
	return t.specs[w]
}

// Default returns the spawn weapon (first entry of the table).
func (t *WeaponTable) Default() component.WeaponType {
	if len(t.order) == 0 {
		return ""
	}
	return t.order[0]
}

// Names returns weapon names in table order.
func (t *WeaponTable) Names() []component.WeaponType {
	return t.order
}

// Count returns the number of weapons.
func (t *WeaponTable) Count() int {
	return len(t.order)
}

// LoadWeaponTable loads weapon specs from a YAML file. An empty path yields
// the built-in table.
func LoadWeaponTable(path string) (*WeaponTable, error) {
	if path == "" {
		return ParseWeaponTable(defaultWeaponsYAML)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weapon list %s: %w", path, err)
	}
	return ParseWeaponTable(raw)
}

// ParseWeaponTable parses and validates a weapon list document.
func ParseWeaponTable(raw []byte) (*WeaponTable, error) {
	var f weaponListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse weapon list: %w", err)
	}
	if len(f.Weapons) == 0 {
		return nil, fmt.Errorf("weapon list is empty")
	}
	t := &WeaponTable{
		specs: make(map[component.WeaponType]*WeaponSpec, len(f.Weapons)),
		order: make([]component.WeaponType, 0, len(f.Weapons)),
	}
	for i := range f.Weapons {
		w := f.Weapons[i]
		if w.Name == "" {
			return nil, fmt.Errorf("weapon #%d has no name", i)
		}
		if _, dup := t.specs[w.Name]; dup {
			return nil, fmt.Errorf("duplicate weapon %q", w.Name)
		}
		if w.MagazineSize <= 0 || w.MaxReservedAmmo < 0 || w.BulletDamage < 0 {
			return nil, fmt.Errorf("weapon %q: invalid ammo or damage values", w.Name)
		}
		t.specs[w.Name] = &w
		t.order = append(t.order, w.Name)
	}
	return t, nil
}

// DefaultWeapons returns the built-in table. The embedded document is part of
// the binary, so a parse failure is a programming error.
func DefaultWeapons() *WeaponTable {
	t, err := ParseWeaponTable(defaultWeaponsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded weapons.yaml: %v", err))
	}
	return t
}
