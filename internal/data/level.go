package data

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"github.com/voxarena/server/internal/component"
)

// Cell addresses one voxel cell of the level grid.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// PickupSpot is a cell where the server periodically places a pickup.
type PickupSpot struct {
	Cell   Cell             `json:"cell"`
	Pickup component.Pickup `json:"pickup"`
}

type levelFile struct {
	Name     string       `json:"name"`
	Size     Cell         `json:"size"`
	CellSize float32      `json:"cellSize"`
	Solid    []Cell       `json:"solid"`
	Spawns   []Cell       `json:"spawns"`
	Pickups  []PickupSpot `json:"pickups"`
}

// Level is the read-only level dataset: grid bounds, solid cells and the
// spawn-eligible cells. Loaded once at startup.
type Level struct {
	name     string
	size     Cell
	cellSize float32
	solid    map[Cell]struct{}
	spawns   []Cell
	pickups  []PickupSpot
}

// LoadLevel reads a level JSON document.
func LoadLevel(path string) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", path, err)
	}
	return ParseLevel(raw)
}

// ParseLevel parses a level document and keeps only spawn cells that are
// inside the grid and not solid. A level without a usable spawn is an error.
func ParseLevel(raw []byte) (*Level, error) {
	var f levelFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if f.Size.X <= 0 || f.Size.Y <= 0 || f.Size.Z <= 0 {
		return nil, fmt.Errorf("level %q: invalid size %+v", f.Name, f.Size)
	}
	if f.CellSize <= 0 {
		f.CellSize = 1
	}

	l := &Level{
		name:     f.Name,
		size:     f.Size,
		cellSize: f.CellSize,
		solid:    make(map[Cell]struct{}, len(f.Solid)),
	}
	for _, c := range f.Solid {
		l.solid[c] = struct{}{}
	}
	for _, c := range f.Spawns {
		if l.Contains(c) && !l.IsSolid(c) {
			l.spawns = append(l.spawns, c)
		}
	}
	if len(l.spawns) == 0 {
		return nil, fmt.Errorf("level %q: no valid spawn cells", f.Name)
	}
	for _, p := range f.Pickups {
		if l.Contains(p.Cell) && !l.IsSolid(p.Cell) {
			l.pickups = append(l.pickups, p)
		}
	}
	return l, nil
}

func (l *Level) Name() string { return l.name }

// Contains reports whether c lies inside the grid.
func (l *Level) Contains(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.Z >= 0 &&
		c.X < l.size.X && c.Y < l.size.Y && c.Z < l.size.Z
}

func (l *Level) IsSolid(c Cell) bool {
	_, ok := l.solid[c]
	return ok
}

// CellPosition returns the world position of the floor center of c.
func (l *Level) CellPosition(c Cell) component.Vec3 {
	return component.Vec3{
		X: (float32(c.X) + 0.5) * l.cellSize,
		Y: float32(c.Y) * l.cellSize,
		Z: (float32(c.Z) + 0.5) * l.cellSize,
	}
}

// CellAt returns the cell containing the world position p.
func (l *Level) CellAt(p component.Vec3) Cell {
	return Cell{
		X: int(math.Floor(float64(p.X / l.cellSize))),
		Y: int(math.Floor(float64(p.Y / l.cellSize))),
		Z: int(math.Floor(float64(p.Z / l.cellSize))),
	}
}

// Blocked reports whether p is outside the grid or inside a solid cell.
func (l *Level) Blocked(p component.Vec3) bool {
	c := l.CellAt(p)
	return !l.Contains(c) || l.IsSolid(c)
}

// SampleSpawn picks a random valid spawn point.
func (l *Level) SampleSpawn(rng *rand.Rand) component.Vec3 {
	c := l.spawns[rng.IntN(len(l.spawns))]
	return l.CellPosition(c)
}

// SpawnCount returns the number of valid spawn cells.
func (l *Level) SpawnCount() int { return len(l.spawns) }

// PickupSpots returns the pickup placements of the level.
func (l *Level) PickupSpots() []PickupSpot { return l.pickups }

// Bounds returns the world-space box covered by the grid.
func (l *Level) Bounds() (min, max component.Vec3) {
	max = component.Vec3{
		X: float32(l.size.X) * l.cellSize,
		Y: float32(l.size.Y) * l.cellSize,
		Z: float32(l.size.Z) * l.cellSize,
	}
	return component.Vec3{}, max
}
