// Package blocks holds the static table of block types.
package blocks

import (
	"errors"
	"fmt"
	"sync"
)

// ID indexes the registry. 0 is always air.
type ID uint8

const Air ID = 0

// Face order matches the mesh builder: +X, -X, +Y, -Y, +Z, -Z.
type Face uint8

const (
	East Face = iota
	West
	Up
	Down
	South
	North
)

// Faces lists every face in mesh order.
var Faces = [6]Face{East, West, Up, Down, South, North}

func (f Face) String() string {
	switch f {
	case East:
		return "east"
	case West:
		return "west"
	case Up:
		return "up"
	case Down:
		return "down"
	case South:
		return "south"
	case North:
		return "north"
	}
	return fmt.Sprintf("face(%d)", uint8(f))
}

// Offset is the unit step from a block towards its neighbour across f.
func (f Face) Offset() (dx, dy, dz int) {
	switch f {
	case East:
		return 1, 0, 0
	case West:
		return -1, 0, 0
	case Up:
		return 0, 1, 0
	case Down:
		return 0, -1, 0
	case South:
		return 0, 0, 1
	case North:
		return 0, 0, -1
	}
	return 0, 0, 0
}

// Type describes one kind of block. Immutable once registered.
type Type struct {
	ID          ID
	Name        string
	Textures    [6]string
	Transparent bool
}

var ErrUnknownBlock = errors.New("unknown block")

// Registry is read-only after construction and safe to share.
type Registry struct {
	types    []Type
	byName   map[string]ID
	textures []string
	layers   [][6]uint16
}

// NewRegistry validates defs and indexes their textures. Ids must be dense from
// zero and id 0 must be air.
func NewRegistry(defs []Type) (*Registry, error) {
	if len(defs) == 0 {
		return nil, errors.New("empty block table")
	}
	if len(defs) > 256 {
		return nil, fmt.Errorf("%d block types do not fit in an ID", len(defs))
	}

	r := &Registry{
		types:  make([]Type, len(defs)),
		byName: make(map[string]ID, len(defs)),
		layers: make([][6]uint16, len(defs)),
	}
	textureLayer := make(map[string]uint16)

	for i, d := range defs {
		if int(d.ID) != i {
			return nil, fmt.Errorf("block %q has id %d at index %d", d.Name, d.ID, i)
		}
		if d.Name == "" {
			return nil, fmt.Errorf("block %d has no name", i)
		}
		if _, dup := r.byName[d.Name]; dup {
			return nil, fmt.Errorf("duplicate block name %q", d.Name)
		}
		if i == 0 && d.Name != "air" {
			return nil, fmt.Errorf("block 0 must be air, got %q", d.Name)
		}
		r.types[i] = d
		r.byName[d.Name] = d.ID

		if d.ID == Air {
			continue
		}
		for f, tex := range d.Textures {
			if tex == "" {
				return nil, fmt.Errorf("block %q has no %s texture", d.Name, Face(f))
			}
			layer, ok := textureLayer[tex]
			if !ok {
				layer = uint16(len(r.textures))
				textureLayer[tex] = layer
				r.textures = append(r.textures, tex)
			}
			r.layers[i][f] = layer
		}
	}
	return r, nil
}

// Get returns the type for id, or ErrUnknownBlock.
func (r *Registry) Get(id ID) (Type, error) {
	if int(id) >= len(r.types) {
		return Type{}, fmt.Errorf("%w: %d", ErrUnknownBlock, id)
	}
	return r.types[id], nil
}

func (r *Registry) Count() int {
	return len(r.types)
}

// ByName looks a block up by its display name.
func (r *Registry) ByName(name string) (ID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Opaque reports whether id hides the faces of its neighbours.
func (r *Registry) Opaque(id ID) bool {
	if id == Air || int(id) >= len(r.types) {
		return false
	}
	return !r.types[id].Transparent
}

// Solid reports whether id blocks movement and rays. Every non-air block does.
func (r *Registry) Solid(id ID) bool {
	return id != Air
}

// Textures lists every texture name in texture-array layer order.
func (r *Registry) Textures() []string {
	out := make([]string, len(r.textures))
	copy(out, r.textures)
	return out
}

// TextureIndex is the texture-array layer drawn on face f of id.
func (r *Registry) TextureIndex(id ID, f Face) uint16 {
	if int(id) >= len(r.layers) {
		return 0
	}
	return r.layers[id][f]
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the game's block table.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(Definitions)
		if err != nil {
			panic(fmt.Sprintf("blocks: built-in table: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}
