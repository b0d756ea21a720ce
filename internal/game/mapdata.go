package game

import (
	"math"
	"strconv"
)

// Object names read from map metadata.
const (
	ObjectJail   = "jail"
	ObjectSpawn  = "spawn"
	ObjectPortal = "portal"
)

// Property is one named value of a map object.
type Property struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// MapObject is an opaque bag of properties attached to the map by its author.
type MapObject struct {
	Name       string     `json:"name" yaml:"name"`
	Properties []Property `json:"properties" yaml:"properties"`
}

// Int reads a property as an integer. Numeric strings and whole floats are
// accepted; anything else reports false.
func (o MapObject) Int(name string) (int, bool) {
	for _, p := range o.Properties {
		if p.Name != name {
			continue
		}
		switch v := p.Value.(type) {
		case int:
			return v, true
		case int64:
			return int(v), true
		case float64:
			if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
				return 0, false
			}
			return int(v), true
		case string:
			i, err := strconv.Atoi(v)
			if err != nil {
				return 0, false
			}
			return i, true
		default:
			return 0, false
		}
	}
	return 0, false
}

// Text reads a property as a string.
func (o MapObject) Text(name string) (string, bool) {
	for _, p := range o.Properties {
		if p.Name != name {
			continue
		}
		switch v := p.Value.(type) {
		case string:
			return v, true
		case int:
			return strconv.Itoa(v), true
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), true
		}
		return "", false
	}
	return "", false
}

// MapData is a parsed map as handed over by the map loader.
// TileIDs holds the raw tile identifier per cell, 0 meaning no tile (void).
type MapData struct {
	Name     string
	Width    int
	Height   int
	TileSize float64
	TileIDs  [][]int
	Tiles    [][]Tile
	Objects  []MapObject
}

// RawID returns the tile identifier at (x, y), 0 when out of bounds.
func (m *MapData) RawID(x, y int) int {
	if y < 0 || y >= len(m.TileIDs) || x < 0 || x >= len(m.TileIDs[y]) {
		return 0
	}
	return m.TileIDs[y][x]
}

// Object returns the first object with the given name.
func (m *MapData) Object(name string) (MapObject, bool) {
	for _, o := range m.Objects {
		if o.Name == name {
			return o, true
		}
	}
	return MapObject{}, false
}

// ObjectsNamed returns every object with the given name, in authoring order.
func (m *MapData) ObjectsNamed(name string) []MapObject {
	var out []MapObject
	for _, o := range m.Objects {
		if o.Name == name {
			out = append(out, o)
		}
	}
	return out
}

// Grid builds the collision grid for the map.
func (m *MapData) Grid() *CollisionGrid {
	return NewCollisionGrid(m.Tiles)
}

// FallbackTile is the tile used when neither metadata nor inference yields a
// position: the map center.
func (m *MapData) FallbackTile() Point {
	return Point{X: clampInt(m.Width/2, 0, m.Width-1), Y: clampInt(m.Height/2, 0, m.Height-1)}
}

// TileSizeOrDefault returns TileSize, or DefaultTileSize when unset.
func (m *MapData) TileSizeOrDefault() float64 {
	if m.TileSize > 0 {
		return m.TileSize
	}
	return DefaultTileSize
}
