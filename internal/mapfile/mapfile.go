// Package mapfile loads maze fixtures written in YAML into the pre-parsed map
// structure the game core consumes.
package mapfile

import (
	"crypto/sha256"
	"embed"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ugaemi/mazechase-server/internal/game"
)

//go:embed maps/*.yaml
var builtin embed.FS

// DefaultMap is the embedded map used when no path is configured.
const DefaultMap = "classic"

var (
	ErrNoTileLayer   = errors.New("map has no tile rows")
	ErrNoLegend      = errors.New("map has no tile legend")
	ErrUnknownSymbol = errors.New("map uses a symbol missing from the legend")
)

// LegendEntry describes the tile drawn by one symbol.
type LegendEntry struct {
	Symbol   string   `yaml:"symbol"`
	ID       int      `yaml:"id"`
	Collides bool     `yaml:"collides"`
	Blocked  []string `yaml:"blocked"`
	PenGate  bool     `yaml:"pen_gate"`
	Portal   bool     `yaml:"portal"`
}

type mapFile struct {
	Name     string           `yaml:"name"`
	TileSize float64          `yaml:"tile_size"`
	Legend   []LegendEntry    `yaml:"legend"`
	Rows     []string         `yaml:"rows"`
	Objects  []game.MapObject `yaml:"objects"`
}

func (e LegendEntry) tile() (game.Tile, error) {
	t := game.Tile{Collides: e.Collides, PenGate: e.PenGate, Portal: e.Portal}
	for _, side := range e.Blocked {
		switch game.ParseDirection(side) {
		case game.DirUp:
			t.Up = true
		case game.DirDown:
			t.Down = true
		case game.DirLeft:
			t.Left = true
		case game.DirRight:
			t.Right = true
		default:
			return game.Tile{}, fmt.Errorf("legend %q: unknown edge %q", e.Symbol, side)
		}
	}
	return t, nil
}

// Parse decodes a YAML map. A space is void (identifier 0, open tile) unless
// the legend gives it a meaning; short rows are padded with void.
func Parse(data []byte) (*game.MapData, error) {
	var f mapFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse map: %w", err)
	}
	if len(f.Rows) == 0 {
		return nil, ErrNoTileLayer
	}
	if len(f.Legend) == 0 {
		return nil, ErrNoLegend
	}

	type symbol struct {
		id   int
		tile game.Tile
	}
	legend := make(map[rune]symbol, len(f.Legend))
	for _, e := range f.Legend {
		r := []rune(e.Symbol)
		if len(r) != 1 {
			return nil, fmt.Errorf("legend symbol %q: must be one character", e.Symbol)
		}
		t, err := e.tile()
		if err != nil {
			return nil, err
		}
		legend[r[0]] = symbol{id: e.ID, tile: t}
	}

	width := 0
	for _, row := range f.Rows {
		width = max(width, len([]rune(row)))
	}

	m := &game.MapData{
		Name:     f.Name,
		Width:    width,
		Height:   len(f.Rows),
		TileSize: f.TileSize,
		TileIDs:  make([][]int, len(f.Rows)),
		Tiles:    make([][]game.Tile, len(f.Rows)),
		Objects:  f.Objects,
	}
	for y, row := range f.Rows {
		ids := make([]int, width)
		tiles := make([]game.Tile, width)
		for x, r := range []rune(row) {
			s, ok := legend[r]
			if !ok {
				if r != ' ' {
					return nil, fmt.Errorf("row %d col %d %q: %w", y, x, r, ErrUnknownSymbol)
				}
				continue
			}
			ids[x] = s.id
			tiles[x] = s.tile
		}
		m.TileIDs[y] = ids
		m.Tiles[y] = tiles
	}
	return m, nil
}

// Load reads and parses a map file.
func Load(path string) (*game.MapData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Builtin returns an embedded map by name.
func Builtin(name string) (*game.MapData, error) {
	data, err := builtin.ReadFile("maps/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("builtin map %q: %w", name, err)
	}
	return Parse(data)
}

// LoadOrDefault loads path, or the default embedded map when path is empty.
func LoadOrDefault(path string) (*game.MapData, error) {
	if path == "" {
		return Builtin(DefaultMap)
	}
	return Load(path)
}

// Digest fingerprints the playable content of a map: dimensions, identifiers
// and collision flags. Names and objects do not contribute.
func Digest(m *game.MapData) string {
	h := sha256.New()
	var buf [4]byte
	put := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[:], v)
		h.Write(buf[:])
	}
	put(uint32(m.Width))
	put(uint32(m.Height))
	grid := m.Grid()
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			put(uint32(int32(m.RawID(x, y))))
			put(tileBits(grid.TileAt(x, y)))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func tileBits(t game.Tile) uint32 {
	var b uint32
	for i, set := range []bool{t.Collides, t.Up, t.Down, t.Left, t.Right, t.PenGate, t.Portal} {
		if set {
			b |= 1 << i
		}
	}
	return b
}
