package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corridorPortals() (*CollisionGrid, *PortalService) {
	grid := testMap(
		"#####",
		"T...T",
		"#####",
	).Grid()
	return grid, NewPortalService(grid, ScanPortalPairs(grid))
}

func TestScanPortalPairs_DerivesOutward(t *testing.T) {
	_, s := corridorPortals()

	pairs := s.Pairs()
	require.Len(t, pairs, 1)
	assert.Equal(t, Point{X: 0, Y: 1}, pairs[0].A)
	assert.Equal(t, Point{X: 4, Y: 1}, pairs[0].B)
	assert.Equal(t, DirLeft, pairs[0].OutA)
	assert.Equal(t, DirRight, pairs[0].OutB)
	assert.True(t, s.IsPortal(Point{X: 4, Y: 1}))
	assert.False(t, s.IsPortal(Point{X: 2, Y: 1}))
}

func TestPortalService_TryTeleport(t *testing.T) {
	tests := []struct {
		name     string
		offset   Vec
		dir      Direction
		want     bool
		wantTile Point
	}{
		{"half a tile out", Vec{X: -8}, DirLeft, true, Point{X: 4, Y: 1}},
		{"not far enough", Vec{X: -7.5}, DirLeft, false, Point{X: 0, Y: 1}},
		{"walking inward", Vec{X: 8}, DirRight, false, Point{X: 0, Y: 1}},
		{"wrong axis", Vec{Y: -8}, DirUp, false, Point{X: 0, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, s := corridorPortals()
			b := Body{Tile: Point{X: 0, Y: 1}, Offset: tt.offset}

			assert.Equal(t, tt.want, s.TryTeleport(1, &b, tt.dir, 10, 16))
			assert.Equal(t, tt.wantTile, b.Tile)
			if tt.want {
				assert.Equal(t, Vec{}, b.Offset)
				last, ok := s.LastTeleport(1)
				assert.True(t, ok)
				assert.Equal(t, int64(10), last)
			}
		})
	}
}

func TestPortalService_SameTickBounce(t *testing.T) {
	_, s := corridorPortals()
	b := Body{Tile: Point{X: 0, Y: 1}, Offset: Vec{X: -8}}
	require.True(t, s.TryTeleport(1, &b, DirLeft, 5, 16))

	// Walked straight back out of the destination within the same tick.
	b.Offset = Vec{X: 8}
	assert.False(t, s.TryTeleport(1, &b, DirRight, 5, 16))
	assert.Equal(t, Point{X: 4, Y: 1}, b.Tile)

	assert.True(t, s.TryTeleport(1, &b, DirRight, 6, 16))
	assert.Equal(t, Point{X: 0, Y: 1}, b.Tile)

	// Other entities are tracked separately.
	other := Body{Tile: Point{X: 0, Y: 1}, Offset: Vec{X: -8}}
	assert.True(t, s.TryTeleport(2, &other, DirLeft, 6, 16))
}

func TestPortalService_BlockedDestination(t *testing.T) {
	grid := testMap(
		"##.##",
		"T...#",
		"#####",
	).Grid()
	s := NewPortalService(grid, []PortalPair{{A: Point{X: 0, Y: 1}, B: Point{X: 4, Y: 1}}})
	b := Body{Tile: Point{X: 0, Y: 1}, Offset: Vec{X: -8}}

	assert.False(t, s.CanAdvanceOutward(&b, DirLeft))
	assert.False(t, s.TryTeleport(1, &b, DirLeft, 1, 16))
	assert.Equal(t, Point{X: 0, Y: 1}, b.Tile)
	_, ok := s.LastTeleport(1)
	assert.False(t, ok)
}

func TestPortalService_CanAdvanceOutward(t *testing.T) {
	_, s := corridorPortals()

	at := Body{Tile: Point{X: 4, Y: 1}}
	assert.True(t, s.CanAdvanceOutward(&at, DirRight))
	assert.False(t, s.CanAdvanceOutward(&at, DirLeft))

	elsewhere := Body{Tile: Point{X: 2, Y: 1}}
	assert.False(t, s.CanAdvanceOutward(&elsewhere, DirRight))
}

func TestPortalService_Forget(t *testing.T) {
	_, s := corridorPortals()
	b := Body{Tile: Point{X: 0, Y: 1}, Offset: Vec{X: -8}}
	require.True(t, s.TryTeleport(3, &b, DirLeft, 1, 16))

	s.Forget(3)
	_, ok := s.LastTeleport(3)
	assert.False(t, ok)
}

func TestNewPortalService_SkipsClaimedEndpoints(t *testing.T) {
	grid, _ := corridorPortals()
	s := NewPortalService(grid, []PortalPair{
		{A: Point{X: 0, Y: 1}, B: Point{X: 4, Y: 1}},
		{A: Point{X: 4, Y: 1}, B: Point{X: 2, Y: 1}},
		{A: Point{X: 1, Y: 1}, B: Point{X: 1, Y: 1}},
	})

	assert.Len(t, s.Pairs(), 1)
	assert.False(t, s.IsPortal(Point{X: 2, Y: 1}))
	assert.False(t, s.IsPortal(Point{X: 1, Y: 1}))
}

func TestOutwardDirection_Interior(t *testing.T) {
	grid := NewCollisionGrid([][]Tile{
		{{}, {}, {}, {}, {}},
		{{}, {Portal: true, Down: true}, {}, {Portal: true}, {}},
		{{}, {}, {}, {}, {}},
	})
	s := NewPortalService(grid, ScanPortalPairs(grid))

	out, ok := s.Outward(Point{X: 1, Y: 1})
	require.True(t, ok)
	assert.Equal(t, DirDown, out, "blocked edge of the portal tile")

	out, ok = s.Outward(Point{X: 3, Y: 1})
	require.True(t, ok)
	assert.Equal(t, DirRight, out, "away from the partner")
}

func TestOutwardDirection_InteriorBesideWall(t *testing.T) {
	open := Tile{}
	block := Tile{Collides: true, Up: true, Down: true, Left: true, Right: true}
	gate := Tile{Portal: true}
	grid := NewCollisionGrid([][]Tile{
		{open, open, open, open, open, open},
		{open, open, open, block, open, open},
		{open, gate, open, gate, open, open},
		{open, open, open, open, open, open},
	})
	s := NewPortalService(grid, ScanPortalPairs(grid))

	out, ok := s.Outward(Point{X: 3, Y: 2})
	require.True(t, ok)
	assert.Equal(t, DirUp, out, "fully blocking neighbor wins over the partner rule")

	out, ok = s.Outward(Point{X: 1, Y: 2})
	require.True(t, ok)
	assert.Equal(t, DirLeft, out, "no wall nearby, away from the partner")
}

func TestResolvePortalPairs(t *testing.T) {
	tests := []struct {
		name    string
		objects []MapObject
		want    []Point
	}{
		{
			name: "scan order without objects",
			want: []Point{{X: 0, Y: 1}, {X: 4, Y: 1}, {X: 0, Y: 3}, {X: 4, Y: 3}},
		},
		{
			name: "explicit pair across rows",
			objects: []MapObject{
				{Name: ObjectPortal, Properties: []Property{{"pairId", "a"}, {"gridX", 0}, {"gridY", 1}}},
				{Name: ObjectPortal, Properties: []Property{{"pairId", "a"}, {"gridX", 4}, {"gridY", 3}}},
			},
			want: []Point{{X: 0, Y: 1}, {X: 4, Y: 3}},
		},
		{
			name: "incomplete pair falls back to scan",
			objects: []MapObject{
				{Name: ObjectPortal, Properties: []Property{{"pairId", "a"}, {"gridX", 0}, {"gridY", 1}}},
				{Name: ObjectPortal, Properties: []Property{{"pairId", "b"}, {"gridX", 4}, {"gridY", 3}}},
			},
			want: []Point{{X: 0, Y: 1}, {X: 4, Y: 1}, {X: 0, Y: 3}, {X: 4, Y: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testMap(
				"#####",
				"T...T",
				"#...#",
				"T...T",
				"#####",
			)
			m.Objects = tt.objects
			var got []Point
			for _, p := range ResolvePortalPairs(m, m.Grid()) {
				got = append(got, p.A, p.B)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
