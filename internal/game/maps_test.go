package game

// Inline maps for tests. Symbols:
//
//	#  wall        (id 1)
//	.  floor       (id 2)
//	-  pen gate    (id 3)
//	_  pen floor   (id 4)
//	T  portal      (id 5)
//	o  floor       (id 6)
//	   void        (id 0)
var testLegend = map[rune]struct {
	id   int
	tile Tile
}{
	'#': {1, Tile{Collides: true, Up: true, Down: true, Left: true, Right: true}},
	'.': {2, Tile{}},
	'-': {3, Tile{PenGate: true, Up: true, Down: true}},
	'_': {4, Tile{}},
	'T': {5, Tile{Portal: true}},
	'o': {6, Tile{}},
}

var wall = testLegend['#'].tile

func testMap(rows ...string) *MapData {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	m := &MapData{
		Name:     "test",
		Width:    width,
		Height:   len(rows),
		TileSize: DefaultTileSize,
		TileIDs:  make([][]int, len(rows)),
		Tiles:    make([][]Tile, len(rows)),
	}
	for y, row := range rows {
		m.TileIDs[y] = make([]int, width)
		m.Tiles[y] = make([]Tile, width)
		for x, r := range row {
			s, ok := testLegend[r]
			if !ok {
				continue
			}
			m.TileIDs[y][x] = s.id
			m.Tiles[y][x] = s.tile
		}
	}
	return m
}

func withObject(m *MapData, name string, props ...Property) *MapData {
	m.Objects = append(m.Objects, MapObject{Name: name, Properties: props})
	return m
}

// penMap has a three-wide pen below a row of gates, ringed by a corridor.
func penMap() *MapData {
	return testMap(
		"#########",
		"#.......#",
		"#.#---#.#",
		"#.#___#.#",
		"#.#####.#",
		"#.......#",
		"#########",
	)
}

// tunnelMaze is a small maze with junctions and a wrap-around tunnel on row 5.
func tunnelMaze() *MapData {
	return testMap(
		"###########",
		"#....#....#",
		"#.##.#.##.#",
		"#.........#",
		"#.##.#.##.#",
		"T....#....T",
		"#.##...##.#",
		"#.........#",
		"###########",
	)
}

// openRoom is a 12x12 walled room with a 10x10 open floor.
func openRoom() *MapData {
	rows := []string{"############"}
	for i := 0; i < 10; i++ {
		rows = append(rows, "#..........#")
	}
	rows = append(rows, "############")
	return testMap(rows...)
}

// seqRand replays fixed IntN results.
type seqRand struct {
	ints []int
	i    int
}

func (r *seqRand) IntN(n int) int {
	v := r.ints[r.i%len(r.ints)] % n
	r.i++
	return v
}

func (r *seqRand) Float64() float64 { return 0 }
