package game

import "encoding/json"

// Direction is one of the four cardinal movement directions, or DirNone.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// cardinal is the fixed enumeration order used wherever directions are scanned.
var cardinal = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection maps a wire name to a Direction. Unknown names yield DirNone.
func ParseDirection(s string) Direction {
	switch s {
	case "up":
		return DirUp
	case "down":
		return DirDown
	case "left":
		return DirLeft
	case "right":
		return DirRight
	default:
		return DirNone
	}
}

// MarshalJSON serializes Direction as a string.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON deserializes Direction from a string.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = ParseDirection(s)
	return nil
}

// Opposite returns the reverse direction. DirNone is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// Delta returns the unit grid step for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) IsHorizontal() bool {
	return d == DirLeft || d == DirRight
}

func (d Direction) IsVertical() bool {
	return d == DirUp || d == DirDown
}

// Perpendicular returns the two directions at right angles to d.
// For DirNone it returns all four cardinal directions.
func (d Direction) Perpendicular() []Direction {
	switch {
	case d.IsHorizontal():
		return []Direction{DirUp, DirDown}
	case d.IsVertical():
		return []Direction{DirLeft, DirRight}
	default:
		return []Direction{DirUp, DirDown, DirLeft, DirRight}
	}
}

// Point is an integer tile coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the neighbor of p in direction d.
func (p Point) Step(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Vec is a float vector, used for sub-tile offsets and world positions.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Along returns the signed component of v in direction d: positive when v
// points the same way as d.
func (v Vec) Along(d Direction) float64 {
	switch d {
	case DirUp:
		return -v.Y
	case DirDown:
		return v.Y
	case DirLeft:
		return -v.X
	case DirRight:
		return v.X
	default:
		return 0
	}
}

// Across returns the component of v on the axis perpendicular to d.
func (v Vec) Across(d Direction) float64 {
	if d.IsHorizontal() {
		return v.Y
	}
	return v.X
}
