// Package grid_world defines the spatial vocabulary of the pathfinder: lattice
// coordinates, bounded occupancy grids built from raw cell arrays, and the
// movement topologies (four-way planar, six-way volumetric) a search walks.
package grid_world

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidShape is returned when a cell array is empty or ragged.
var ErrInvalidShape = errors.New("grid cells must form a non-empty rectangular array")

// Coord is a lattice position of two or three components. The zero number of
// components is invalid; build coordinates with XY, XYZ, or FromSlice. Coords
// are comparable and usable as map keys, and two coordinates of different
// arity never compare equal, e.g. XY(1, 2) != XYZ(1, 2, 0).
type Coord struct {
	X, Y, Z int
	arity   uint8
}

// XY returns a two dimensional coordinate.
func XY(x, y int) Coord {
	return Coord{X: x, Y: y, arity: 2}
}

// XYZ returns a three dimensional coordinate.
func XYZ(x, y, z int) Coord {
	return Coord{X: x, Y: y, Z: z, arity: 3}
}

// FromSlice builds a coordinate from two or three components.
func FromSlice(vals []int) (Coord, error) {
	switch len(vals) {
	case 2:
		return XY(vals[0], vals[1]), nil
	case 3:
		return XYZ(vals[0], vals[1], vals[2]), nil
	}
	return Coord{}, fmt.Errorf("coordinate requires 2 or 3 components, got %d", len(vals))
}

// Arity returns the number of components, 2 or 3.
func (c Coord) Arity() int {
	return int(c.arity)
}

func (c Coord) String() string {
	if c.arity == 3 {
		return fmt.Sprintf("%d,%d,%d", c.X, c.Y, c.Z)
	}
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// MarshalText renders the coordinate in its "x,y" or "x,y,z" form, which also
// makes Coord usable as a json map key.
func (c Coord) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses the form produced by MarshalText.
func (c *Coord) UnmarshalText(text []byte) (err error) {
	parts := strings.Split(string(text), ",")
	vals := make([]int, 0, len(parts))
	for _, p := range parts {
		var v int
		if v, err = strconv.Atoi(strings.TrimSpace(p)); err != nil {
			return fmt.Errorf("bad coordinate %q: %w", string(text), err)
		}
		vals = append(vals, v)
	}
	*c, err = FromSlice(vals)
	return
}

// Grid is an immutable occupancy volume. Cells are addressed by Coord and are
// either open or blocked; every query outside the extent, including queries
// of the wrong arity, reports not walkable.
type Grid struct {
	extent  []int
	blocked []bool
}

// New2D builds a grid from rows of occupancy values, zero meaning open and
// anything else blocked. The first index selects the row and the second the
// column, so a grid of H rows by W columns has extent [H, W]. The input is
// copied.
func New2D(rows [][]int) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("no cells: %w", ErrInvalidShape)
	}

	cols := len(rows[0])
	g := &Grid{
		extent:  []int{len(rows), cols},
		blocked: make([]bool, len(rows)*cols),
	}
	for x, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", x, len(row), cols, ErrInvalidShape)
		}
		for y, v := range row {
			if v != 0 {
				g.blocked[x*cols+y] = true
			}
		}
	}
	return g, nil
}

// New3D builds a grid from layers of occupancy rows, indexed [x][y][z], so a
// volume of D layers by H rows by W columns has extent [D, H, W]. The input
// is copied.
func New3D(layers [][][]int) (*Grid, error) {
	if len(layers) == 0 || len(layers[0]) == 0 || len(layers[0][0]) == 0 {
		return nil, fmt.Errorf("no cells: %w", ErrInvalidShape)
	}

	rows, cols := len(layers[0]), len(layers[0][0])
	g := &Grid{
		extent:  []int{len(layers), rows, cols},
		blocked: make([]bool, len(layers)*rows*cols),
	}
	for x, layer := range layers {
		if len(layer) != rows {
			return nil, fmt.Errorf("layer %d has %d rows, want %d: %w", x, len(layer), rows, ErrInvalidShape)
		}
		for y, row := range layer {
			if len(row) != cols {
				return nil, fmt.Errorf("layer %d row %d has %d cells, want %d: %w", x, y, len(row), cols, ErrInvalidShape)
			}
			for z, v := range row {
				if v != 0 {
					g.blocked[(x*rows+y)*cols+z] = true
				}
			}
		}
	}
	return g, nil
}

// Dims returns the number of axes, 2 or 3.
func (g *Grid) Dims() int {
	return len(g.extent)
}

// Extent returns the cell count along each axis.
func (g *Grid) Extent() []int {
	ext := make([]int, len(g.extent))
	copy(ext, g.extent)
	return ext
}

// InBounds reports whether c addresses a cell of the grid. A coordinate whose
// arity differs from the grid's is never in bounds.
func (g *Grid) InBounds(c Coord) bool {
	if c.Arity() != len(g.extent) {
		return false
	}
	if c.X < 0 || c.X >= g.extent[0] || c.Y < 0 || c.Y >= g.extent[1] {
		return false
	}
	if len(g.extent) == 3 && (c.Z < 0 || c.Z >= g.extent[2]) {
		return false
	}
	return true
}

// Walkable reports whether c is an open cell inside the grid.
func (g *Grid) Walkable(c Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	return !g.blocked[g.index(c)]
}

func (g *Grid) index(c Coord) int {
	if len(g.extent) == 3 {
		return (c.X*g.extent[1]+c.Y)*g.extent[2] + c.Z
	}
	return c.X*g.extent[1] + c.Y
}

// Topology describes movement over a fixed number of axes: the unit moves
// available from a cell, in a fixed order so searches are reproducible, and
// the distance those moves induce.
type Topology interface {
	Dims() int
	// Neighbors returns the adjacent lattice positions of c in a fixed
	// canonical order. Bounds are the grid's concern, not the topology's.
	Neighbors(c Coord) []Coord
	// Distance is the minimal number of unit moves between a and b on an
	// unobstructed lattice, i.e. the manhattan distance.
	Distance(a, b Coord) int
}

// TopologyFor returns the movement rules for a 2 or 3 axis world, or nil for
// any other dimensionality.
func TopologyFor(dims int) Topology {
	switch dims {
	case 2:
		return fourWay{}
	case 3:
		return sixWay{}
	}
	return nil
}

// fourWay is planar movement: one step along either axis, no diagonals.
type fourWay struct{}

var planarOffsets = []Coord{XY(0, 1), XY(1, 0), XY(0, -1), XY(-1, 0)}

func (fourWay) Dims() int {
	return 2
}

func (fourWay) Neighbors(c Coord) []Coord {
	adjacent := make([]Coord, len(planarOffsets))
	for i, d := range planarOffsets {
		adjacent[i] = XY(c.X+d.X, c.Y+d.Y)
	}
	return adjacent
}

func (fourWay) Distance(a, b Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// sixWay is volumetric movement: one step along any of the three axes.
type sixWay struct{}

var volumetricOffsets = []Coord{
	XYZ(1, 0, 0), XYZ(-1, 0, 0),
	XYZ(0, 1, 0), XYZ(0, -1, 0),
	XYZ(0, 0, 1), XYZ(0, 0, -1),
}

func (sixWay) Dims() int {
	return 3
}

func (sixWay) Neighbors(c Coord) []Coord {
	adjacent := make([]Coord, len(volumetricOffsets))
	for i, d := range volumetricOffsets {
		adjacent[i] = XYZ(c.X+d.X, c.Y+d.Y, c.Z+d.Z)
	}
	return adjacent
}

func (sixWay) Distance(a, b Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y) + abs(a.Z-b.Z)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
