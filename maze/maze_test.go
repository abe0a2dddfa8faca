package maze

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/g2mo/A-star-pathfinding/astar"
	"github.com/g2mo/A-star-pathfinding/grid_world"
)

func TestSample(t *testing.T) {
	Convey("When the sample board is requested", t, func() {
		cells := Sample()

		Convey("It is the fixed 8x8 layout with open corners", func() {
			So(cells, ShouldHaveLength, 8)
			for _, row := range cells {
				So(row, ShouldHaveLength, 8)
			}
			So(cells[0][0], ShouldEqual, 0)
			So(cells[7][7], ShouldEqual, 0)
			So(cells[1][1], ShouldEqual, 1)
			So(cells[5][4], ShouldEqual, 0)
		})
	})
}

func TestMaze2D(t *testing.T) {
	Convey("When planar mazes are generated", t, func() {
		Convey("The board has the requested extent", func() {
			cells := New(1).Maze2D(25, 15)
			So(cells, ShouldHaveLength, 15)
			for _, row := range cells {
				So(row, ShouldHaveLength, 25)
			}
		})

		Convey("The endpoint areas are cleared", func() {
			cells := New(2).Maze2D(25, 15)
			So(cells[0][0], ShouldEqual, 0)
			So(cells[0][1], ShouldEqual, 0)
			So(cells[1][0], ShouldEqual, 0)
			So(cells[1][1], ShouldEqual, 0)
			So(cells[14][24], ShouldEqual, 0)
			So(cells[13][23], ShouldEqual, 0)
		})

		Convey("The same seed reproduces the same board", func() {
			So(New(42).Maze2D(25, 15), ShouldResemble, New(42).Maze2D(25, 15))
		})

		Convey("A corner to corner route exists for every seed tried", func() {
			for seed := int64(1); seed <= 8; seed++ {
				g, err := grid_world.New2D(New(seed).Maze2D(25, 15))
				So(err, ShouldBeNil)

				res, err := astar.FindPath(g, grid_world.XY(0, 0), grid_world.XY(14, 24))
				So(err, ShouldBeNil)
				So(res.Path, ShouldNotBeNil)
			}
		})
	})
}

func TestAddRandomPaths2D(t *testing.T) {
	Convey("When extra paths are knocked into a carved maze", t, func() {
		gen := New(3)
		cells := gen.Maze2D(25, 15)

		border := func(grid [][]int) (blocked int) {
			for x := range grid {
				for y := range grid[x] {
					if x == 0 || y == 0 || x == len(grid)-1 || y == len(grid[x])-1 {
						blocked += grid[x][y]
					}
				}
			}
			return
		}
		open := func(grid [][]int) (count int) {
			for x := range grid {
				for y := range grid[x] {
					if grid[x][y] == 0 {
						count++
					}
				}
			}
			return
		}

		borderBefore, openBefore := border(cells), open(cells)
		gen.AddRandomPaths2D(cells, 0.25)

		Convey("Open cells never decrease and the border is untouched", func() {
			So(open(cells), ShouldBeGreaterThanOrEqualTo, openBefore)
			So(border(cells), ShouldEqual, borderBefore)
		})

		Convey("A non-positive share changes nothing", func() {
			snapshot := New(3).Maze2D(25, 15)
			New(9).AddRandomPaths2D(snapshot, 0)
			So(snapshot, ShouldResemble, New(3).Maze2D(25, 15))
		})
	})
}

func TestMaze3D(t *testing.T) {
	Convey("When volumes are generated", t, func() {
		Convey("The volume has the requested extent", func() {
			cells := New(1).Maze3D(8, 8, 8)
			So(cells, ShouldHaveLength, 8)
			for _, layer := range cells {
				So(layer, ShouldHaveLength, 8)
				for _, row := range layer {
					So(row, ShouldHaveLength, 8)
				}
			}
		})

		Convey("The corner regions are cleared", func() {
			cells := New(2).Maze3D(8, 8, 8)
			So(cells[0][0][0], ShouldEqual, 0)
			So(cells[1][1][1], ShouldEqual, 0)
			So(cells[7][7][7], ShouldEqual, 0)
			So(cells[6][6][6], ShouldEqual, 0)
		})

		Convey("The same seed reproduces the same volume", func() {
			So(New(42).Maze3D(8, 8, 8), ShouldResemble, New(42).Maze3D(8, 8, 8))
		})

		Convey("The volume's outer edges are never obstructed", func() {
			cells := New(5).Maze3D(8, 8, 8)
			clean := true
			for x := 0; x < 8; x++ {
				if cells[x][0][0] != 0 || cells[x][7][0] != 0 {
					clean = false
				}
			}
			for y := 0; y < 8; y++ {
				if cells[7][y][0] != 0 || cells[0][y][7] != 0 {
					clean = false
				}
			}
			So(clean, ShouldBeTrue)
		})

		Convey("A corner to corner route exists for every seed tried", func() {
			for seed := int64(1); seed <= 8; seed++ {
				gen := New(seed)
				cells := gen.Maze3D(8, 8, 8)
				gen.AddRandomPaths3D(cells, 0.25)

				g, err := grid_world.New3D(cells)
				So(err, ShouldBeNil)

				res, err := astar.FindPath(g, grid_world.XYZ(0, 0, 0), grid_world.XYZ(7, 7, 7))
				So(err, ShouldBeNil)
				So(res.Path, ShouldNotBeNil)
			}
		})
	})
}
