package main

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/g2mo/A-star-pathfinding/config"
	"github.com/g2mo/A-star-pathfinding/grid_world"
)

func TestParseCoord(t *testing.T) {
	Convey("Comma separated components parse into slices", t, func() {
		comps, err := parseCoord("3,4")
		So(err, ShouldBeNil)
		So(comps, ShouldResemble, []int{3, 4})

		comps, err = parseCoord("1, 2, 3")
		So(err, ShouldBeNil)
		So(comps, ShouldResemble, []int{1, 2, 3})
	})

	Convey("Junk is rejected", t, func() {
		_, err := parseCoord("x,1")
		So(err, ShouldNotBeNil)

		_, err = parseCoord("")
		So(err, ShouldNotBeNil)
	})
}

func TestBuildGrid(t *testing.T) {
	Convey("Each scenario kind yields a board of the configured shape", t, func() {
		Convey("The sample board is always eight by eight", func() {
			g, err := buildGrid(&config.Config{Kind: config.KindSample})
			So(err, ShouldBeNil)
			So(g.Extent(), ShouldResemble, []int{8, 8})
		})

		Convey("A 2d maze lays out height rows of width cells", func() {
			g, err := buildGrid(&config.Config{
				Kind: config.KindMaze2D,
				Maze: config.MazeConfig{Width: 11, Height: 7, Seed: 5, ExtraPaths: -1},
			})
			So(err, ShouldBeNil)
			So(g.Extent(), ShouldResemble, []int{7, 11})
		})

		Convey("A 3d maze lays out depth layers of height by width", func() {
			g, err := buildGrid(&config.Config{
				Kind: config.KindMaze3D,
				Maze: config.MazeConfig{Width: 4, Height: 5, Depth: 6, Seed: 5, ExtraPaths: -1},
			})
			So(err, ShouldBeNil)
			So(g.Extent(), ShouldResemble, []int{6, 5, 4})
		})

		Convey("The same seed reproduces the same board", func() {
			cfg := &config.Config{
				Kind: config.KindMaze2D,
				Maze: config.MazeConfig{Width: 9, Height: 9, Seed: 12},
			}
			first, err := buildGrid(cfg)
			So(err, ShouldBeNil)
			second, err := buildGrid(cfg)
			So(err, ShouldBeNil)
			So(first, ShouldResemble, second)
		})
	})
}

func TestEndpoints(t *testing.T) {
	Convey("Given the sample scenario board", t, func() {
		cfg := &config.Config{Kind: config.KindSample}
		g, err := buildGrid(cfg)
		So(err, ShouldBeNil)

		Convey("Defaults run corner to corner", func() {
			start, goal, err := endpoints(cfg, g)
			So(err, ShouldBeNil)
			So(start, ShouldResemble, grid_world.XY(0, 0))
			So(goal, ShouldResemble, grid_world.XY(7, 7))
		})

		Convey("Flags override the config", func() {
			*startFlag = "2,2"
			*goalFlag = "5,5"
			defer func() { *startFlag, *goalFlag = "", "" }()

			start, goal, err := endpoints(cfg, g)
			So(err, ShouldBeNil)
			So(start, ShouldResemble, grid_world.XY(2, 2))
			So(goal, ShouldResemble, grid_world.XY(5, 5))
		})

		Convey("Malformed flag coordinates surface as errors", func() {
			*goalFlag = "5,north"
			defer func() { *goalFlag = "" }()

			_, _, err := endpoints(cfg, g)
			So(err, ShouldNotBeNil)
		})
	})
}
