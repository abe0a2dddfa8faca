package cell_views

import (
	"html/template"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/g2mo/A-star-pathfinding/astar"
	"github.com/g2mo/A-star-pathfinding/grid_world"
	"github.com/g2mo/A-star-pathfinding/server/fastview"
	"github.com/g2mo/A-star-pathfinding/visualization"
)

func solvedMoment(t *testing.T, rows [][]int, start, goal grid_world.Coord) Moment {
	t.Helper()
	g, err := grid_world.New2D(rows)
	if err != nil {
		t.Fatal(err)
	}
	res, err := astar.FindPath(g, start, goal)
	if err != nil {
		t.Fatal(err)
	}
	return Moment{Grid: g, Result: res, Start: start, Goal: goal}
}

func recvUpdates(t *testing.T, ch <-chan []fastview.EleUpdate) []fastview.EleUpdate {
	t.Helper()
	select {
	case updates := <-ch:
		return updates
	case <-time.After(time.Second):
		t.Fatal("no update batch within a second")
		return nil
	}
}

// findOp returns the value of the (element, key) operation in a batch, or
// false when the batch never touches it.
func findOp(updates []fastview.EleUpdate, eleId, key string) (string, bool) {
	for _, update := range updates {
		if update.EleId != eleId {
			continue
		}
		for _, op := range update.Ops {
			if op.Key == key {
				return op.Value, true
			}
		}
	}
	return "", false
}

func css(c [3]float64) string { return visualization.CSS(c) }

func TestConvert(t *testing.T) {
	Convey("Given a solved two by two board", t, func() {
		m := solvedMoment(t, [][]int{{0, 0}, {0, 0}}, grid_world.XY(0, 0), grid_world.XY(1, 1))

		Convey("A mid-search frame carries that evaluation's readout values", func() {
			m.Index = 2
			frame := Convert(m)

			So(frame.Cells, ShouldHaveLength, 2)
			So(frame.Cells[0], ShouldHaveLength, 2)
			So(frame.CellDim, ShouldEqual, 28)
			So(frame.Step, ShouldEqual, 3)
			So(frame.Total, ShouldEqual, 4)
			So(frame.Current, ShouldEqual, "1,0")
			So(frame.G, ShouldEqual, 1)
			So(frame.H, ShouldEqual, 1)
			So(frame.F, ShouldEqual, 2)
			So(frame.FrontierSize, ShouldEqual, 2)
			So(frame.Status, ShouldEqual, "searching")
			So(frame.Evaluated, ShouldEqual, 4)
			So(frame.MaxFrontier, ShouldEqual, 2)
		})

		Convey("Cells paint explored, current, and endpoint colors", func() {
			m.Index = 2
			frame := Convert(m)

			So(frame.Cells[0][0].Fill, ShouldEqual, css(visualization.Palette.Start))
			So(frame.Cells[0][1].Fill, ShouldEqual, css(visualization.Palette.Explored))
			So(frame.Cells[1][0].Fill, ShouldEqual, css(visualization.Palette.Current))
			So(frame.Cells[1][1].Fill, ShouldEqual, css(visualization.Palette.Goal))
		})

		Convey("The path phase paints the path and reports its length", func() {
			m.Index = len(m.Result.Snapshots) - 1
			m.ShowPath = true
			frame := Convert(m)

			So(frame.Status, ShouldEqual, "shortest path length 3")
			So(frame.Cells[0][1].Fill, ShouldEqual, css(visualization.Palette.Path))
			So(frame.Cells[0][0].Fill, ShouldEqual, css(visualization.Palette.Start))
			So(frame.Cells[1][1].Fill, ShouldEqual, css(visualization.Palette.Goal))
		})

		Convey("Learning mode labels frontier cells with f scores", func() {
			m.Index = 1
			m.Learning = true
			frame := Convert(m)

			So(frame.Cells[0][1].Label, ShouldEqual, "2")
			So(frame.Cells[1][0].Label, ShouldEqual, "2")

			m.Learning = false
			plain := Convert(m)
			So(plain.Cells[0][1].Label, ShouldEqual, "")
			So(plain.Cells[1][0].Label, ShouldEqual, "")
		})
	})

	Convey("Given a board with an obstacle", t, func() {
		m := solvedMoment(t, [][]int{{0, 1}, {0, 0}}, grid_world.XY(0, 0), grid_world.XY(1, 1))
		frame := Convert(m)

		Convey("Blocked cells keep the wall color", func() {
			So(frame.Cells[0][1].Fill, ShouldEqual, css(visualization.Palette.Wall))
		})
	})

	Convey("Given an unreachable goal", t, func() {
		m := solvedMoment(t,
			[][]int{{0, 0, 1}, {1, 1, 1}, {1, 1, 0}},
			grid_world.XY(0, 0), grid_world.XY(2, 2))
		m.Index = len(m.Result.Snapshots) - 1
		m.ShowPath = true
		frame := Convert(m)

		Convey("The path phase reports the exhaustion", func() {
			So(m.Result.Path, ShouldBeNil)
			So(frame.Status, ShouldEqual, "no path exists")
		})
	})
}

func TestConvertVolume(t *testing.T) {
	Convey("Given a solved two by two by two volume", t, func() {
		layers := [][][]int{
			{{0, 0}, {0, 0}},
			{{0, 0}, {0, 0}},
		}
		g, err := grid_world.New3D(layers)
		So(err, ShouldBeNil)
		start, goal := grid_world.XYZ(0, 0, 0), grid_world.XYZ(1, 1, 1)
		res, err := astar.FindPath(g, start, goal)
		So(err, ShouldBeNil)

		frame := Convert(Moment{Grid: g, Result: res, Start: start, Goal: goal})

		Convey("Layers lie side by side on the sheet", func() {
			So(frame.Cells, ShouldHaveLength, 2)
			So(frame.Cells[0], ShouldHaveLength, 4)
			So(frame.CellDim, ShouldEqual, 16)
		})

		Convey("Endpoints land on their layer panels", func() {
			So(frame.Cells[0][0].Fill, ShouldEqual, css(visualization.Palette.Start))
			So(frame.Cells[1][3].Fill, ShouldEqual, css(visualization.Palette.Goal))
		})
	})
}

func TestBoardView(t *testing.T) {
	Convey("Given a board view fed one frame", t, func() {
		m := solvedMoment(t, [][]int{{0, 0}, {0, 0}}, grid_world.XY(0, 0), grid_world.XY(1, 1))
		m.Index = 2

		done := make(chan struct{})
		defer close(done)
		frames := make(chan Frame, 1)
		bv := NewBoardView(done, frames)
		frames <- Convert(m)
		updates := recvUpdates(t, bv.Updates())

		Convey("Every cell gets a fill and a label update", func() {
			So(updates, ShouldHaveLength, 8)
		})

		Convey("Update ids address cells by column and row", func() {
			fill, ok := findOp(updates, "cell-0-0", "fill")
			So(ok, ShouldBeTrue)
			So(fill, ShouldEqual, css(visualization.Palette.Start))

			fill, ok = findOp(updates, "cell-1-0", "fill")
			So(ok, ShouldBeTrue)
			So(fill, ShouldEqual, css(visualization.Palette.Explored))

			fill, ok = findOp(updates, "cell-0-1", "fill")
			So(ok, ShouldBeTrue)
			So(fill, ShouldEqual, css(visualization.Palette.Current))

			_, ok = findOp(updates, "label-1-1", "textContent")
			So(ok, ShouldBeTrue)
		})
	})

	Convey("The board template renders rects and labels for every cell", t, func() {
		m := solvedMoment(t, [][]int{{0, 0}, {0, 0}}, grid_world.XY(0, 0), grid_world.XY(1, 1))

		done := make(chan struct{})
		defer close(done)
		bv := NewBoardView(done, make(chan Frame))

		tmpl := template.New("page").Funcs(template.FuncMap{
			"add":  func(i, j int) int { return i + j },
			"mult": func(i, j int) int { return i * j },
			"div":  func(i, j int) int { return i / j },
		})
		name, err := bv.Parse(tmpl)
		So(err, ShouldBeNil)
		So(name, ShouldEqual, "board")

		var sb strings.Builder
		So(tmpl.ExecuteTemplate(&sb, name, Convert(m)), ShouldBeNil)
		page := sb.String()
		So(page, ShouldContainSubstring, "<svg")
		So(page, ShouldContainSubstring, `id="cell-0-0"`)
		So(page, ShouldContainSubstring, `id="cell-1-1"`)
		So(page, ShouldContainSubstring, `id="label-0-1"`)
	})
}

func TestReadoutView(t *testing.T) {
	Convey("Given a readout view fed one frame", t, func() {
		m := solvedMoment(t, [][]int{{0, 0}, {0, 0}}, grid_world.XY(0, 0), grid_world.XY(1, 1))
		m.Index = 2

		done := make(chan struct{})
		defer close(done)
		frames := make(chan Frame, 1)
		rv := NewReadoutView(done, frames)
		frames <- Convert(m)
		updates := recvUpdates(t, rv.Updates())

		Convey("It reports the step, scores, frontier size, and status", func() {
			step, ok := findOp(updates, "readout-step", "textContent")
			So(ok, ShouldBeTrue)
			So(step, ShouldEqual, "3 / 4")

			current, ok := findOp(updates, "readout-current", "textContent")
			So(ok, ShouldBeTrue)
			So(current, ShouldEqual, "1,0")

			scores, ok := findOp(updates, "readout-scores", "textContent")
			So(ok, ShouldBeTrue)
			So(scores, ShouldEqual, "g=1 h=1 f=2")

			frontier, ok := findOp(updates, "readout-frontier", "textContent")
			So(ok, ShouldBeTrue)
			So(frontier, ShouldEqual, "2")

			status, ok := findOp(updates, "readout-status", "textContent")
			So(ok, ShouldBeTrue)
			So(status, ShouldEqual, "searching")
		})
	})

	Convey("The readout template renders the run totals", t, func() {
		m := solvedMoment(t, [][]int{{0, 0}, {0, 0}}, grid_world.XY(0, 0), grid_world.XY(1, 1))

		done := make(chan struct{})
		defer close(done)
		rv := NewReadoutView(done, make(chan Frame))

		tmpl := template.New("page")
		name, err := rv.Parse(tmpl)
		So(err, ShouldBeNil)
		So(name, ShouldEqual, "readout")

		var sb strings.Builder
		So(tmpl.ExecuteTemplate(&sb, name, Convert(m)), ShouldBeNil)
		page := sb.String()
		So(page, ShouldContainSubstring, "evaluated 4 cells, peak frontier 2")
		So(page, ShouldContainSubstring, `id="readout-status"`)
	})
}
