package cell_views

import (
	"fmt"
	"html/template"

	"github.com/g2mo/A-star-pathfinding/server/fastview"

	channerics "github.com/niceyeti/channerics/channels"
)

// BoardView renders the board as an svg sheet of rectangles, one per cell,
// each with a text label used by learning mode. Every frame repaints every
// cell, so the element ids laid down by the template never change.
type BoardView struct {
	id      string
	updates <-chan []fastview.EleUpdate
}

func NewBoardView(done <-chan struct{}, frames <-chan Frame) *BoardView {
	bv := &BoardView{id: "board"}
	bv.updates = channerics.Convert(done, frames, bv.onFrame)
	return bv
}

func (bv *BoardView) Updates() <-chan []fastview.EleUpdate {
	return bv.updates
}

func (bv *BoardView) onFrame(frame Frame) []fastview.EleUpdate {
	updates := make([]fastview.EleUpdate, 0, 2*len(frame.Cells)*len(frame.Cells[0]))
	for _, row := range frame.Cells {
		for _, cell := range row {
			updates = append(updates, fastview.EleUpdate{
				EleId: cellId(cell),
				Ops:   []fastview.Op{{Key: "fill", Value: cell.Fill}},
			})
			updates = append(updates, fastview.EleUpdate{
				EleId: labelId(cell),
				Ops:   []fastview.Op{{Key: "textContent", Value: cell.Label}},
			})
		}
	}
	return updates
}

func cellId(cell Cell) string {
	return fmt.Sprintf("cell-%d-%d", cell.X, cell.Y)
}

func labelId(cell Cell) string {
	return fmt.Sprintf("label-%d-%d", cell.X, cell.Y)
}

// Parse adds the board template. The rects lay down the fills; the text
// elements follow them so labels draw on top.
func (bv *BoardView) Parse(t *template.Template) (name string, err error) {
	name = bv.id
	_, err = t.Parse(`{{ define "` + name + `" }}
<div id="` + bv.id + `">
	{{ $dim := .CellDim }}
	{{ $cols := len (index .Cells 0) }}
	{{ $rows := len .Cells }}
	<svg xmlns="http://www.w3.org/2000/svg"
		width="{{ mult $cols $dim }}px"
		height="{{ mult $rows $dim }}px">
		{{ range $row := .Cells }}
		{{ range $cell := $row }}
		<rect
			id="cell-{{ $cell.X }}-{{ $cell.Y }}"
			x="{{ mult $cell.X $dim }}"
			y="{{ mult $cell.Y $dim }}"
			width="{{ $dim }}"
			height="{{ $dim }}"
			fill="{{ $cell.Fill }}"
			stroke="#c8c8c8"
			stroke-width="1"></rect>
		{{ end }}
		{{ end }}
		{{ range $row := .Cells }}
		{{ range $cell := $row }}
		<text
			id="label-{{ $cell.X }}-{{ $cell.Y }}"
			x="{{ add (mult $cell.X $dim) (div $dim 2) }}"
			y="{{ add (mult $cell.Y $dim) (add (div $dim 2) 4) }}"
			font-size="{{ div $dim 2 }}"
			text-anchor="middle"
			fill="#303030">{{ $cell.Label }}</text>
		{{ end }}
		{{ end }}
	</svg>
</div>
{{ end }}`)
	return
}
