package cell_views

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/g2mo/A-star-pathfinding/server/fastview"

	channerics "github.com/niceyeti/channerics/channels"
)

// ReadoutView is the numeric panel beside the board: the step counter, the
// coordinate being expanded with its scores, the frontier size, and the
// replay phase. The run's totals render once and never update.
type ReadoutView struct {
	id      string
	updates <-chan []fastview.EleUpdate
}

func NewReadoutView(done <-chan struct{}, frames <-chan Frame) *ReadoutView {
	rv := &ReadoutView{id: "readout"}
	rv.updates = channerics.Convert(done, frames, rv.onFrame)
	return rv
}

func (rv *ReadoutView) Updates() <-chan []fastview.EleUpdate {
	return rv.updates
}

func (rv *ReadoutView) onFrame(frame Frame) []fastview.EleUpdate {
	text := func(id, value string) fastview.EleUpdate {
		return fastview.EleUpdate{
			EleId: id,
			Ops:   []fastview.Op{{Key: "textContent", Value: value}},
		}
	}
	return []fastview.EleUpdate{
		text("readout-step", fmt.Sprintf("%d / %d", frame.Step, frame.Total)),
		text("readout-current", frame.Current),
		text("readout-scores", fmt.Sprintf("g=%d h=%d f=%d", frame.G, frame.H, frame.F)),
		text("readout-frontier", strconv.Itoa(frame.FrontierSize)),
		text("readout-status", frame.Status),
	}
}

func (rv *ReadoutView) Parse(t *template.Template) (name string, err error) {
	name = rv.id
	_, err = t.Parse(`{{ define "` + name + `" }}
<div id="` + rv.id + `" style="font-family: monospace; padding: 8px;">
	<p>evaluated {{ .Evaluated }} cells, peak frontier {{ .MaxFrontier }}</p>
	<p>step <span id="readout-step">{{ .Step }} / {{ .Total }}</span></p>
	<p>expanding <span id="readout-current">{{ .Current }}</span>
		<span id="readout-scores">g={{ .G }} h={{ .H }} f={{ .F }}</span></p>
	<p>frontier <span id="readout-frontier">{{ .FrontierSize }}</span></p>
	<p><span id="readout-status">{{ .Status }}</span></p>
</div>
{{ end }}`)
	return
}
