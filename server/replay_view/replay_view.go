// Package replay_view assembles the replay page: the board and readout
// components wired to a stream of replay moments, plus the index.html shell
// whose bootstrap script applies their element updates over a websocket.
package replay_view

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/g2mo/A-star-pathfinding/server/cell_views"
	"github.com/g2mo/A-star-pathfinding/server/fastview"

	channerics "github.com/niceyeti/channerics/channels"
)

// batchWindow is how long element updates accumulate before a batch is
// flushed. Within one window later writes to an element replace earlier
// ones, so a client only ever applies the newest value.
const batchWindow = 15 * time.Millisecond

// ReplayView owns the page's view components and their aggregated update
// stream.
type ReplayView struct {
	views   []fastview.ViewComponent
	updates <-chan []fastview.EleUpdate
}

// NewReplayView builds the board and readout views over a stream of replay
// moments. The views live until ctx is done or the moment stream closes.
func NewReplayView(
	ctx context.Context,
	moments <-chan cell_views.Moment,
) (*ReplayView, error) {
	views, err := fastview.NewViewBuilder[cell_views.Moment, cell_views.Frame]().
		WithContext(ctx).
		WithModel(moments, cell_views.Convert).
		WithView(func(
			done <-chan struct{},
			frames <-chan cell_views.Frame) fastview.ViewComponent {
			return cell_views.NewBoardView(done, frames)
		}).
		WithView(func(
			done <-chan struct{},
			frames <-chan cell_views.Frame) fastview.ViewComponent {
			return cell_views.NewReadoutView(done, frames)
		}).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build replay views: %w", err)
	}

	return &ReplayView{
		views:   views,
		updates: fanIn(ctx.Done(), views),
	}, nil
}

// Updates returns the merged, batched element updates of every view.
func (rv *ReplayView) Updates() <-chan []fastview.EleUpdate {
	return rv.updates
}

// Parse builds the page template: the func-map the child components expect,
// the components themselves, and the index.html shell that nests them and
// bootstraps the websocket.
func (rv *ReplayView) Parse(
	parent *template.Template,
) (name string, err error) {
	root := parent.Funcs(
		template.FuncMap{
			"add":  func(i, j int) int { return i + j },
			"sub":  func(i, j int) int { return i - j },
			"mult": func(i, j int) int { return i * j },
			"div":  func(i, j int) int { return i / j },
			"max": func(i, j int) int {
				if i > j {
					return i
				}
				return j
			},
		})

	var childNames []string
	for _, vc := range rv.views {
		childName, parseErr := vc.Parse(root)
		if parseErr != nil {
			err = parseErr
			return
		}
		childNames = append(childNames, childName)
	}

	var body string
	for _, childName := range childNames {
		body += `{{ template "` + childName + `" . }}`
	}

	// The shell template bootstraps the client: it opens the websocket,
	// carrying the page's query string so the server paces this replay
	// like the page it faces, and applies pushed element operations.
	name = "index"
	page := `
	{{ define "` + name + `" }}
	<!DOCTYPE html>
	<html>
		<head>
			<link rel="icon" href="data:,">
			<title>pathfinding replay</title>
			<script>
				const ws = new WebSocket("ws://" + location.host + "/ws" + location.search);
				ws.onerror = function (event) {
					console.log("websocket error: ", event);
				};
				ws.onmessage = function (event) {
					const batch = JSON.parse(event.data);
					for (const update of batch) {
						const ele = document.getElementById(update.ele_id);
						if (!ele) {
							continue;
						}
						for (const op of update.ops) {
							if (op.key === "textContent") {
								ele.textContent = op.value;
							} else {
								ele.setAttribute(op.key, op.value);
							}
						}
					}
				};
			</script>
		</head>
		<body>
		` + body + `
		</body></html>
	{{ end }}
	`

	_, err = root.Parse(page)
	return
}

// fanIn merges the views' update channels and batches the merged stream.
func fanIn(
	done <-chan struct{},
	views []fastview.ViewComponent,
) <-chan []fastview.EleUpdate {
	inputs := make([]<-chan []fastview.EleUpdate, len(views))
	for i, view := range views {
		inputs[i] = view.Updates()
	}
	return batchify(done, channerics.Merge(done, inputs...), batchWindow)
}

// batchify coalesces updates within each window, keeping only the latest
// operation per element id. A window whose input went quiet still flushes on
// the next tick, so the last frame of a paused stream always reaches the
// client.
func batchify(
	done <-chan struct{},
	source <-chan []fastview.EleUpdate,
	window time.Duration,
) <-chan []fastview.EleUpdate {
	output := make(chan []fastview.EleUpdate)

	go func() {
		defer close(output)

		pending := map[string]fastview.EleUpdate{}
		flush := channerics.NewTicker(done, window)
		src := channerics.OrDone(done, source)
		for {
			select {
			case updates, ok := <-src:
				if !ok {
					return
				}
				for _, update := range updates {
					pending[update.EleId] = update
				}
			case <-flush:
				if len(pending) == 0 {
					continue
				}
				select {
				case output <- slicedVals(pending):
					pending = map[string]fastview.EleUpdate{}
				case <-done:
					return
				}
			case <-done:
				return
			}
		}
	}()

	return output
}

func slicedVals[K comparable, V any](mp map[K]V) (vals []V) {
	for _, v := range mp {
		vals = append(vals, v)
	}
	return
}
