// Package server replays a finished search to the browser: an index page
// holding the board and readout views, and a websocket endpoint that streams
// the search's snapshots to each connected page.
package server

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/g2mo/A-star-pathfinding/astar"
	"github.com/g2mo/A-star-pathfinding/config"
	"github.com/g2mo/A-star-pathfinding/grid_world"
	"github.com/g2mo/A-star-pathfinding/server/cell_views"
	"github.com/g2mo/A-star-pathfinding/server/fastview"
	"github.com/g2mo/A-star-pathfinding/server/replay_view"

	"github.com/gorilla/mux"
	channerics "github.com/niceyeti/channerics/channels"
)

// holdDuration is how long the terminal path frame stays on screen before a
// replay wraps around and starts over.
const holdDuration = 2 * time.Second

// Server replays one finished search to any number of browsers. Every
// websocket gets its own producer, so pages never share a replay cursor.
type Server struct {
	cfg    *config.Config
	grid   *grid_world.Grid
	result *astar.Result
	start  grid_world.Coord
	goal   grid_world.Coord
	router *mux.Router
}

// NewServer wires the routes and proves the page renders, so template
// mistakes surface at startup rather than on the first page load.
func NewServer(
	cfg *config.Config,
	g *grid_world.Grid,
	result *astar.Result,
	start, goal grid_world.Coord,
) (*Server, error) {
	srv := &Server{
		cfg:    cfg,
		grid:   g,
		result: result,
		start:  start,
		goal:   goal,
	}

	router := mux.NewRouter()
	router.HandleFunc("/", srv.serveIndex).Methods(http.MethodGet)
	router.HandleFunc("/ws", srv.serveReplay)
	srv.router = router

	if err := srv.renderIndex(io.Discard, false); err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}
	return srv, nil
}

// Handler exposes the route table, mainly for tests.
func (srv *Server) Handler() http.Handler {
	return srv.router
}

// Serve blocks listening on the configured address.
func (srv *Server) Serve() error {
	log.Printf("replay server listening on %s", srv.cfg.Server.Addr)
	if err := http.ListenAndServe(srv.cfg.Server.Addr, srv.router); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func (srv *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	var page bytes.Buffer
	if err := srv.renderIndex(&page, srv.learningMode(r)); err != nil {
		log.Printf("render index: %v", err)
		http.Error(w, "page render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	_, _ = page.WriteTo(w)
}

// serveReplay runs one replay session over a websocket: a paced producer
// walking the snapshots, the page views converting them, and a client
// pushing the element updates until the peer goes away.
func (srv *Server) serveReplay(w http.ResponseWriter, r *http.Request) {
	learning := srv.learningMode(r)
	interval := srv.cfg.FrameInterval(learning)

	view, err := replay_view.NewReplayView(
		r.Context(),
		srv.replay(r.Context(), interval, learning))
	if err != nil {
		log.Printf("build replay: %v", err)
		http.Error(w, "replay construction failed", http.StatusInternalServerError)
		return
	}

	client, err := fastview.NewClient(view.Updates(), w, r)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer client.Close()

	if err := client.Sync(); err != nil {
		log.Printf("replay session ended: %v", err)
	}
}

// replay emits the moments of a looping replay: every snapshot in order,
// then the path phase held on screen, then around again. Pacing lives here
// so every client sees the cadence its page asked for.
func (srv *Server) replay(
	ctx context.Context,
	interval time.Duration,
	learning bool,
) <-chan cell_views.Moment {
	moments := make(chan cell_views.Moment)

	go func() {
		defer close(moments)
		cur := newCursor(len(srv.result.Snapshots), holdFrames(interval))
		for range channerics.NewTicker(ctx.Done(), interval) {
			m := srv.moment(cur.index(), cur.pathPhase(), learning)
			select {
			case moments <- m:
			case <-ctx.Done():
				return
			}
			cur.advance()
		}
	}()

	return moments
}

func (srv *Server) moment(idx int, showPath, learning bool) cell_views.Moment {
	return cell_views.Moment{
		Grid:     srv.grid,
		Result:   srv.result,
		Start:    srv.start,
		Goal:     srv.goal,
		Index:    idx,
		ShowPath: showPath,
		Learning: learning,
	}
}

// learningMode resolves the replay flavor for one request: the config's
// setting unless the query string says otherwise.
func (srv *Server) learningMode(r *http.Request) bool {
	switch r.URL.Query().Get("learning") {
	case "1", "true":
		return true
	case "0", "false":
		return false
	}
	return srv.cfg.Animation.LearningMode
}

// renderIndex renders the full page against the first snapshot's frame.
func (srv *Server) renderIndex(w io.Writer, learning bool) error {
	view, err := srv.parseOnlyView()
	if err != nil {
		return err
	}
	return renderTemplate(w, view, cell_views.Convert(srv.moment(0, false, learning)))
}

// parseOnlyView builds a replay view with its channels already torn down.
// It can parse templates but will never emit an update.
func (srv *Server) parseOnlyView() (*replay_view.ReplayView, error) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	moments := make(chan cell_views.Moment)
	close(moments)
	return replay_view.NewReplayView(ctx, moments)
}

func renderTemplate(w io.Writer, vc fastview.ViewComponent, data interface{}) (err error) {
	t := template.New("index.html")
	var tname string
	if tname, err = vc.Parse(t); err != nil {
		return
	}
	if _, err = t.Parse(`{{ template "` + tname + `" . }}`); err != nil {
		return
	}
	err = t.Execute(w, data)
	return
}

// holdFrames converts the terminal hold into ticks of the replay interval.
func holdFrames(interval time.Duration) int {
	frames := int(holdDuration / interval)
	if frames < 1 {
		frames = 1
	}
	return frames
}

// cursor walks one replay loop: each snapshot once, then the path phase for
// hold ticks, then back to the beginning.
type cursor struct {
	total int
	hold  int
	idx   int
	path  bool
	held  int
}

func newCursor(total, hold int) *cursor {
	return &cursor{total: total, hold: hold}
}

// index is the snapshot to display this tick.
func (c *cursor) index() int {
	if c.path {
		return c.total - 1
	}
	return c.idx
}

// pathPhase reports whether the replay is holding on the finished search.
func (c *cursor) pathPhase() bool {
	return c.path
}

func (c *cursor) advance() {
	if c.path {
		c.held++
		if c.held >= c.hold {
			c.path = false
			c.held = 0
			c.idx = 0
		}
		return
	}
	c.idx++
	if c.idx >= c.total {
		c.path = true
		c.idx = c.total - 1
	}
}
