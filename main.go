/*
A-star-pathfinding builds an occupancy board from a configured scenario,
runs a shortest-path search over it while recording every evaluation, prints
the outcome to the console, and then serves the recorded search as a browser
replay: an svg board animated over a websocket, stepping through the
search's snapshots and finishing on the discovered path.

The scenario comes from ./config.yaml by default: a carved 2d labyrinth, a
sparsely obstructed 3d volume, or a small fixed demo board. Flags can
override the scenario kind, the endpoints, the serving address, and the
optional png plot of the finished search.
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/g2mo/A-star-pathfinding/astar"
	"github.com/g2mo/A-star-pathfinding/config"
	"github.com/g2mo/A-star-pathfinding/grid_world"
	"github.com/g2mo/A-star-pathfinding/maze"
	"github.com/g2mo/A-star-pathfinding/server"
	"github.com/g2mo/A-star-pathfinding/visualization"
)

var (
	configPath *string
	threeD     *bool
	host       *string
	port       *string
	plotPath   *string
	noServe    *bool
	startFlag  *string
	goalFlag   *string
)

func init() {
	configPath = flag.String("config", "./config.yaml", "path to the yaml config")
	threeD = flag.Bool("3d", false, "run the 3d scenario regardless of the config")
	host = flag.String("host", "", "serving host, overriding the config")
	port = flag.String("port", "", "serving port, overriding the config")
	plotPath = flag.String("plot", "", "write a png of the finished search to this path")
	noServe = flag.Bool("no-serve", false, "exit after the search instead of serving the replay")
	startFlag = flag.String("start", "", "start cell as comma separated components, e.g. 0,0")
	goalFlag = flag.String("goal", "", "goal cell as comma separated components")
}

func runApp() (err error) {
	kind := ""
	if *threeD {
		kind = config.KindMaze3D
	}

	var cfg *config.Config
	if cfg, err = config.FromYamlKind(*configPath, kind); err != nil {
		return
	}

	if *host != "" || *port != "" {
		p := *port
		if p == "" {
			p = "8080"
		}
		cfg.Server.Addr = *host + ":" + p
	}
	if *plotPath != "" {
		cfg.Output.PlotPath = *plotPath
	}

	var g *grid_world.Grid
	if g, err = buildGrid(cfg); err != nil {
		return
	}

	var start, goal grid_world.Coord
	if start, goal, err = endpoints(cfg, g); err != nil {
		return
	}

	var result *astar.Result
	if result, err = astar.FindPath(g, start, goal); err != nil {
		return
	}

	visualization.Fprint(os.Stdout, g, result.Path, start, goal)
	if result.Path != nil {
		log.Printf("path found, length %d", len(result.Path))
	} else {
		log.Print("no path exists")
	}
	log.Printf("evaluated %d cells, peak frontier %d, %d snapshots",
		result.NodesEvaluated, result.MaxFrontierSize, len(result.Snapshots))

	if cfg.Output.PlotPath != "" {
		if err = visualization.SavePNG(cfg.Output.PlotPath, g, result, start, goal); err != nil {
			return
		}
		log.Printf("plot written to %s", cfg.Output.PlotPath)
	}

	if *noServe || !cfg.Animate() {
		return
	}

	var srv *server.Server
	if srv, err = server.NewServer(cfg, g, result, start, goal); err != nil {
		return
	}
	err = srv.Serve()
	return
}

// buildGrid realizes the configured scenario as an immutable grid.
func buildGrid(cfg *config.Config) (*grid_world.Grid, error) {
	seed := cfg.Maze.Seed
	if seed <= 0 {
		seed = time.Now().UnixNano()
	}
	gen := maze.New(seed)

	switch cfg.Kind {
	case config.KindSample:
		return grid_world.New2D(maze.Sample())
	case config.KindMaze3D:
		cells := gen.Maze3D(cfg.Maze.Width, cfg.Maze.Height, cfg.Maze.Depth)
		if cfg.Maze.ExtraPaths > 0 {
			gen.AddRandomPaths3D(cells, cfg.Maze.ExtraPaths)
		}
		return grid_world.New3D(cells)
	default:
		cells := gen.Maze2D(cfg.Maze.Width, cfg.Maze.Height)
		if cfg.Maze.ExtraPaths > 0 {
			gen.AddRandomPaths2D(cells, cfg.Maze.ExtraPaths)
		}
		return grid_world.New2D(cells)
	}
}

// endpoints resolves the search endpoints: explicit flags win, then the
// config, then the board corners.
func endpoints(cfg *config.Config, g *grid_world.Grid) (start, goal grid_world.Coord, err error) {
	if *startFlag != "" {
		var comps []int
		if comps, err = parseCoord(*startFlag); err != nil {
			return
		}
		cfg.Search.Start = comps
	}
	if *goalFlag != "" {
		var comps []int
		if comps, err = parseCoord(*goalFlag); err != nil {
			return
		}
		cfg.Search.Goal = comps
	}

	if start, err = cfg.StartCoord(); err != nil {
		return
	}
	goal, err = cfg.GoalCoord(g.Extent())
	return
}

// parseCoord reads comma separated integer components.
func parseCoord(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	comps := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("coordinate %q: %w", s, err)
		}
		comps = append(comps, n)
	}
	return comps, nil
}

func main() {
	flag.Parse()
	if err := runApp(); err != nil {
		fmt.Println(err)
	}
}
