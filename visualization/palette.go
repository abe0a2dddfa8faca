package visualization

import "fmt"

// Palette holds the shared cell colors of every renderer, as rgb components
// in 0..1. The browser views and the png plot draw from the same set so a
// replay and its saved plot agree.
var Palette = struct {
	Wall, Empty, Explored, Frontier, Current, Path, Start, Goal [3]float64
}{
	Wall:     [3]float64{0.2, 0.2, 0.2},
	Empty:    [3]float64{0.95, 0.95, 0.95},
	Explored: [3]float64{0.8, 0.9, 1.0},
	Frontier: [3]float64{1.0, 1.0, 0.6},
	Current:  [3]float64{0.4, 1.0, 0.4},
	Path:     [3]float64{1.0, 0.3, 0.3},
	Start:    [3]float64{0.0, 0.8, 0.0},
	Goal:     [3]float64{0.5, 0.2, 0.8},
}

// CSS renders a palette color as a css/svg fill value.
func CSS(c [3]float64) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", int(c[0]*255), int(c[1]*255), int(c[2]*255))
}
