package metro

type Coordinates struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type Station struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
	Lines       []string    `json:"lines"`    // declared memberships
	Terminal    bool        `json:"terminal"` // end of at least one line
}

// Line is an ordered run of stations. Consecutive entries are physically
// adjacent; Directions maps a terminal station ID to the sign used for
// live-position direction logic.
type Line struct {
	Name       string         `json:"name"`
	Color      string         `json:"color"`
	Stations   []string       `json:"stations"`
	Directions map[string]int `json:"directions,omitempty"`
}

// Direction returns the sign recorded for trains heading to terminal.
func (l Line) Direction(terminal string) (int, bool) {
	d, ok := l.Directions[terminal]
	return d, ok
}

// Network is the static reference data a graph is built from.
type Network struct {
	Stations []Station
	Lines    []Line
}
