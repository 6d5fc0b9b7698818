package grafana

const (
	PanelRow   = "row"
	PanelGraph = "graph"
)

// Display units accepted by the renderer.
const (
	UnitShort       = "short"
	UnitPercentUnit = "percentunit"
	UnitPercent     = "percent"
	UnitBytes       = "bytes"
	UnitSeconds     = "s"
)

type Panel struct {
	ID          uint     `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Datasource  string   `json:"datasource,omitempty"`
	GridPos     GridPos  `json:"gridPos"`
	Collapsed   bool     `json:"collapsed,omitempty"`
	Lines       bool     `json:"lines,omitempty"`
	Fill        int      `json:"fill,omitempty"`
	Stack       bool     `json:"stack,omitempty"`
	Decimals    *int     `json:"decimals,omitempty"`
	Legend      Legend   `json:"legend,omitempty"`
	Yaxes       []Yaxis  `json:"yaxes,omitempty"`
	Targets     []Target `json:"targets,omitempty"`

	// Layout hints consumed by Board.Layout, in grid units.
	Span   int `json:"-"`
	Height int `json:"-"`
}

type GridPos struct {
	H int `json:"h"`
	W int `json:"w"`
	X int `json:"x"`
	Y int `json:"y"`
}

type Legend struct {
	Show         bool `json:"show"`
	AlignAsTable bool `json:"alignAsTable,omitempty"`
	Current      bool `json:"current,omitempty"`
	Max          bool `json:"max,omitempty"`
	RightSide    bool `json:"rightSide,omitempty"`
}

type Yaxis struct {
	Format string   `json:"format"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Show   bool     `json:"show"`
}

type Target struct {
	RefID        string `json:"refId"`
	Expr         string `json:"expr"`
	LegendFormat string `json:"legendFormat,omitempty"`

	// Labels the query output grouping preserves. Used by Validate
	// to check the legend format, never serialized.
	Grouping []string `json:"-"`
}

// Axes builds the usual left/right axis pair: the left one with the
// given format and bounds, the right one hidden.
func Axes(format string, min, max *float64) []Yaxis {
	return []Yaxis{
		{Format: format, Min: min, Max: max, Show: true},
		{Format: UnitShort, Show: false},
	}
}
