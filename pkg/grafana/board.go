package grafana

// Board is a Grafana dashboard document in the flat-panel schema.
type Board struct {
	ID            uint        `json:"id,omitempty"`
	UID           string      `json:"uid,omitempty"`
	Slug          string      `json:"slug,omitempty"`
	Title         string      `json:"title"`
	Tags          []string    `json:"tags"`
	Editable      bool        `json:"editable"`
	Timezone      string      `json:"timezone,omitempty"`
	SchemaVersion int         `json:"schemaVersion"`
	GraphTooltip  int         `json:"graphTooltip"`
	Refresh       string      `json:"refresh,omitempty"`
	Time          TimeRange   `json:"time"`
	Templating    Templating  `json:"templating"`
	Annotations   Annotations `json:"annotations"`
	Panels        []*Panel    `json:"panels"`
}

type TimeRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Templating struct {
	List []TemplateVar `json:"list"`
}

type TemplateVar struct {
	Name    string      `json:"name"`
	Type    string      `json:"type"`
	Label   string      `json:"label,omitempty"`
	Query   interface{} `json:"query,omitempty"`
	Current *Current    `json:"current,omitempty"`
	Hide    int         `json:"hide"`
	Refresh int         `json:"refresh"`
}

type Current struct {
	Text  string `json:"text,omitempty"`
	Value string `json:"value,omitempty"`
}

type Annotations struct {
	List []Annotation `json:"list"`
}

type Annotation struct {
	Name       string `json:"name"`
	Datasource string `json:"datasource,omitempty"`
	Type       string `json:"type,omitempty"`
	BuiltIn    int    `json:"builtIn,omitempty"`
	Enable     bool   `json:"enable"`
	Hide       bool   `json:"hide"`
}

const (
	// Grid placement uses gridPos since this schema version.
	schemaVersion = 16

	// GridWidth is the number of horizontal grid units on a dashboard.
	GridWidth = 24

	defaultSpan   = 12
	defaultHeight = 8
	rowHeight     = 1
)

func NewBoard(title string) *Board {
	return &Board{
		Title:         title,
		Tags:          []string{},
		Editable:      true,
		Timezone:      "browser",
		SchemaVersion: schemaVersion,
		Refresh:       "1m",
		Time:          TimeRange{From: "now-6h", To: "now"},
		Panels:        []*Panel{},
	}
}

// AddRow appends a row separator. Panels added after it belong to this
// row visually until the next one.
func (b *Board) AddRow(title string) *Panel {
	row := &Panel{Type: PanelRow, Title: title}
	b.Add(row)
	return row
}

// Add appends a panel preserving construction order and assigns its id.
func (b *Board) Add(p *Panel) *Panel {
	p.ID = uint(len(b.Panels) + 1)
	b.Panels = append(b.Panels, p)
	return p
}

// Layout assigns grid placement to every panel from the construction
// order: rows take a full-width one-unit line, data panels flow left to
// right below it and wrap at the grid edge.
func (b *Board) Layout() {
	x, y, bottom := 0, 0, 0
	for _, p := range b.Panels {
		if p.Type == PanelRow {
			p.GridPos = GridPos{H: rowHeight, W: GridWidth, X: 0, Y: bottom}
			x = 0
			y = bottom + rowHeight
			bottom = y
			continue
		}
		w := p.Span
		if w <= 0 {
			w = defaultSpan
		}
		h := p.Height
		if h <= 0 {
			h = defaultHeight
		}
		if x+w > GridWidth {
			x = 0
			y = bottom
		}
		p.GridPos = GridPos{H: h, W: w, X: x, Y: y}
		x += w
		if y+h > bottom {
			bottom = y + h
		}
	}
}

// Rows returns the row separator panels in order.
func (b *Board) Rows() []*Panel {
	res := make([]*Panel, 0)
	for _, p := range b.Panels {
		if p.Type == PanelRow {
			res = append(res, p)
		}
	}
	return res
}

// Graphs returns the data panels in order.
func (b *Board) Graphs() []*Panel {
	res := make([]*Panel, 0)
	for _, p := range b.Panels {
		if p.Type != PanelRow {
			res = append(res, p)
		}
	}
	return res
}
