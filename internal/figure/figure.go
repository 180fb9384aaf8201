// Package figure maps computation results onto the ten chart panes of the
// scope. A Figure is a complete, self-contained description of what to draw;
// every update builds a new one.
package figure

import (
	"fmt"
	"image/color"

	"github.com/cwbudde/algo-modscope/internal/compute"
)

// Grid geometry and text sizing shared by every pane.
const (
	Rows          = 3
	Cols          = 4
	TickLabelSize = 8.0 // points
)

// Pane indices in drawing order.
const (
	PaneMessage = iota
	PaneCarrier
	PaneAM
	PaneDSB
	PaneSSB
	PaneSidebands
	PaneSNR
	PaneVSB
	PaneFM
	PanePM

	PaneCount
)

var titles = [PaneCount]string{
	PaneMessage:   "Message Signal",
	PaneCarrier:   "Carrier Signal",
	PaneAM:        "AM Modulated Signal",
	PaneDSB:       "DSB Modulated Signal",
	PaneSSB:       "SSB Modulated Signal",
	PaneSidebands: "LSSB/USSB Modulated Signal",
	PaneSNR:       "SNR vs Gamma",
	PaneVSB:       "VSB Modulated Signal",
	PaneFM:        "FM Modulated Signal",
	PanePM:        "PM Modulated Signal",
}

// cells places the panes on the 3x4 grid; cells 3 and 11 stay empty.
var cells = [PaneCount]int{0, 1, 2, 4, 5, 6, 7, 8, 9, 10}

// Color is a named palette entry.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
	rgba color.RGBA
}

// RGBA returns the color value.
func (c Color) RGBA() color.RGBA {
	return c.rgba
}

func newColor(name string, r, g, b uint8) Color {
	return Color{
		Name: name,
		Hex:  fmt.Sprintf("#%02x%02x%02x", r, g, b),
		rgba: color.RGBA{R: r, G: g, B: b, A: 0xff},
	}
}

// Palette is the fixed color cycle.
var Palette = [...]Color{
	newColor("b", 0x00, 0x00, 0xff),
	newColor("g", 0x00, 0x80, 0x00),
	newColor("r", 0xff, 0x00, 0x00),
	newColor("c", 0x00, 0xbf, 0xbf),
	newColor("m", 0xbf, 0x00, 0xbf),
	newColor("y", 0xbf, 0xbf, 0x00),
	newColor("k", 0x00, 0x00, 0x00),
	newColor("orange", 0xff, 0xa5, 0x00),
	newColor("purple", 0x80, 0x00, 0x80),
	newColor("brown", 0xa5, 0x2a, 0x2a),
}

// Series is one line in a pane.
type Series struct {
	Label string    `json:"label,omitempty"`
	Color Color     `json:"color"`
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
}

// Pane is one subplot.
type Pane struct {
	Title  string   `json:"title"`
	Cell   int      `json:"cell"`
	Legend bool     `json:"legend,omitempty"`
	Series []Series `json:"series"`
}

// Empty reports whether the pane has no data points.
func (p Pane) Empty() bool {
	for _, s := range p.Series {
		if len(s.X) > 0 {
			return false
		}
	}
	return true
}

// Figure is the full chart description.
type Figure struct {
	Rows          int     `json:"rows"`
	Cols          int     `json:"cols"`
	TickLabelSize float64 `json:"tickLabelSize"`
	Panes         []Pane  `json:"panes"`
}

// Blank returns the start-up figure: every pane titled, none with data.
func Blank() Figure {
	f := newFigure()
	for i := range f.Panes {
		f.Panes[i].Series = []Series{{Color: Palette[0]}}
	}
	return f
}

// FromResult describes res across the ten panes.
func FromResult(res *compute.Result) Figure {
	s := res.Signals
	f := newFigure()

	line := func(pane, c int, y []float64) {
		f.Panes[pane].Series = []Series{{Color: Palette[c], X: s.Time, Y: y}}
	}

	line(PaneMessage, 0, s.Message)
	line(PaneCarrier, 1, s.Carrier)
	line(PaneAM, 2, s.AM)
	line(PaneDSB, 3, s.DSB)
	line(PaneSSB, 4, s.SSB)

	f.Panes[PaneSidebands].Legend = true
	f.Panes[PaneSidebands].Series = []Series{
		{Label: "LSSB", Color: Palette[5], X: s.Time, Y: s.LSSB},
		{Label: "USSB", Color: Palette[6], X: s.Time, Y: s.USSB},
	}

	f.Panes[PaneSNR].Title = SNRTitle(res.Scheme.String())
	f.Panes[PaneSNR].Series = []Series{{Color: Palette[7], X: res.Curve.Gamma, Y: res.Curve.SNR}}

	line(PaneVSB, 8, s.VSB)
	line(PaneFM, 9, s.FM)
	line(PanePM, 2, s.PM)

	return f
}

// SNRTitle returns the SNR pane title annotated with the active scheme.
func SNRTitle(scheme string) string {
	return fmt.Sprintf("%s (%s)", titles[PaneSNR], scheme)
}

// Title returns the fixed title of pane i.
func Title(i int) string {
	return titles[i]
}

func newFigure() Figure {
	f := Figure{
		Rows:          Rows,
		Cols:          Cols,
		TickLabelSize: TickLabelSize,
		Panes:         make([]Pane, PaneCount),
	}
	for i := range f.Panes {
		f.Panes[i] = Pane{Title: titles[i], Cell: cells[i]}
	}
	return f
}
