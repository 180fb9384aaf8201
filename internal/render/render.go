// Package render rasterizes a figure.Figure into an image.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/cwbudde/algo-modscope/internal/figure"
)

const (
	defaultWidth     = 800
	defaultHeight    = 800
	defaultDPI       = 100.0
	defaultTitleSize = 9.0

	tickCount  = 5
	tickLength = 3
	padding    = 4
)

var (
	frameColor = color.RGBA{A: 0xff}
	textColor  = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	gridColor  = color.RGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
)

// Config controls the canvas. Zero fields take defaults.
type Config struct {
	Width     int     // pixels
	Height    int     // pixels
	DPI       float64 // dots per inch for text
	TitleSize float64 // points
}

// Renderer draws figures. It holds parsed font state and is not safe for
// concurrent use.
type Renderer struct {
	cfg   Config
	ctx   *freetype.Context
	title font.Face
	tick  font.Face
}

// NewRenderer parses the embedded font and prepares text faces.
func NewRenderer(cfg Config) (*Renderer, error) {
	if cfg.Width == 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = defaultHeight
	}
	if cfg.DPI == 0 {
		cfg.DPI = defaultDPI
	}
	if cfg.TitleSize == 0 {
		cfg.TitleSize = defaultTitleSize
	}
	if cfg.Width < 0 || cfg.Height < 0 || cfg.DPI < 0 || cfg.TitleSize < 0 {
		return nil, fmt.Errorf("render: invalid canvas %dx%d at %v dpi", cfg.Width, cfg.Height, cfg.DPI)
	}

	parsed, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("render: parsing font: %w", err)
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(cfg.DPI)
	ctx.SetFont(parsed)
	ctx.SetHinting(font.HintingFull)

	return &Renderer{
		cfg:   cfg,
		ctx:   ctx,
		title: newFace(parsed, cfg.TitleSize, cfg.DPI),
		tick:  newFace(parsed, figure.TickLabelSize, cfg.DPI),
	}, nil
}

func newFace(f *truetype.Font, size, dpi float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: dpi, Hinting: font.HintingFull})
}

// Config returns the effective configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Render draws fig onto a fresh white canvas.
func (r *Renderer) Render(fig figure.Figure) (*image.RGBA, error) {
	if fig.Rows <= 0 || fig.Cols <= 0 {
		return nil, fmt.Errorf("render: invalid grid %dx%d", fig.Rows, fig.Cols)
	}

	img := image.NewRGBA(image.Rect(0, 0, r.cfg.Width, r.cfg.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	r.ctx.SetDst(img)
	r.ctx.SetClip(img.Bounds())

	cellW := r.cfg.Width / fig.Cols
	cellH := r.cfg.Height / fig.Rows
	for i, pane := range fig.Panes {
		if pane.Cell < 0 || pane.Cell >= fig.Rows*fig.Cols {
			return nil, fmt.Errorf("render: pane %d (%q) outside grid: cell %d", i, pane.Title, pane.Cell)
		}
		col, row := pane.Cell%fig.Cols, pane.Cell/fig.Cols
		cell := image.Rect(col*cellW, row*cellH, (col+1)*cellW, (row+1)*cellH)
		if err := r.drawPane(img, cell, pane, fig.TickLabelSize); err != nil {
			return nil, fmt.Errorf("render: pane %q: %w", pane.Title, err)
		}
	}

	return img, nil
}

// EncodePNG renders fig and writes it to w as PNG.
func (r *Renderer) EncodePNG(w io.Writer, fig figure.Figure) error {
	img, err := r.Render(fig)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encoding png: %w", err)
	}
	return nil
}

func (r *Renderer) drawPane(img *image.RGBA, cell image.Rectangle, pane figure.Pane, tickSize float64) error {
	titleH := r.title.Metrics().Height.Ceil()
	tickH := r.tick.Metrics().Height.Ceil()

	xr, yr := dataRange(pane)
	xTicks := niceTicks(xr.min, xr.max, tickCount)
	yTicks := niceTicks(yr.min, yr.max, tickCount)

	labelW := 0
	for _, v := range yTicks {
		if w := font.MeasureString(r.tick, tickLabel(v)).Ceil(); w > labelW {
			labelW = w
		}
	}

	plot := image.Rect(
		cell.Min.X+padding+labelW+tickLength+2,
		cell.Min.Y+padding+titleH+padding,
		cell.Max.X-padding*2,
		cell.Max.Y-padding-tickH-tickLength-2,
	)
	if plot.Dx() < 2 || plot.Dy() < 2 {
		return fmt.Errorf("cell %v too small for plot area", cell)
	}

	tr := transform{plot: plot, x: xr, y: yr}

	for _, v := range yTicks {
		py := tr.py(v)
		hline(img, plot.Min.X+1, plot.Max.X-1, py, gridColor)
		hline(img, plot.Min.X-tickLength, plot.Min.X, py, frameColor)
		label := tickLabel(v)
		w := font.MeasureString(r.tick, label).Ceil()
		if err := r.text(label, tickSize, textColor, plot.Min.X-tickLength-2-w, py+tickH/3); err != nil {
			return err
		}
	}
	for _, v := range xTicks {
		px := tr.px(v)
		vline(img, px, plot.Min.Y+1, plot.Max.Y-1, gridColor)
		vline(img, px, plot.Max.Y, plot.Max.Y+tickLength, frameColor)
		label := tickLabel(v)
		w := font.MeasureString(r.tick, label).Ceil()
		if err := r.text(label, tickSize, textColor, px-w/2, plot.Max.Y+tickLength+tickH); err != nil {
			return err
		}
	}

	for _, s := range pane.Series {
		polyline(img, tr, s.X, s.Y, s.Color.RGBA())
	}
	frame(img, plot, frameColor)

	tw := font.MeasureString(r.title, pane.Title).Ceil()
	if err := r.text(pane.Title, r.cfg.TitleSize, textColor, cell.Min.X+(cell.Dx()-tw)/2, cell.Min.Y+padding+titleH*3/4); err != nil {
		return err
	}

	if pane.Legend {
		return r.legend(img, plot, pane.Series, tickSize)
	}
	return nil
}

func (r *Renderer) legend(img *image.RGBA, plot image.Rectangle, series []figure.Series, size float64) error {
	const swatch = 14
	lineH := r.tick.Metrics().Height.Ceil() + 2

	labelW := 0
	for _, s := range series {
		if w := font.MeasureString(r.tick, s.Label).Ceil(); w > labelW {
			labelW = w
		}
	}

	box := image.Rect(
		plot.Max.X-padding*3-swatch-labelW,
		plot.Min.Y+padding,
		plot.Max.X-padding,
		plot.Min.Y+padding*2+lineH*len(series),
	)
	draw.Draw(img, box, image.White, image.Point{}, draw.Src)
	frame(img, box, gridColor)

	for i, s := range series {
		y := box.Min.Y + padding + lineH*i + lineH/2
		for dy := 0; dy < 2; dy++ {
			hline(img, box.Min.X+padding, box.Min.X+padding+swatch, y+dy, s.Color.RGBA())
		}
		if err := r.text(s.Label, size, textColor, box.Min.X+padding*2+swatch, y+lineH/3); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) text(s string, size float64, c color.Color, x, y int) error {
	r.ctx.SetFontSize(size)
	r.ctx.SetSrc(image.NewUniform(c))
	if _, err := r.ctx.DrawString(s, freetype.Pt(x, y)); err != nil {
		return fmt.Errorf("drawing %q: %w", s, err)
	}
	return nil
}

type span struct{ min, max float64 }

// dataRange returns padded axis limits over all finite points of the pane.
// Panes without data get [0, 1] on both axes.
func dataRange(p figure.Pane) (x, y span) {
	x = span{math.Inf(1), math.Inf(-1)}
	y = x
	for _, s := range p.Series {
		for i := range s.X {
			if i >= len(s.Y) || !finite(s.X[i]) || !finite(s.Y[i]) {
				continue
			}
			x.min, x.max = math.Min(x.min, s.X[i]), math.Max(x.max, s.X[i])
			y.min, y.max = math.Min(y.min, s.Y[i]), math.Max(y.max, s.Y[i])
		}
	}
	if x.min > x.max {
		return span{0, 1}, span{0, 1}
	}
	return widen(x, 0), widen(y, 0.05)
}

func widen(s span, margin float64) span {
	if s.min == s.max {
		d := math.Abs(s.min) * 0.05
		if d == 0 {
			d = 0.05
		}
		return span{s.min - d, s.max + d}
	}
	d := (s.max - s.min) * margin
	return span{s.min - d, s.max + d}
}

type transform struct {
	plot image.Rectangle
	x, y span
}

func (t transform) px(v float64) int {
	f := (v - t.x.min) / (t.x.max - t.x.min)
	return t.plot.Min.X + int(math.Round(f*float64(t.plot.Dx()-1)))
}

func (t transform) py(v float64) int {
	f := (v - t.y.min) / (t.y.max - t.y.min)
	return t.plot.Max.Y - 1 - int(math.Round(f*float64(t.plot.Dy()-1)))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
