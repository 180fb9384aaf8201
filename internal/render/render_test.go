package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-modscope/dsp/modulation"
	"github.com/cwbudde/algo-modscope/internal/compute"
	"github.com/cwbudde/algo-modscope/internal/figure"
	"github.com/cwbudde/algo-modscope/measure/snr"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(Config{})
	require.NoError(t, err)
	return r
}

func resultFigure(t *testing.T) figure.Figure {
	t.Helper()
	p := compute.New(compute.WithSweeper(snr.NewSweeper(snr.WithSeed(4))))
	res, err := p.Run(modulation.DefaultParams(), modulation.SchemeDSB)
	require.NoError(t, err)
	return figure.FromResult(res)
}

func countColor(img *image.RGBA, r image.Rectangle, c color.RGBA) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestDefaults(t *testing.T) {
	r := newTestRenderer(t)
	cfg := r.Config()
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 800, cfg.Height)
	assert.Equal(t, 100.0, cfg.DPI)
}

func TestInvalidConfig(t *testing.T) {
	_, err := NewRenderer(Config{Width: -1})
	assert.Error(t, err)
}

func TestRenderBlank(t *testing.T) {
	img, err := newTestRenderer(t).Render(figure.Blank())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 800, 800), img.Bounds())

	// Cell 3 (top right) is never used and stays white.
	unused := image.Rect(600, 0, 800, 266)
	assert.Equal(t, unused.Dx()*unused.Dy(), countColor(img, unused, color.RGBA{0xff, 0xff, 0xff, 0xff}))

	// The message cell has a frame and a title but no blue trace.
	msgCell := image.Rect(0, 0, 200, 266)
	assert.Zero(t, countColor(img, msgCell, figure.Palette[0].RGBA()))
	assert.NotZero(t, countColor(img, msgCell, frameColor))
}

func TestRenderResultDrawsTraces(t *testing.T) {
	img, err := newTestRenderer(t).Render(resultFigure(t))
	require.NoError(t, err)

	msgCell := image.Rect(0, 0, 200, 266)
	assert.NotZero(t, countColor(img, msgCell, figure.Palette[0].RGBA()), "message trace")

	carrierCell := image.Rect(200, 0, 400, 266)
	assert.NotZero(t, countColor(img, carrierCell, figure.Palette[1].RGBA()), "carrier trace")

	// Sideband pane is cell 6: row 1, column 2.
	sideCell := image.Rect(400, 266, 600, 532)
	assert.NotZero(t, countColor(img, sideCell, figure.Palette[5].RGBA()), "LSSB trace")
}

func TestRenderIsDeterministic(t *testing.T) {
	r := newTestRenderer(t)
	fig := resultFigure(t)
	a, err := r.Render(fig)
	require.NoError(t, err)
	b, err := r.Render(fig)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a.Pix, b.Pix))
}

func TestRenderRejectsBadCell(t *testing.T) {
	fig := figure.Blank()
	fig.Panes[0].Cell = 12
	_, err := newTestRenderer(t).Render(fig)
	assert.Error(t, err)

	fig = figure.Blank()
	fig.Rows = 0
	_, err = newTestRenderer(t).Render(fig)
	assert.Error(t, err)
}

func TestRenderSkipsNonFinitePoints(t *testing.T) {
	fig := figure.Blank()
	fig.Panes[figure.PaneSNR].Series[0].X = []float64{0, 1, 2}
	fig.Panes[figure.PaneSNR].Series[0].Y = []float64{math.Inf(-1), 3, 4}
	_, err := newTestRenderer(t).Render(fig)
	require.NoError(t, err)
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(Config{Width: 400, Height: 300})
	require.NoError(t, err)
	require.NoError(t, r.EncodePNG(&buf, figure.Blank()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 300), img.Bounds())
}

func TestNiceTicks(t *testing.T) {
	ticks := niceTicks(0, 1, 5)
	require.NotEmpty(t, ticks)
	assert.Equal(t, 0.0, ticks[0])
	for i := 1; i < len(ticks); i++ {
		assert.Greater(t, ticks[i], ticks[i-1])
		assert.LessOrEqual(t, ticks[i], 1.0)
	}

	ticks = niceTicks(-1.05, 1.05, 5)
	assert.Equal(t, []float64{-1, 0, 1}, ticks)

	ticks = niceTicks(0, 10, 5)
	assert.Equal(t, []float64{0, 5, 10}, ticks)

	assert.Equal(t, []float64{2}, niceTicks(2, 2, 5))
}

func TestTickLabel(t *testing.T) {
	assert.Equal(t, "0.3", tickLabel(0.30000000000000004))
	assert.Equal(t, "-1", tickLabel(-1))
	assert.Equal(t, "10", tickLabel(10))
	assert.Equal(t, "25 k", tickLabel(25000))
}

func TestDataRange(t *testing.T) {
	x, y := dataRange(figure.Pane{})
	assert.Equal(t, span{0, 1}, x)
	assert.Equal(t, span{0, 1}, y)

	p := figure.Pane{Series: []figure.Series{{X: []float64{0, 1}, Y: []float64{2, 2}}}}
	x, y = dataRange(p)
	assert.Equal(t, span{0, 1}, x)
	assert.InDelta(t, 1.9, y.min, 1e-12)
	assert.InDelta(t, 2.1, y.max, 1e-12)
}
