package render

import (
	"image"
	"image/color"
	"math"

	"github.com/dustin/go-humanize"
)

// niceTicks returns up to about n evenly spaced ticks on a 1-2-5 grid inside
// [lo, hi].
func niceTicks(lo, hi float64, n int) []float64 {
	if !(hi > lo) || n < 2 {
		return []float64{lo}
	}
	raw := (hi - lo) / float64(n-1)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := mag
	for _, m := range []float64{1, 2, 5, 10} {
		step = m * mag
		if step >= raw {
			break
		}
	}

	first := math.Ceil(lo / step)
	last := math.Floor(hi / step)
	var ticks []float64
	for k := first; k <= last && len(ticks) <= 2*n; k++ {
		t := k * step
		if t == 0 {
			t = 0 // normalizes -0
		}
		ticks = append(ticks, t)
	}
	return ticks
}

// tickLabel formats a tick value with at most three decimals and no trailing
// zeros.
func tickLabel(v float64) string {
	if math.Abs(v) >= 1e4 {
		return humanize.SIWithDigits(v, 1, "")
	}
	return humanize.FtoaWithDigits(v, 3)
}

func hline(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y, c)
	}
}

func vline(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x, y, c)
	}
}

func frame(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	hline(img, r.Min.X, r.Max.X-1, r.Min.Y, c)
	hline(img, r.Min.X, r.Max.X-1, r.Max.Y-1, c)
	vline(img, r.Min.X, r.Min.Y, r.Max.Y-1, c)
	vline(img, r.Max.X-1, r.Min.Y, r.Max.Y-1, c)
}

// polyline connects consecutive finite points; a non-finite value breaks the
// line.
func polyline(img *image.RGBA, tr transform, xs, ys []float64, c color.RGBA) {
	n := min(len(xs), len(ys))
	havePrev := false
	var px, py int
	for i := 0; i < n; i++ {
		if !finite(xs[i]) || !finite(ys[i]) {
			havePrev = false
			continue
		}
		x, y := tr.px(xs[i]), tr.py(ys[i])
		if havePrev {
			segment(img, tr.plot, px, py, x, y, c)
		} else {
			setClipped(img, tr.plot, x, y, c)
		}
		px, py, havePrev = x, y, true
	}
}

// segment draws a Bresenham line clipped to clip.
func segment(img *image.RGBA, clip image.Rectangle, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		setClipped(img, clip, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func setClipped(img *image.RGBA, clip image.Rectangle, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(clip) {
		img.SetRGBA(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
