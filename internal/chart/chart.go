// Package chart paints the rolling telemetry window onto a 2D surface as a
// gridded multi-series line graph.
package chart

import (
	"image/color"

	"github.com/mattcracing/Simmetric/internal/telemetry"
)

// Canvas is the minimal drawing surface the renderer needs: clear, stroke
// styling and path primitives.
type Canvas interface {
	Clear(c color.Color)
	SetStroke(c color.Color, width float64)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
}

const gridLines = 4

// Renderer draws the history window. Drawing is a pure function of the
// sample slice plus the fixed layout; it touches nothing but the canvas.
type Renderer struct {
	Width    float64
	Height   float64
	Capacity int

	Background color.Color
	Grid       color.Color
	Throttle   color.Color
	Brake      color.Color
	Steering   color.Color
}

// NewRenderer returns a renderer for the given logical surface size and
// history capacity, with the dashboard palette.
func NewRenderer(width, height, capacity int) *Renderer {
	return &Renderer{
		Width:      float64(width),
		Height:     float64(height),
		Capacity:   capacity,
		Background: color.RGBA{R: 0x10, G: 0x14, B: 0x1c, A: 0xff},
		Grid:       color.RGBA{R: 0x2a, G: 0x31, B: 0x3d, A: 0xff},
		Throttle:   color.RGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff},
		Brake:      color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff},
		Steering:   color.RGBA{R: 0x35, G: 0x98, B: 0xdb, A: 0xff},
	}
}

// Draw clears the surface, draws the gridlines and then the three series.
// Series order is fixed (throttle, brake, steering) so overlaps occlude
// reproducibly. With fewer than 2 samples only the grid is drawn.
func (r *Renderer) Draw(cv Canvas, samples []telemetry.Sample) {
	cv.Clear(r.Background)

	cv.SetStroke(r.Grid, 1)
	for i := 1; i <= gridLines; i++ {
		y := r.Height * float64(i) / float64(gridLines+1)
		cv.MoveTo(0, y)
		cv.LineTo(r.Width, y)
		cv.Stroke()
	}

	if len(samples) < 2 {
		return
	}

	r.drawSeries(cv, samples, r.Throttle, func(s telemetry.Sample) float64 { return s.Throttle })
	r.drawSeries(cv, samples, r.Brake, func(s telemetry.Sample) float64 { return s.Brake })
	r.drawSeries(cv, samples, r.Steering, func(s telemetry.Sample) float64 { return s.Steering })
}

func (r *Renderer) drawSeries(cv Canvas, samples []telemetry.Sample, c color.Color, value func(telemetry.Sample) float64) {
	// Horizontal step is anchored to the window capacity, not the current
	// fill, so a filling buffer grows rightward instead of stretching.
	step := r.Width / float64(max(r.Capacity-1, 1))

	cv.SetStroke(c, 2)
	cv.MoveTo(0, r.y(value(samples[0])))
	for i := 1; i < len(samples); i++ {
		cv.LineTo(float64(i)*step, r.y(value(samples[i])))
	}
	cv.Stroke()
}

// y maps a percentage to the surface: 0% at the bottom edge, 100% at the top.
func (r *Renderer) y(percent float64) float64 {
	return r.Height * (1 - percent/100)
}
