package chart

import (
	"bytes"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/mattcracing/Simmetric/internal/telemetry"
)

// ggCanvas adapts a gg drawing context to the Canvas interface.
type ggCanvas struct {
	dc *gg.Context
}

func (g *ggCanvas) Clear(c color.Color) {
	g.dc.SetColor(c)
	g.dc.Clear()
}

func (g *ggCanvas) SetStroke(c color.Color, width float64) {
	g.dc.SetColor(c)
	g.dc.SetLineWidth(width)
}

func (g *ggCanvas) MoveTo(x, y float64) { g.dc.MoveTo(x, y) }
func (g *ggCanvas) LineTo(x, y float64) { g.dc.LineTo(x, y) }
func (g *ggCanvas) Stroke()             { g.dc.Stroke() }

// RenderPNG rasterizes the history window and returns the encoded PNG.
func (r *Renderer) RenderPNG(samples []telemetry.Sample) ([]byte, error) {
	dc := gg.NewContext(int(r.Width), int(r.Height))
	r.Draw(&ggCanvas{dc: dc}, samples)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
