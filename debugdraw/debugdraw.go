// Package debugdraw renders arcade bodies onto an Ebitengine image for
// debugging: bounding boxes, circles, velocity lines, and world bounds.
package debugdraw

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/arcade"
)

// Options controls what Draw renders. The zero value draws every body with
// the default palette and no velocity lines.
type Options struct {
	// OffsetX and OffsetY translate world coordinates to screen coordinates.
	OffsetX, OffsetY float64
	// Velocity draws each body's velocity scaled by VelocityScale.
	Velocity      bool
	VelocityScale float64
	// Bounds draws the world bounds.
	Bounds bool
	// StrokeWidth is the outline width in pixels (default 1).
	StrokeWidth float32
}

// Palette colors used by Draw.
var (
	ColorBody      = color.RGBA{R: 0x4c, G: 0xaf, B: 0xff, A: 0xff}
	ColorImmovable = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
	ColorTouching  = color.RGBA{R: 0x66, G: 0xff, B: 0x66, A: 0xff}
	ColorEmbedded  = color.RGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xff}
	ColorDisabled  = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0x80}
	ColorVelocity  = color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
	ColorBounds    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x60}
)

// BodyColor returns the outline color for b. Embedded wins over touching,
// touching over immovable.
func BodyColor(b *arcade.Body) color.RGBA {
	switch {
	case !b.Enable:
		return ColorDisabled
	case b.Embedded:
		return ColorEmbedded
	case b.Touching.Any():
		return ColorTouching
	case b.Immovable:
		return ColorImmovable
	default:
		return ColorBody
	}
}

// Draw renders every body registered with w onto dst.
func Draw(dst *ebiten.Image, w *arcade.World, opts Options) {
	sw := opts.StrokeWidth
	if sw <= 0 {
		sw = 1
	}
	ox, oy := opts.OffsetX, opts.OffsetY

	if opts.Bounds {
		r := w.Bounds
		vector.StrokeRect(dst, float32(r.X+ox), float32(r.Y+oy), float32(r.Width), float32(r.Height), sw, ColorBounds, false)
	}

	for _, b := range w.Bodies() {
		DrawBody(dst, b, opts)
	}
}

// DrawBody renders a single body onto dst.
func DrawBody(dst *ebiten.Image, b *arcade.Body, opts Options) {
	sw := opts.StrokeWidth
	if sw <= 0 {
		sw = 1
	}
	ox, oy := opts.OffsetX, opts.OffsetY
	clr := BodyColor(b)

	switch b.Shape {
	case arcade.ShapeCircle:
		c := b.Center()
		vector.StrokeCircle(dst, float32(c.X+ox), float32(c.Y+oy), float32(b.Radius), sw, clr, true)
	default:
		r := b.Bounds()
		vector.StrokeRect(dst, float32(r.X+ox), float32(r.Y+oy), float32(r.Width), float32(r.Height), sw, clr, false)
	}

	if opts.Velocity {
		scale := opts.VelocityScale
		if scale == 0 {
			scale = 0.1
		}
		c := b.Center()
		end := c.Add(b.Velocity.Scale(scale))
		vector.StrokeLine(dst, float32(c.X+ox), float32(c.Y+oy), float32(end.X+ox), float32(end.Y+oy), sw, ColorVelocity, true)
	}
}
