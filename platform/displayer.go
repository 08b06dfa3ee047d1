package platform

import (
	"image/color"

	"tinygo.org/x/drivers"

	"smolos-go/hal"
	"smolos-go/types"
)

// DisplayerPanel adapts a tinygo drivers.Displayer (ssd1306, st7735, ...)
// to the registry's panel contract. These controllers expose a single
// drawing surface, so only layer 0 exists and framebuffer addresses are
// not relocatable: other layers are ignored on writes and read as zero.
type DisplayerPanel struct {
	d drivers.Displayer
}

var _ hal.DisplayPanel = (*DisplayerPanel)(nil)

func NewDisplayerPanel(d drivers.Displayer) *DisplayerPanel {
	return &DisplayerPanel{d: d}
}

// DisplayOn is a no-op: drivers.Displayer has no power control, the
// device is on once configured.
func (p *DisplayerPanel) DisplayOn() {}

// DisplayOff blanks the surface, the closest the contract gets to
// powering down.
func (p *DisplayerPanel) DisplayOff() {
	p.Clear(0, types.ColorBlack)
}

func (p *DisplayerPanel) Size() (uint16, uint16) {
	w, h := p.d.Size()
	return uint16(w), uint16(h)
}

func (p *DisplayerPanel) Clear(layer uint8, c types.Color) {
	if layer != 0 {
		return
	}
	w, h := p.d.Size()
	rgba := toRGBA(c)
	for y := int16(0); y < h; y++ {
		for x := int16(0); x < w; x++ {
			p.d.SetPixel(x, y, rgba)
		}
	}
	p.d.Display()
}

func (p *DisplayerPanel) DrawPixel(layer uint8, x, y uint16, c types.Color) {
	if layer != 0 {
		return
	}
	w, h := p.d.Size()
	if int16(x) >= w || int16(y) >= h {
		return
	}
	p.d.SetPixel(int16(x), int16(y), toRGBA(c))
	p.d.Display()
}

func (p *DisplayerPanel) LayerAddress(uint8) uint32     { return 0 }
func (p *DisplayerPanel) SetLayerAddress(uint8, uint32) {}

func toRGBA(c types.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: r, G: g, B: b, A: a}
}
