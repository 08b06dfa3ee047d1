package hal

import (
	"smolos-go/errcode"
	"smolos-go/types"
)

// Display operations check id and kind only. Direction is deliberately
// not enforced: panels are write-only by nature and the declared
// direction of a display entry is informational.

func (r *Registry) displayAt(id ID) (Display, error) {
	e, err := r.entryAt(id)
	if err != nil {
		return Display{}, err
	}
	d, ok := e.payload.(Display)
	if !ok {
		return Display{}, errcode.KindMismatch
	}
	return d, nil
}

// DisplayEnable switches the panel on or off.
func (r *Registry) DisplayEnable(id ID, on bool) error {
	d, err := r.displayAt(id)
	if err != nil {
		return err
	}
	if on {
		d.Panel.DisplayOn()
	} else {
		d.Panel.DisplayOff()
	}
	return nil
}

// DisplayClear fills one layer with a color.
func (r *Registry) DisplayClear(id ID, layer uint8, c types.Color) error {
	d, err := r.displayAt(id)
	if err != nil {
		return err
	}
	d.Panel.Clear(layer, c)
	return nil
}

// DrawPixel paints one pixel on a layer.
func (r *Registry) DrawPixel(id ID, layer uint8, x, y uint16, c types.Color) error {
	d, err := r.displayAt(id)
	if err != nil {
		return err
	}
	d.Panel.DrawPixel(layer, x, y, c)
	return nil
}

// DisplaySize reports the panel dimensions in pixels.
func (r *Registry) DisplaySize(id ID) (width, height uint16, err error) {
	d, err := r.displayAt(id)
	if err != nil {
		return 0, 0, err
	}
	width, height = d.Panel.Size()
	return width, height, nil
}

// FramebufferAddress reports the backing address of a layer; 0 when the
// panel has no addressable framebuffer for that layer.
func (r *Registry) FramebufferAddress(id ID, layer uint8) (uint32, error) {
	d, err := r.displayAt(id)
	if err != nil {
		return 0, err
	}
	return d.Panel.LayerAddress(layer), nil
}

// SetFramebufferAddress repoints a layer's backing address. Panels
// without relocatable framebuffers ignore the call.
func (r *Registry) SetFramebufferAddress(id ID, layer uint8, addr uint32) error {
	d, err := r.displayAt(id)
	if err != nil {
		return err
	}
	d.Panel.SetLayerAddress(layer, addr)
	return nil
}
