package hal

import (
	"smolos-go/errcode"
	"smolos-go/types"
)

// DigitalWrite applies action to the pin behind id. Checks run in a fixed
// order (id, direction, kind) and a failed check touches no hardware.
func (r *Registry) DigitalWrite(id ID, action types.PinAction) error {
	e, err := r.entryAt(id)
	if err != nil {
		return err
	}
	if !e.dir.CanWrite() {
		return errcode.DirectionMismatch
	}
	p, ok := e.payload.(DigitalIO)
	if !ok {
		return errcode.KindMismatch
	}
	switch action {
	case types.PinSet:
		p.Pin.Set()
	case types.PinClear:
		p.Pin.Clear()
	case types.PinToggle:
		p.Pin.Toggle()
	}
	return nil
}
