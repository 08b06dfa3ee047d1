package hal

import (
	"smolos-go/errcode"
)

// SerialWrite transmits p on the port behind id, blocking until the port
// accepts it or the entry's configured bound expires. A failed transmit
// surfaces as transmit_error wrapping the port's own error.
func (r *Registry) SerialWrite(id ID, p []byte) error {
	e, err := r.entryAt(id)
	if err != nil {
		return err
	}
	if !e.dir.CanWrite() {
		return errcode.DirectionMismatch
	}
	s, ok := e.payload.(Serial)
	if !ok {
		return errcode.KindMismatch
	}
	if err := s.Port.Transmit(p, e.timeout); err != nil {
		return errcode.Wrap(errcode.TransmitError, errcode.LevelCritical, "serial_write", err)
	}
	return nil
}

// Read drains the entry's receive ring: everything buffered so far in one
// step, empty when nothing arrived. Bytes appended while the drain runs
// stay queued for the next call. A receive overrun since the previous
// Read surfaces once as buffer_overrun alongside the drained bytes.
//
// The checks are id, then direction (write-only entries cannot read),
// then buffer presence. Kind is deliberately not checked: any entry that
// can legitimately buffer receive data is readable.
func (r *Registry) Read(id ID) ([]byte, error) {
	e, err := r.entryAt(id)
	if err != nil {
		return nil, err
	}
	if !e.dir.CanRead() {
		return nil, errcode.DirectionMismatch
	}
	if e.ring == nil {
		return nil, errcode.NoBuffer
	}
	data, overrun := e.ring.drain()
	if overrun {
		return data, errcode.BufferOverrun
	}
	return data, nil
}
