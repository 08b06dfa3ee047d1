package hal

import (
	"time"

	"smolos-go/types"
)

// DigitalPin is the pin-level contract a gpio entry drives.
// Calls are infallible register writes on real hardware.
type DigitalPin interface {
	Set()
	Clear()
	Toggle()
}

// ReceiveSink accepts receive-complete data for a port. The registry is
// the sink; adapters call OnReceive from their RX path and keep it short.
type ReceiveSink interface {
	OnReceive(port SerialPort, p []byte)
}

// SerialPort is the transmit/receive contract a serial entry drives.
// Transmit blocks until the payload is accepted or the bound expires
// (0 = wait forever). StartReceive arms reception; after it is called the
// adapter delivers every received chunk to sink.OnReceive, identifying
// itself by handle, and re-arms on its own.
type SerialPort interface {
	Transmit(p []byte, timeout time.Duration) error
	StartReceive(sink ReceiveSink)
}

// DisplayPanel is the panel-level contract a display entry drives.
// The layer is addressed on every call; out-of-range layers or
// coordinates are the panel's concern (reads return 0, writes are
// dropped), so the methods stay infallible.
type DisplayPanel interface {
	DisplayOn()
	DisplayOff()
	Size() (width, height uint16)
	Clear(layer uint8, c types.Color)
	DrawPixel(layer uint8, x, y uint16, c types.Color)
	LayerAddress(layer uint8) uint32
	SetLayerAddress(layer uint8, addr uint32)
}

// Payload binds a table entry to its hardware resource. It is a closed
// set: exactly one of the variants below. The entry's kind is derived
// from the variant, so kind and payload shape cannot drift apart.
type Payload interface {
	Kind() types.Kind
	isPayload()
}

// DigitalIO drives a single pin.
type DigitalIO struct {
	Pin DigitalPin
}

// Serial drives a byte-stream port. ReceiveCapacity sizes the receive
// ring for in/inout entries (0 = default; rounded up to a power of two).
// WriteTimeout bounds Transmit; zero waits forever.
type Serial struct {
	Port            SerialPort
	ReceiveCapacity int
	WriteTimeout    time.Duration
}

// Display drives a panel.
type Display struct {
	Panel DisplayPanel
}

func (DigitalIO) Kind() types.Kind { return types.KindGPIO }
func (Serial) Kind() types.Kind    { return types.KindSerial }
func (Display) Kind() types.Kind   { return types.KindDisplay }

func (DigitalIO) isPayload() {}
func (Serial) isPayload()    {}
func (Display) isPayload()   {}
