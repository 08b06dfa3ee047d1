//go:build !rp2040 && !rp2350

package platform

import (
	"sync"
	"time"

	"smolos-go/hal"
	"smolos-go/types"
)

// CoreClockHz reports the core clock frequency. Hosts have no fixed core
// clock; 0 means unknown.
func CoreClockHz() uint32 { return 0 }

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements hal.DigitalPin and records what happened to it.
type FakePin struct {
	mu      sync.Mutex
	level   bool
	toggles int
}

func (p *FakePin) Set() {
	p.mu.Lock()
	p.level = true
	p.mu.Unlock()
}

func (p *FakePin) Clear() {
	p.mu.Lock()
	p.level = false
	p.mu.Unlock()
}

func (p *FakePin) Toggle() {
	p.mu.Lock()
	p.level = !p.level
	p.toggles++
	p.mu.Unlock()
}

func (p *FakePin) Level() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *FakePin) Toggles() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.toggles
}

// ----------------------------- Serial (host) ---------------------------------

// FakePort implements hal.SerialPort in memory. Transmits are recorded;
// Inject simulates a receive-complete from the wire side.
type FakePort struct {
	mu   sync.Mutex
	sent []byte
	sink hal.ReceiveSink

	// FailTransmit, when set, makes every Transmit report it.
	FailTransmit error
	// TransmitDelay simulates a slow wire; Transmit fails when it
	// exceeds a nonzero timeout.
	TransmitDelay time.Duration
}

var _ hal.SerialPort = (*FakePort)(nil)

func (p *FakePort) Transmit(b []byte, timeout time.Duration) error {
	p.mu.Lock()
	fail := p.FailTransmit
	delay := p.TransmitDelay
	p.mu.Unlock()
	if fail != nil {
		return fail
	}
	if timeout > 0 && delay > timeout {
		return errTransmitTimeout
	}
	if delay > 0 {
		time.Sleep(delay)
	}
	p.mu.Lock()
	p.sent = append(p.sent, b...)
	p.mu.Unlock()
	return nil
}

func (p *FakePort) StartReceive(sink hal.ReceiveSink) {
	p.mu.Lock()
	p.sink = sink
	p.mu.Unlock()
}

// Inject delivers bytes as one receive-complete event. No-op until
// StartReceive armed the port.
func (p *FakePort) Inject(b ...byte) {
	p.mu.Lock()
	sink := p.sink
	p.mu.Unlock()
	if sink != nil {
		sink.OnReceive(p, b)
	}
}

// Sent returns everything transmitted so far.
func (p *FakePort) Sent() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.sent...)
}

// ResetSent clears the transmit record.
func (p *FakePort) ResetSent() {
	p.mu.Lock()
	p.sent = nil
	p.mu.Unlock()
}

type timeoutError struct{}

func (timeoutError) Error() string { return "transmit timed out" }

var errTransmitTimeout = timeoutError{}

// ----------------------------- Display (host) --------------------------------

// FakePanel implements hal.DisplayPanel as an in-memory framebuffer per
// layer. Out-of-range layers and coordinates are ignored on writes and
// read back as zero, matching what the registry expects of panels.
type FakePanel struct {
	mu     sync.Mutex
	w, h   uint16
	on     bool
	pixels [][]types.Color // per layer, len w*h
	addrs  []uint32
}

var _ hal.DisplayPanel = (*FakePanel)(nil)

// NewFakePanel builds a panel with the given size and layer count
// (minimum 1).
func NewFakePanel(w, h uint16, layers uint8) *FakePanel {
	if layers == 0 {
		layers = 1
	}
	p := &FakePanel{w: w, h: h}
	for i := uint8(0); i < layers; i++ {
		p.pixels = append(p.pixels, make([]types.Color, int(w)*int(h)))
		p.addrs = append(p.addrs, 0)
	}
	return p
}

func (p *FakePanel) DisplayOn() {
	p.mu.Lock()
	p.on = true
	p.mu.Unlock()
}

func (p *FakePanel) DisplayOff() {
	p.mu.Lock()
	p.on = false
	p.mu.Unlock()
}

func (p *FakePanel) On() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.on
}

func (p *FakePanel) Size() (uint16, uint16) { return p.w, p.h }

func (p *FakePanel) Clear(layer uint8, c types.Color) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(layer) >= len(p.pixels) {
		return
	}
	fb := p.pixels[layer]
	for i := range fb {
		fb[i] = c
	}
}

func (p *FakePanel) DrawPixel(layer uint8, x, y uint16, c types.Color) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(layer) >= len(p.pixels) || x >= p.w || y >= p.h {
		return
	}
	p.pixels[layer][int(y)*int(p.w)+int(x)] = c
}

// PixelAt reads a pixel back; zero for anything out of range.
func (p *FakePanel) PixelAt(layer uint8, x, y uint16) types.Color {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(layer) >= len(p.pixels) || x >= p.w || y >= p.h {
		return 0
	}
	return p.pixels[layer][int(y)*int(p.w)+int(x)]
}

func (p *FakePanel) LayerAddress(layer uint8) uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(layer) >= len(p.addrs) {
		return 0
	}
	return p.addrs[layer]
}

func (p *FakePanel) SetLayerAddress(layer uint8, addr uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if int(layer) >= len(p.addrs) {
		return
	}
	p.addrs[layer] = addr
}
