//go:build rp2040 || rp2350

package platform

import (
	"context"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"smolos-go/hal"
)

// CoreClockHz reports the configured CPU frequency.
func CoreClockHz() uint32 { return machine.CPUFrequency() }

// ----------------------------- GPIO (rp2) ------------------------------------

// MachinePin adapts one machine.Pin to hal.DigitalPin.
type MachinePin struct {
	p machine.Pin
}

var _ hal.DigitalPin = (*MachinePin)(nil)

// OutputPin configures p as a push-pull output at the given initial level.
func OutputPin(p machine.Pin, initial bool) *MachinePin {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Set(initial)
	return &MachinePin{p: p}
}

func (m *MachinePin) Set()   { m.p.High() }
func (m *MachinePin) Clear() { m.p.Low() }
func (m *MachinePin) Toggle() {
	if m.p.Get() {
		m.p.Low()
	} else {
		m.p.High()
	}
}

// ----------------------------- Serial (rp2) ----------------------------------

// UARTPort adapts a uartx UART to hal.SerialPort. The driver's IRQ
// handler fills its own RX ring; the receive goroutine waits on it and
// forwards chunks to the sink, which keeps the registry's OnReceive out
// of interrupt context.
type UARTPort struct {
	u *uartx.UART
}

var _ hal.SerialPort = (*UARTPort)(nil)

// NewUARTPort wraps an already-Configured uartx UART.
func NewUARTPort(u *uartx.UART) *UARTPort {
	return &UARTPort{u: u}
}

// Transmit pushes the bytes through the TX FIFO. uartx writes block
// until the FIFO drains, so the bound is the wire itself.
func (p *UARTPort) Transmit(b []byte, _ time.Duration) error {
	_, err := p.u.Write(b)
	return err
}

func (p *UARTPort) StartReceive(sink hal.ReceiveSink) {
	go p.receiveLoop(sink)
}

func (p *UARTPort) receiveLoop(sink hal.ReceiveSink) {
	ctx := context.Background()
	buf := make([]byte, 64)
	for {
		if err := p.u.WaitReadable(ctx); err != nil {
			return
		}
		n, _ := p.u.Read(buf)
		if n > 0 {
			sink.OnReceive(p, append([]byte(nil), buf[:n]...))
		}
	}
}
