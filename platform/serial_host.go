//go:build !rp2040 && !rp2350

package platform

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/tarm/serial"

	"smolos-go/hal"
)

// StdioPort is a hal.SerialPort over the process's stdin/stdout, the host
// stand-in for a console UART. One receive goroutine reads stdin in
// chunks and hands them to the sink.
type StdioPort struct {
	mu   sync.Mutex
	once sync.Once
	out  io.Writer
	in   io.Reader
}

var _ hal.SerialPort = (*StdioPort)(nil)

func NewStdioPort() *StdioPort {
	return &StdioPort{out: os.Stdout, in: os.Stdin}
}

func (p *StdioPort) Transmit(b []byte, _ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := p.out.Write(b)
	return err
}

func (p *StdioPort) StartReceive(sink hal.ReceiveSink) {
	p.once.Do(func() {
		go p.receiveLoop(sink)
	})
}

func (p *StdioPort) receiveLoop(sink hal.ReceiveSink) {
	buf := make([]byte, 64)
	for {
		n, err := p.in.Read(buf)
		if n > 0 {
			sink.OnReceive(p, append([]byte(nil), buf[:n]...))
		}
		if err != nil {
			return
		}
	}
}

// TTYPort is a hal.SerialPort over a real host serial device (tarm).
// The transmit bound is best-effort: host tty writes land in the kernel
// buffer and rarely block, so the timeout is not enforced here.
type TTYPort struct {
	mu   sync.Mutex
	once sync.Once
	port *serial.Port
}

var _ hal.SerialPort = (*TTYPort)(nil)

// OpenTTY opens a host serial device, e.g. /dev/ttyUSB0.
func OpenTTY(device string, baud uint32) (*TTYPort, error) {
	sp, err := serial.OpenPort(&serial.Config{
		Name:        device,
		Baud:        int(baud),
		ReadTimeout: 250 * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}
	return &TTYPort{port: sp}, nil
}

func (p *TTYPort) Transmit(b []byte, _ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := p.port.Write(b)
	return err
}

func (p *TTYPort) StartReceive(sink hal.ReceiveSink) {
	p.once.Do(func() {
		go p.receiveLoop(sink)
	})
}

func (p *TTYPort) receiveLoop(sink hal.ReceiveSink) {
	buf := make([]byte, 64)
	for {
		n, err := p.port.Read(buf)
		if n > 0 {
			sink.OnReceive(p, append([]byte(nil), buf[:n]...))
		}
		if err != nil && err != io.EOF {
			return
		}
	}
}

func (p *TTYPort) Close() error { return p.port.Close() }
