//go:build !rp2040 && !rp2350

package platform

import (
	"bytes"
	"image/color"
	"testing"
	"time"

	"smolos-go/errcode"
	"smolos-go/hal"
	"smolos-go/types"
)

func TestFakePinRecordsState(t *testing.T) {
	p := &FakePin{}
	p.Set()
	if !p.Level() {
		t.Fatal("set lost")
	}
	p.Toggle()
	if p.Level() || p.Toggles() != 1 {
		t.Fatal("toggle lost")
	}
	p.Clear()
	if p.Level() {
		t.Fatal("clear lost")
	}
}

func TestFakePortTransmitAndTimeout(t *testing.T) {
	p := &FakePort{}
	if err := p.Transmit([]byte("abc"), 0); err != nil {
		t.Fatalf("transmit: %v", err)
	}
	if !bytes.Equal(p.Sent(), []byte("abc")) {
		t.Fatalf("sent %q", p.Sent())
	}
	p.TransmitDelay = 50 * time.Millisecond
	if err := p.Transmit([]byte("x"), 10*time.Millisecond); err == nil {
		t.Fatal("slow wire with a tight bound should fail")
	}
	if err := p.Transmit([]byte("x"), 0); err != nil {
		t.Fatalf("wait-forever policy must ride out the delay: %v", err)
	}
}

type sinkFunc func(port hal.SerialPort, p []byte)

func (f sinkFunc) OnReceive(port hal.SerialPort, p []byte) { f(port, p) }

func TestFakePortInject(t *testing.T) {
	p := &FakePort{}
	p.Inject('q') // unarmed: dropped, not a panic

	var got []byte
	p.StartReceive(sinkFunc(func(port hal.SerialPort, b []byte) {
		if port != hal.SerialPort(p) {
			t.Error("sink saw the wrong port handle")
		}
		got = append(got, b...)
	}))
	p.Inject('h', 'i')
	if !bytes.Equal(got, []byte("hi")) {
		t.Fatalf("sink got %q", got)
	}
}

func TestFakePanelBounds(t *testing.T) {
	p := NewFakePanel(8, 4, 1)
	p.DrawPixel(0, 7, 3, types.ColorRed)
	if p.PixelAt(0, 7, 3) != types.ColorRed {
		t.Fatal("in-range pixel lost")
	}
	// Out-of-range writes are ignored, reads come back zero.
	p.DrawPixel(0, 8, 0, types.ColorRed)
	p.DrawPixel(3, 0, 0, types.ColorRed)
	if p.PixelAt(0, 8, 0) != 0 || p.PixelAt(3, 0, 0) != 0 {
		t.Fatal("out-of-range access leaked")
	}
	p.SetLayerAddress(5, 0xC0000000)
	if p.LayerAddress(5) != 0 {
		t.Fatal("unknown layer address stored")
	}
}

// stubDisplayer is a minimal drivers.Displayer for the adapter test.
type stubDisplayer struct {
	w, h    int16
	pixels  map[[2]int16]color.RGBA
	flushes int
}

func (d *stubDisplayer) Size() (int16, int16) { return d.w, d.h }
func (d *stubDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.pixels[[2]int16{x, y}] = c
}
func (d *stubDisplayer) Display() error {
	d.flushes++
	return nil
}

func TestDisplayerPanel(t *testing.T) {
	stub := &stubDisplayer{w: 4, h: 2, pixels: make(map[[2]int16]color.RGBA)}
	p := NewDisplayerPanel(stub)

	if w, h := p.Size(); w != 4 || h != 2 {
		t.Fatalf("size %dx%d", w, h)
	}
	p.DrawPixel(0, 1, 1, types.ColorGreen)
	got := stub.pixels[[2]int16{1, 1}]
	if got.G != 0xFF || got.R != 0 || got.A != 0xFF {
		t.Fatalf("pixel color %+v", got)
	}
	if stub.flushes != 1 {
		t.Fatalf("flushes = %d", stub.flushes)
	}
	// Only layer 0 exists.
	p.DrawPixel(1, 0, 0, types.ColorRed)
	if _, ok := stub.pixels[[2]int16{0, 0}]; ok {
		t.Fatal("layer 1 write reached the device")
	}
	p.Clear(0, types.ColorBlack)
	if len(stub.pixels) != 8 {
		t.Fatalf("clear painted %d pixels, want 8", len(stub.pixels))
	}
}

func TestBuildTable(t *testing.T) {
	cfg := types.TableConfig{
		Interfaces: []types.InterfaceConfig{
			{Name: "led", Kind: types.KindGPIO, Direction: types.DirOut, Initial: true},
			{Name: "uart", Kind: types.KindSerial, Direction: types.DirInOut, Port: "fake", RXSize: 32},
			{Name: "panel", Kind: types.KindDisplay, Direction: types.DirOut, Width: 16, Height: 8},
		},
	}
	halCfg, handles, err := BuildTable(cfg)
	if err != nil {
		t.Fatalf("BuildTable: %v", err)
	}
	if len(halCfg.Interfaces) != 3 {
		t.Fatalf("got %d entries", len(halCfg.Interfaces))
	}
	if pin, ok := handles["led"].(*FakePin); !ok || !pin.Level() {
		t.Fatal("led handle missing or initial level lost")
	}
	if _, ok := handles["uart"].(*FakePort); !ok {
		t.Fatal("uart handle missing")
	}
	if _, ok := handles["panel"].(*FakePanel); !ok {
		t.Fatal("panel handle missing")
	}
	if _, err := hal.New(halCfg); err != nil {
		t.Fatalf("resolved table must build a registry: %v", err)
	}

	_, _, err = BuildTable(types.TableConfig{
		Interfaces: []types.InterfaceConfig{{Name: "x", Kind: "motor"}},
	})
	if errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("unknown kind: got %v, want invalid_config", err)
	}
}
