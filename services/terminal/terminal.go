// Package terminal is a line-oriented console over one serial interface
// of the registry: echoed input, backspace editing, and a small command
// set for poking at the interface table.
package terminal

import (
	"context"

	"github.com/google/shlex"

	"smolos-go/errcode"
	"smolos-go/hal"
	"smolos-go/types"
	"smolos-go/x/conv"
	"smolos-go/x/strconvx"
)

// maxLine bounds the input line buffer; excess bytes are dropped.
const maxLine = 256

type Options struct {
	Console     string // registry name of the serial interface
	Owner       uint32 // lock token; 0 => run unlocked
	Prompt      string // "" => "> "
	CoreClockHz uint32 // shown by `sys`; 0 => unknown
}

// Run serves the console until ctx is cancelled. It registers a receive
// callback on the console interface and drains its buffer whenever new
// data is signalled; commands execute on this goroutine, never in the
// receive path.
func Run(ctx context.Context, reg *hal.Registry, opt Options) error {
	id, err := reg.LookupID(opt.Console)
	if err != nil {
		return err
	}
	if opt.Owner != 0 {
		if err := reg.Lock(id, opt.Owner); err != nil {
			return err
		}
		defer reg.Unlock(id, opt.Owner)
	}

	t := &session{reg: reg, id: id, opt: opt}
	if t.opt.Prompt == "" {
		t.opt.Prompt = "> "
	}

	notify := make(chan struct{}, 1)
	if err := reg.ConfigureCallback(id, func(hal.ID) {
		select {
		case notify <- struct{}{}:
		default:
		}
	}); err != nil {
		return err
	}
	defer reg.ConfigureCallback(id, nil)

	t.puts("\r\nsmolos console ready, type 'help' for commands\r\n")
	t.puts(t.opt.Prompt)

	for {
		select {
		case <-ctx.Done():
			t.puts("\r\nconsole stopped\r\n")
			return nil
		case <-notify:
			data, err := reg.Read(id)
			if errcode.Of(err) == errcode.BufferOverrun {
				t.puts("\r\n! buffer_overrun: input was dropped\r\n")
				t.puts(t.opt.Prompt)
				t.line = t.line[:0]
			}
			for _, b := range data {
				t.input(b)
			}
		}
	}
}

type session struct {
	reg  *hal.Registry
	id   hal.ID
	opt  Options
	line []byte
}

// puts writes best-effort; a dead console must not kill the service.
func (t *session) puts(s string) {
	t.reg.SerialWrite(t.id, []byte(s))
}

func (t *session) input(b byte) {
	switch {
	case b == '\r' || b == '\n':
		t.puts("\r\n")
		if len(t.line) > 0 {
			t.exec(string(t.line))
			t.line = t.line[:0]
		}
		t.puts(t.opt.Prompt)
	case b == 0x08 || b == 0x7F: // backspace / DEL
		if len(t.line) > 0 {
			t.line = t.line[:len(t.line)-1]
			t.puts("\b \b")
		}
	case b >= 0x20 && b < 0x7F:
		if len(t.line) < maxLine {
			t.line = append(t.line, b)
			t.puts(string([]byte{b}))
		}
	default:
		// control bytes other than CR/LF/BS are ignored
	}
}

func (t *session) exec(line string) {
	argv, err := shlex.Split(line)
	if err != nil || len(argv) == 0 {
		t.puts("! cannot parse line\r\n")
		return
	}
	switch argv[0] {
	case "help":
		t.puts("commands:\r\n" +
			"  ifaces                      list the interface table\r\n" +
			"  write <name> <set|clear|toggle>\r\n" +
			"  send <name> <text...>       transmit on a serial interface\r\n" +
			"  read <name>                 drain a receive buffer (hex)\r\n" +
			"  display <name> on|off|size|clear <color>|pixel <x> <y> <color>|fb <layer> [addr]\r\n" +
			"  sys                         core clock and event stats\r\n")
	case "ifaces":
		t.cmdIfaces()
	case "write":
		t.cmdWrite(argv[1:])
	case "send":
		t.cmdSend(argv[1:])
	case "read":
		t.cmdRead(argv[1:])
	case "display":
		t.cmdDisplay(argv[1:])
	case "sys":
		t.cmdSys()
	default:
		t.puts("! unknown command: " + argv[0] + "\r\n")
	}
}

// fail prints one line with the result code and its severity tag.
func (t *session) fail(err error) {
	t.puts("! " + string(errcode.Of(err)) + " (" + errcode.LevelOf(err).String() + ")\r\n")
}

func (t *session) resolve(name string) (hal.ID, bool) {
	id, err := t.reg.LookupID(name)
	if err != nil {
		t.fail(err)
		return 0, false
	}
	return id, true
}

func (t *session) cmdIfaces() {
	for i := 0; i < t.reg.Len(); i++ {
		d, err := t.reg.Describe(hal.ID(i))
		if err != nil {
			t.fail(err)
			return
		}
		line := "  " + strconvx.Itoa(int(d.ID)) + "  " + pad(d.Name, 12) +
			pad(string(d.Kind), 9) + pad(string(d.Direction), 7)
		if d.HasBuffer {
			line += " buf=" + strconvx.Itoa(d.Buffered)
		}
		if d.LockOwner != 0 {
			line += " locked=" + strconvx.FormatUint(uint64(d.LockOwner), 10)
		}
		t.puts(line + "\r\n")
	}
}

func (t *session) cmdWrite(args []string) {
	if len(args) != 2 {
		t.puts("usage: write <name> <set|clear|toggle>\r\n")
		return
	}
	action, ok := types.ParsePinAction(args[1])
	if !ok {
		t.puts("! unknown action: " + args[1] + "\r\n")
		return
	}
	id, ok := t.resolve(args[0])
	if !ok {
		return
	}
	if err := t.reg.DigitalWrite(id, action); err != nil {
		t.fail(err)
		return
	}
	t.puts("ok\r\n")
}

func (t *session) cmdSend(args []string) {
	if len(args) < 2 {
		t.puts("usage: send <name> <text...>\r\n")
		return
	}
	id, ok := t.resolve(args[0])
	if !ok {
		return
	}
	msg := args[1]
	for _, a := range args[2:] {
		msg += " " + a
	}
	if err := t.reg.SerialWrite(id, []byte(msg)); err != nil {
		t.fail(err)
		return
	}
	t.puts("sent " + strconvx.Itoa(len(msg)) + " bytes\r\n")
}

func (t *session) cmdRead(args []string) {
	if len(args) != 1 {
		t.puts("usage: read <name>\r\n")
		return
	}
	id, ok := t.resolve(args[0])
	if !ok {
		return
	}
	data, err := t.reg.Read(id)
	overrun := errcode.Of(err) == errcode.BufferOverrun
	if err != nil && !overrun {
		t.fail(err)
		return
	}
	var hx [2]byte
	out := strconvx.Itoa(len(data)) + " bytes:"
	for _, b := range data {
		out += " " + string(conv.U8Hex(hx[:], b))
	}
	t.puts(out + "\r\n")
	if overrun {
		t.puts("! buffer_overrun since last read\r\n")
	}
}

func (t *session) cmdDisplay(args []string) {
	if len(args) < 2 {
		t.puts("usage: display <name> on|off|size|clear <color>|pixel <x> <y> <color>|fb <layer> [addr]\r\n")
		return
	}
	id, ok := t.resolve(args[0])
	if !ok {
		return
	}
	var err error
	switch args[1] {
	case "on":
		err = t.reg.DisplayEnable(id, true)
	case "off":
		err = t.reg.DisplayEnable(id, false)
	case "size":
		var w, h uint16
		w, h, err = t.reg.DisplaySize(id)
		if err == nil {
			t.puts(strconvx.Itoa(int(w)) + "x" + strconvx.Itoa(int(h)) + "\r\n")
			return
		}
	case "clear":
		if len(args) != 3 {
			t.puts("usage: display <name> clear <color>\r\n")
			return
		}
		c, cok := parseColor(args[2])
		if !cok {
			t.puts("! unknown color: " + args[2] + "\r\n")
			return
		}
		err = t.reg.DisplayClear(id, 0, c)
	case "pixel":
		if len(args) != 5 {
			t.puts("usage: display <name> pixel <x> <y> <color>\r\n")
			return
		}
		x, xerr := strconvx.ParseUint(args[2], 0, 16)
		y, yerr := strconvx.ParseUint(args[3], 0, 16)
		c, cok := parseColor(args[4])
		if xerr != nil || yerr != nil || !cok {
			t.puts("! bad pixel arguments\r\n")
			return
		}
		err = t.reg.DrawPixel(id, 0, uint16(x), uint16(y), c)
	case "fb":
		if len(args) != 3 && len(args) != 4 {
			t.puts("usage: display <name> fb <layer> [addr]\r\n")
			return
		}
		layer, lerr := strconvx.ParseUint(args[2], 0, 8)
		if lerr != nil {
			t.puts("! bad layer\r\n")
			return
		}
		if len(args) == 4 {
			addr, aerr := strconvx.ParseUint(args[3], 0, 32)
			if aerr != nil {
				t.puts("! bad address\r\n")
				return
			}
			err = t.reg.SetFramebufferAddress(id, uint8(layer), uint32(addr))
		} else {
			var addr uint32
			addr, err = t.reg.FramebufferAddress(id, uint8(layer))
			if err == nil {
				var hx [8]byte
				t.puts("0x" + string(conv.U32Hex(hx[:], addr)) + "\r\n")
				return
			}
		}
	default:
		t.puts("! unknown display verb: " + args[1] + "\r\n")
		return
	}
	if err != nil {
		t.fail(err)
		return
	}
	t.puts("ok\r\n")
}

func (t *session) cmdSys() {
	clock := "unknown"
	if t.opt.CoreClockHz != 0 {
		clock = strconvx.FormatUint(uint64(t.opt.CoreClockHz), 10) + " Hz"
	}
	t.puts("core clock: " + clock + "\r\n")
	t.puts("interfaces: " + strconvx.Itoa(t.reg.Len()) + "\r\n")
	t.puts("event drops: " + strconvx.FormatUint(uint64(t.reg.EventDrops()), 10) + "\r\n")
}

// parseColor accepts the named palette or a numeric ARGB value
// ("0xFF00FF00" or decimal).
func parseColor(s string) (types.Color, bool) {
	if c, ok := types.NamedColor(s); ok {
		return c, true
	}
	v, err := strconvx.ParseUint(s, 0, 32)
	if err != nil {
		return 0, false
	}
	return types.Color(v), true
}

func pad(s string, n int) string {
	for len(s) < n {
		s += " "
	}
	return s
}
