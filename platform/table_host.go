//go:build !rp2040 && !rp2350

package platform

import (
	"time"

	"smolos-go/errcode"
	"smolos-go/hal"
	"smolos-go/types"
)

// BuildTable resolves a declarative table into a hal.Config with live
// host handles: gpio entries get fake pins, serial entries get stdio, a
// real tty or an in-memory fake, display entries get in-memory panels.
// The returned handles map lets callers (demos, tests) reach the
// concrete adapters by interface name.
func BuildTable(cfg types.TableConfig) (hal.Config, map[string]any, error) {
	out := hal.Config{
		QueueDepth:  cfg.QueueDepth,
		MasterOwner: cfg.MasterOwner,
	}
	handles := make(map[string]any, len(cfg.Interfaces))

	for _, ic := range cfg.Interfaces {
		var payload hal.Payload
		switch ic.Kind {
		case types.KindGPIO:
			pin := &FakePin{}
			if ic.Initial {
				pin.Set()
			}
			handles[ic.Name] = pin
			payload = hal.DigitalIO{Pin: pin}

		case types.KindSerial:
			port, err := openHostPort(ic)
			if err != nil {
				return hal.Config{}, nil, err
			}
			handles[ic.Name] = port
			payload = hal.Serial{
				Port:            port,
				ReceiveCapacity: ic.RXSize,
				WriteTimeout:    time.Duration(ic.WriteTimeoutMs) * time.Millisecond,
			}

		case types.KindDisplay:
			w, h := ic.Width, ic.Height
			if w == 0 {
				w = 128
			}
			if h == 0 {
				h = 64
			}
			panel := NewFakePanel(w, h, ic.Layers)
			handles[ic.Name] = panel
			payload = hal.Display{Panel: panel}

		default:
			return hal.Config{}, nil, &errcode.E{
				C: errcode.InvalidConfig, Level: errcode.LevelFatal,
				Op: "build_table", Msg: "unknown kind for " + ic.Name,
			}
		}
		out.Interfaces = append(out.Interfaces, hal.EntryConfig{
			Name:      ic.Name,
			Direction: ic.Direction,
			Payload:   payload,
		})
	}
	return out, handles, nil
}

func openHostPort(ic types.InterfaceConfig) (hal.SerialPort, error) {
	switch ic.Port {
	case "stdio":
		return NewStdioPort(), nil
	case "", "fake":
		return &FakePort{}, nil
	default:
		baud := ic.Baud
		if baud == 0 {
			baud = 115200
		}
		port, err := OpenTTY(ic.Port, baud)
		if err != nil {
			return nil, &errcode.E{
				C: errcode.InvalidConfig, Level: errcode.LevelFatal,
				Op: "build_table", Msg: "open " + ic.Port, Err: err,
			}
		}
		return port, nil
	}
}
