//go:build !rp2040 && !rp2350

// smolos-host runs the interface registry on a development machine: a
// fake LED, a console on stdio (or a real tty via -serial) and an
// in-memory display panel, with the blink and terminal services on top.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smolos-go/hal"
	"smolos-go/platform"
	"smolos-go/services/blink"
	"smolos-go/services/terminal"
	"smolos-go/types"
)

const (
	ownerBlink    = 0x10
	ownerTerminal = 0x20
	ownerMaster   = 0xFFFF
)

func main() {
	var (
		configPath = flag.String("config", "", "interface table JSON (overrides the built-in table)")
		serialDev  = flag.String("serial", "stdio", "console port: stdio or a tty path")
		baud       = flag.Uint("baud", 115200, "console baud rate (tty only)")
	)
	flag.Parse()

	cfg := defaultTable(*serialDev, uint32(*baud))
	if *configPath != "" {
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			println("! cannot read config:", err.Error())
			os.Exit(1)
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			println("! cannot parse config:", err.Error())
			os.Exit(1)
		}
	}

	halCfg, _, err := platform.BuildTable(cfg)
	if err != nil {
		println("! table build failed:", err.Error())
		os.Exit(1)
	}
	reg, err := hal.New(halCfg)
	if err != nil {
		println("! registry init failed:", err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	println("[main] starting registry with", reg.Len(), "interfaces")
	reg.Start(ctx)

	go func() {
		if err := blink.Run(ctx, reg, blink.Options{
			Name:   "led",
			Period: time.Second,
			Owner:  ownerBlink,
		}); err != nil {
			println("! blink stopped:", err.Error())
		}
	}()

	if err := terminal.Run(ctx, reg, terminal.Options{
		Console:     "console",
		Owner:       ownerTerminal,
		CoreClockHz: platform.CoreClockHz(),
	}); err != nil {
		println("! terminal stopped:", err.Error())
		os.Exit(1)
	}
}

func defaultTable(serialDev string, baud uint32) types.TableConfig {
	return types.TableConfig{
		MasterOwner: ownerMaster,
		Interfaces: []types.InterfaceConfig{
			{Name: "led", Kind: types.KindGPIO, Direction: types.DirOut},
			{
				Name: "console", Kind: types.KindSerial, Direction: types.DirInOut,
				Port: serialDev, Baud: baud, RXSize: 64,
			},
			{
				Name: "panel", Kind: types.KindDisplay, Direction: types.DirOut,
				Width: 128, Height: 64, Layers: 2,
			},
		},
	}
}
