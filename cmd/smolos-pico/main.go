//go:build rp2040 || rp2350

// smolos-pico runs the interface registry on a Raspberry Pi Pico: the
// onboard LED, a console on UART0 and the blink + terminal services.
package main

import (
	"context"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"smolos-go/hal"
	"smolos-go/platform"
	"smolos-go/services/blink"
	"smolos-go/services/terminal"
	"smolos-go/types"
)

const (
	ownerBlink    = 0x10
	ownerTerminal = 0x20
)

func main() {
	// Give the USB console a moment to enumerate.
	time.Sleep(3 * time.Second)
	println("[main] boot")

	if err := uartx.UART0.Configure(uartx.UARTConfig{BaudRate: 115200}); err != nil {
		println("! uart0 configure failed")
		return
	}

	reg, err := hal.New(hal.Config{
		Interfaces: []hal.EntryConfig{
			{
				Name:      "led",
				Direction: types.DirOut,
				Payload:   hal.DigitalIO{Pin: platform.OutputPin(machine.LED, false)},
			},
			{
				Name:      "console",
				Direction: types.DirInOut,
				Payload: hal.Serial{
					Port:            platform.NewUARTPort(uartx.UART0),
					ReceiveCapacity: 64,
				},
			},
		},
	})
	if err != nil {
		println("! registry init failed:", err.Error())
		return
	}

	ctx := context.Background()
	println("[main] starting registry with", reg.Len(), "interfaces")
	reg.Start(ctx)

	go blink.Run(ctx, reg, blink.Options{
		Name:   "led",
		Period: 500 * time.Millisecond,
		Owner:  ownerBlink,
	})

	if err := terminal.Run(ctx, reg, terminal.Options{
		Console:     "console",
		Owner:       ownerTerminal,
		CoreClockHz: platform.CoreClockHz(),
	}); err != nil {
		println("! terminal stopped:", err.Error())
	}
}
