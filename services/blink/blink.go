// Package blink toggles a named digital interface on a fixed period, the
// firmware's visible sign of life.
package blink

import (
	"context"
	"time"

	"smolos-go/hal"
	"smolos-go/types"
)

type Options struct {
	Name   string        // registry name of the digital interface
	Period time.Duration // toggle interval; 0 => 500ms
	Owner  uint32        // lock token; 0 => run unlocked
}

// Run blinks until ctx is cancelled, then leaves the pin cleared. The
// interface is locked for the duration when an owner token is given.
func Run(ctx context.Context, reg *hal.Registry, opt Options) error {
	id, err := reg.LookupID(opt.Name)
	if err != nil {
		return err
	}
	if opt.Owner != 0 {
		if err := reg.Lock(id, opt.Owner); err != nil {
			return err
		}
		defer reg.Unlock(id, opt.Owner)
	}
	period := opt.Period
	if period <= 0 {
		period = 500 * time.Millisecond
	}

	tick := time.NewTicker(period)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			reg.DigitalWrite(id, types.PinClear)
			return nil
		case <-tick.C:
			if err := reg.DigitalWrite(id, types.PinToggle); err != nil {
				return err
			}
		}
	}
}
