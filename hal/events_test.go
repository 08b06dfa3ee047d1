package hal_test

import (
	"testing"
	"time"

	"smolos-go/hal"
	"smolos-go/platform"
	"smolos-go/types"
)

func waitForCallback(t *testing.T, ch <-chan hal.ID) hal.ID {
	t.Helper()
	select {
	case id := <-ch:
		return id
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for callback")
		return 0
	}
}

func TestCallbackDelivery(t *testing.T) {
	reg, _, port := newTestTable(t)
	reg.Start(t.Context())

	got := make(chan hal.ID, 4)
	if err := reg.ConfigureCallback(1, func(id hal.ID) { got <- id }); err != nil {
		t.Fatalf("ConfigureCallback: %v", err)
	}

	port.Inject('x')
	if id := waitForCallback(t, got); id != 1 {
		t.Fatalf("callback got id %d, want 1", id)
	}
	// Exactly once per event.
	select {
	case id := <-got:
		t.Fatalf("unexpected second delivery for id %d", id)
	case <-time.After(50 * time.Millisecond):
	}

	// Cleared callbacks fire nothing.
	if err := reg.ConfigureCallback(1, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	port.Inject('y')
	select {
	case id := <-got:
		t.Fatalf("delivery after clear for id %d", id)
	case <-time.After(50 * time.Millisecond):
	}
	// The data itself is still buffered.
	if data, err := reg.Read(1); err != nil || len(data) != 2 {
		t.Fatalf("read = %v, %v; want both injected bytes", data, err)
	}
}

// Receives for a port that appear while data is already pending collapse
// into the queued event; new data after a drain queues a fresh one.
func TestCallbackCoalescing(t *testing.T) {
	reg, _, port := newTestTable(t)
	reg.Start(t.Context())

	mu := make(chan struct{}, 1)
	block := make(chan struct{})
	got := make(chan hal.ID, 8)
	reg.ConfigureCallback(1, func(id hal.ID) {
		select {
		case mu <- struct{}{}:
			<-block // hold the pump so later injects land while busy
		default:
		}
		got <- id
	})

	port.Inject('a')
	<-mu // first callback is running
	port.Inject('b')
	port.Inject('c')
	close(block)

	// First delivery, plus at most one follow-up for the coalesced pair.
	waitForCallback(t, got)
	waitForCallback(t, got)
	select {
	case <-got:
		t.Fatal("coalesced receives produced a third event")
	case <-time.After(100 * time.Millisecond):
	}

	if data, err := reg.Read(1); err != nil || len(data) != 3 {
		t.Fatalf("read = %v, %v; want all three bytes", data, err)
	}
}

func TestReceiveUnknownPortIgnored(t *testing.T) {
	reg, _, _ := newTestTable(t)
	reg.Start(t.Context())

	stray := &platform.FakePort{}
	stray.StartReceive(reg)
	stray.Inject('z')

	if data, err := reg.Read(1); err != nil || len(data) != 0 {
		t.Fatalf("stray bytes reached entry 1: %v, %v", data, err)
	}
	if reg.EventDrops() != 0 {
		t.Fatal("stray port must not count as a drop")
	}
}

func TestReceiveOnOutOnlySerialIgnored(t *testing.T) {
	port := &platform.FakePort{}
	reg, err := hal.New(hal.Config{
		Interfaces: []hal.EntryConfig{
			{Name: "tx-only", Direction: types.DirOut, Payload: hal.Serial{Port: port}},
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	reg.Start(t.Context())

	// The adapter may still deliver; the registry has nowhere to put it.
	reg.OnReceive(port, []byte{1})
	if _, err := reg.Read(0); err == nil {
		t.Fatal("read on an out-only entry must fail")
	}
}
