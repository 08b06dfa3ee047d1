package hal_test

import (
	"testing"

	"smolos-go/errcode"
	"smolos-go/hal"
	"smolos-go/platform"
	"smolos-go/types"
)

func newLockedTable(t *testing.T) *hal.Registry {
	t.Helper()
	reg, err := hal.New(hal.Config{
		MasterOwner: 0xFFFF,
		Interfaces: []hal.EntryConfig{
			{Name: "led", Direction: types.DirOut, Payload: hal.DigitalIO{Pin: &platform.FakePin{}}},
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return reg
}

func TestLockOwnership(t *testing.T) {
	reg := newLockedTable(t)

	if err := reg.Lock(0, 7); err != nil {
		t.Fatalf("first lock: %v", err)
	}
	if err := reg.Lock(0, 7); err != nil {
		t.Fatalf("re-lock by holder: %v", err)
	}
	if err := reg.Lock(0, 8); err != errcode.Locked {
		t.Fatalf("lock by other owner: got %v, want interface_locked", err)
	}
	if err := reg.Unlock(0, 8); err != errcode.Locked {
		t.Fatalf("unlock by other owner: got %v, want interface_locked", err)
	}
	if err := reg.Unlock(0, 7); err != nil {
		t.Fatalf("unlock by holder: %v", err)
	}
	// Unlocking an unlocked entry succeeds.
	if err := reg.Unlock(0, 7); err != nil {
		t.Fatalf("idempotent unlock: %v", err)
	}
}

func TestMasterTakeover(t *testing.T) {
	reg := newLockedTable(t)

	reg.Lock(0, 7)
	if err := reg.Lock(0, 0xFFFF); err != nil {
		t.Fatalf("master takeover: %v", err)
	}
	if err := reg.Lock(0, 7); err != errcode.Locked {
		t.Fatal("displaced owner should be locked out")
	}
	if err := reg.Unlock(0, 0xFFFF); err != nil {
		t.Fatalf("master unlock: %v", err)
	}
}

func TestAuthorize(t *testing.T) {
	reg := newLockedTable(t)

	if err := reg.Authorize(0, 7); err != nil {
		t.Fatalf("unlocked entry should authorize anyone: %v", err)
	}
	reg.Lock(0, 7)
	if err := reg.Authorize(0, 7); err != nil {
		t.Fatalf("holder should be authorized: %v", err)
	}
	if err := reg.Authorize(0, 8); err != errcode.Locked {
		t.Fatalf("other owner: got %v, want interface_locked", err)
	}
	// The master token gets no implicit pass.
	if err := reg.Authorize(0, 0xFFFF); err != errcode.Locked {
		t.Fatalf("master without takeover: got %v, want interface_locked", err)
	}
}

func TestLockRejectsZeroOwner(t *testing.T) {
	reg := newLockedTable(t)
	if err := reg.Lock(0, 0); errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("zero owner: got %v, want invalid_config", err)
	}
}
