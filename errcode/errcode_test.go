package errcode

import (
	"errors"
	"testing"
)

func TestCodesAreStableStrings(t *testing.T) {
	cases := map[string]Code{
		"ok":                  OK,
		"interface_not_found": NotFound,
		"invalid_interface_id": InvalidID,
		"direction_mismatch":  DirectionMismatch,
		"kind_mismatch":       KindMismatch,
		"transmit_error":      TransmitError,
		"no_buffer":           NoBuffer,
		"buffer_overrun":      BufferOverrun,
		"interface_locked":    Locked,
		"invalid_config":      InvalidConfig,
	}
	for want, c := range cases {
		if c.Error() != want {
			t.Fatalf("code %q mismatch: got %q", want, c.Error())
		}
	}
}

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Fatal("Of(nil) should be OK")
	}
	if Of(NoBuffer) != NoBuffer {
		t.Fatal("Of(bare code) should return the code")
	}
	wrapped := Wrap(TransmitError, LevelCritical, "serial_write", errors.New("uart stalled"))
	if Of(wrapped) != TransmitError {
		t.Fatalf("Of(*E) = %q, want transmit_error", Of(wrapped))
	}
	if Of(errors.New("plain")) != Error {
		t.Fatal("unknown errors should map to the generic code")
	}
}

func TestWrapKeepsCauseAndLevel(t *testing.T) {
	cause := errors.New("bus fault")
	err := Wrap(TransmitError, LevelCritical, "serial_write", cause)
	e, ok := err.(*E)
	if !ok {
		t.Fatalf("Wrap should return *E, got %T", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("wrapped error should unwrap to its cause")
	}
	if e.Op != "serial_write" {
		t.Fatalf("op lost: %q", e.Op)
	}
	if LevelOf(err) != LevelCritical {
		t.Fatalf("LevelOf = %v, want critical", LevelOf(err))
	}
	if LevelOf(NoBuffer) != LevelError {
		t.Fatal("bare codes should report LevelError")
	}
}

func TestLevelStrings(t *testing.T) {
	if LevelError.String() != "error" || LevelCritical.String() != "critical" || LevelFatal.String() != "fatal" {
		t.Fatal("level strings changed")
	}
}
