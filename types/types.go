package types

// ---- Interface kinds ----

// Kind discriminates what a table entry drives.
type Kind string

const (
	KindGPIO    Kind = "gpio"
	KindSerial  Kind = "serial"
	KindDisplay Kind = "display"
)

// ---- Directions ----

// Direction is the declared data-flow contract of an entry, fixed at build.
type Direction string

const (
	DirIn    Direction = "in"
	DirOut   Direction = "out"
	DirInOut Direction = "inout"
)

func (d Direction) Valid() bool {
	return d == DirIn || d == DirOut || d == DirInOut
}

// CanWrite reports whether write-class operations are allowed under d.
func (d Direction) CanWrite() bool { return d == DirOut || d == DirInOut }

// CanRead reports whether read-class operations are allowed under d.
func (d Direction) CanRead() bool { return d == DirIn || d == DirInOut }

// ---- Digital pin actions ----

type PinAction uint8

const (
	PinSet PinAction = iota
	PinClear
	PinToggle
)

func (a PinAction) String() string {
	switch a {
	case PinSet:
		return "set"
	case PinClear:
		return "clear"
	case PinToggle:
		return "toggle"
	default:
		return "?"
	}
}

// ParsePinAction maps a control verb ("set", "clear", "toggle") to an action.
func ParsePinAction(s string) (PinAction, bool) {
	switch s {
	case "set":
		return PinSet, true
	case "clear":
		return PinClear, true
	case "toggle":
		return PinToggle, true
	}
	return 0, false
}

// ---- Serial format ----

type Parity uint8

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

func (p Parity) String() string {
	switch p {
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	default:
		return "none"
	}
}

func (p Parity) MarshalJSON() ([]byte, error) { return []byte(`"` + p.String() + `"`), nil }

func (p *Parity) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `"even"`:
		*p = ParityEven
	case `"odd"`:
		*p = ParityOdd
	default:
		*p = ParityNone
	}
	return nil
}
