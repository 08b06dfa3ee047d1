package types

// Interface table configuration. Host builds decode this from JSON;
// MCU builds declare it as a literal.

type TableConfig struct {
	Interfaces []InterfaceConfig `json:"interfaces"`

	// QueueDepth bounds the receive event queue. 0 => default.
	QueueDepth int `json:"queue_depth,omitempty"`

	// MasterOwner is the lock token allowed to take over any held lock.
	// 0 => no master.
	MasterOwner uint32 `json:"master_owner,omitempty"`
}

type InterfaceConfig struct {
	Name      string    `json:"name"`
	Kind      Kind      `json:"kind"`
	Direction Direction `json:"direction"`

	// gpio
	Pin     int  `json:"pin,omitempty"`
	Initial bool `json:"initial,omitempty"`

	// serial
	Port           string `json:"port,omitempty"` // "uart0", "uart1", "stdio" or a tty path
	Baud           uint32 `json:"baud,omitempty"`
	DataBits       uint8  `json:"data_bits,omitempty"`
	StopBits       uint8  `json:"stop_bits,omitempty"`
	Parity         Parity `json:"parity,omitempty"`
	RXSize         int    `json:"rx_size,omitempty"`          // receive ring bytes; 0 => default
	WriteTimeoutMs uint32 `json:"write_timeout_ms,omitempty"` // 0 => wait forever

	// display
	Width  uint16 `json:"width,omitempty"`
	Height uint16 `json:"height,omitempty"`
	Layers uint8  `json:"layers,omitempty"` // 0 => 1
}
