// Package hal is the interface registry and dispatch layer: a fixed table
// built at startup maps one-byte ids and unique names onto hardware
// resources, checks every operation against the entry's declared direction
// and kind before touching hardware, and routes receive events to
// registered callbacks outside interrupt context.
package hal

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"smolos-go/errcode"
	"smolos-go/types"
	"smolos-go/x/mathx"
	"smolos-go/x/strconvx"
)

// MaxInterfaces bounds the table; ids are one byte.
const MaxInterfaces = 256

// Receive ring bounds (bytes). The default applies when a serial entry
// leaves ReceiveCapacity zero; requests are clamped then rounded up to a
// power of two.
const (
	defaultRXCapacity = 64
	minRXCapacity     = 16
	maxRXCapacity     = 4096
)

// ID indexes the interface table. Valid ids are 0..Len()-1.
type ID uint8

// Callback is invoked by the event pump with the owning interface id when
// new receive data is available. Callbacks run on the pump goroutine;
// keep them short.
type Callback func(id ID)

// EntryConfig declares one interface: a unique name, a direction contract
// and the hardware payload.
type EntryConfig struct {
	Name      string
	Direction types.Direction
	Payload   Payload
}

// Config builds a Registry. QueueDepth bounds the receive event queue
// (0 = default). MasterOwner is the lock token that may take over any
// held lock (0 = none).
type Config struct {
	Interfaces  []EntryConfig
	QueueDepth  int
	MasterOwner uint32
}

type entry struct {
	name    string
	dir     types.Direction
	payload Payload

	ring    *rxRing       // serial in/inout only
	timeout time.Duration // serial transmit bound; 0 = wait forever

	pending atomic.Bool // one queued event while receive data is unconsumed
}

// Registry is the interface table plus its dispatch surface. The table is
// immutable after New; callback slots and lock owners are the only
// mutable cells and both are safe for concurrent use.
type Registry struct {
	entries []entry
	cbs     []atomic.Pointer[Callback]

	evq     chan ID
	drops   atomic.Uint32
	started atomic.Bool

	lockMu sync.Mutex
	locks  []uint32 // owner token per entry; 0 = unlocked
	master uint32
}

// New validates cfg and builds the table. Configuration defects are
// construction errors (fatal level), never runtime results.
func New(cfg Config) (*Registry, error) {
	n := len(cfg.Interfaces)
	if n == 0 || n > MaxInterfaces {
		return nil, fatalCfg("table must hold 1.." + strconvx.Itoa(MaxInterfaces) + " interfaces, got " + strconvx.Itoa(n))
	}
	depth := cfg.QueueDepth
	if depth <= 0 {
		depth = mathx.Max(16, n)
	}
	r := &Registry{
		entries: make([]entry, n),
		cbs:     make([]atomic.Pointer[Callback], n),
		evq:     make(chan ID, depth),
		locks:   make([]uint32, n),
		master:  cfg.MasterOwner,
	}

	seen := make(map[string]struct{}, n)
	for i, ic := range cfg.Interfaces {
		if ic.Name == "" {
			return nil, fatalCfg("empty name at index " + strconvx.Itoa(i))
		}
		if _, dup := seen[ic.Name]; dup {
			return nil, fatalCfg("duplicate name: " + ic.Name)
		}
		seen[ic.Name] = struct{}{}
		if !ic.Direction.Valid() {
			return nil, fatalCfg("bad direction for " + ic.Name)
		}
		if ic.Payload == nil {
			return nil, fatalCfg("nil payload for " + ic.Name)
		}

		e := &r.entries[i]
		e.name = ic.Name
		e.dir = ic.Direction
		e.payload = ic.Payload

		switch p := ic.Payload.(type) {
		case DigitalIO:
			if p.Pin == nil {
				return nil, fatalCfg("nil pin for " + ic.Name)
			}
		case Serial:
			if p.Port == nil {
				return nil, fatalCfg("nil port for " + ic.Name)
			}
			if ic.Direction == types.DirOut {
				if p.ReceiveCapacity > 0 {
					return nil, fatalCfg("out entry cannot buffer receives: " + ic.Name)
				}
			} else {
				capacity := p.ReceiveCapacity
				if capacity <= 0 {
					capacity = defaultRXCapacity
				}
				capacity = mathx.Clamp(capacity, minRXCapacity, maxRXCapacity)
				e.ring = newRXRing(nextPow2(capacity))
			}
			if p.WriteTimeout > 0 {
				e.timeout = p.WriteTimeout
			}
		case Display:
			if p.Panel == nil {
				return nil, fatalCfg("nil panel for " + ic.Name)
			}
		}
	}
	return r, nil
}

func fatalCfg(msg string) error {
	return &errcode.E{C: errcode.InvalidConfig, Level: errcode.LevelFatal, Op: "hal_new", Msg: msg}
}

// Start launches the event pump and arms reception on every buffered
// serial entry. Cancelling ctx stops the pump. Second and later calls are
// no-ops.
func (r *Registry) Start(ctx context.Context) {
	if r.started.Swap(true) {
		return
	}
	for i := range r.entries {
		e := &r.entries[i]
		if s, ok := e.payload.(Serial); ok && e.ring != nil {
			s.Port.StartReceive(r)
		}
	}
	go r.pump(ctx)
}

// Len reports the table size. Ids 0..Len()-1 are valid.
func (r *Registry) Len() int { return len(r.entries) }

// LookupID resolves a name to its id. Matching is whole-string equality.
func (r *Registry) LookupID(name string) (ID, error) {
	for i := range r.entries {
		if r.entries[i].name == name {
			return ID(i), nil
		}
	}
	return 0, errcode.NotFound
}

// LookupName resolves an id to its configured name.
func (r *Registry) LookupName(id ID) (string, error) {
	e, err := r.entryAt(id)
	if err != nil {
		return "", err
	}
	return e.name, nil
}

// ConfigureCallback installs cb for id, replacing any previous callback.
// A nil cb clears the slot. Replacement is atomic; an in-flight delivery
// finishes with whichever callback it loaded.
func (r *Registry) ConfigureCallback(id ID, cb Callback) error {
	if _, err := r.entryAt(id); err != nil {
		return err
	}
	if cb == nil {
		r.cbs[id].Store(nil)
		return nil
	}
	r.cbs[id].Store(&cb)
	return nil
}

// Desc is a point-in-time view of one entry for reporting surfaces.
type Desc struct {
	ID        ID
	Name      string
	Kind      types.Kind
	Direction types.Direction
	HasBuffer bool
	Buffered  int
	LockOwner uint32 // 0 = unlocked
}

func (r *Registry) Describe(id ID) (Desc, error) {
	e, err := r.entryAt(id)
	if err != nil {
		return Desc{}, err
	}
	d := Desc{
		ID:        id,
		Name:      e.name,
		Kind:      e.payload.Kind(),
		Direction: e.dir,
	}
	if e.ring != nil {
		d.HasBuffer = true
		d.Buffered = e.ring.available()
	}
	r.lockMu.Lock()
	d.LockOwner = r.locks[id]
	r.lockMu.Unlock()
	return d, nil
}

func (r *Registry) entryAt(id ID) (*entry, error) {
	if int(id) >= len(r.entries) {
		return nil, errcode.InvalidID
	}
	return &r.entries[id], nil
}
