package hal

import "context"

// OnReceive is the receive-complete handler. Adapters call it with the
// port handle and the chunk just received; the registry resolves the
// owning entry by handle match, buffers the bytes and queues a coalesced
// event for the pump. Safe to call from an RX goroutine or ISR proxy:
// it never blocks and never invokes callbacks inline.
func (r *Registry) OnReceive(port SerialPort, p []byte) {
	for i := range r.entries {
		e := &r.entries[i]
		s, ok := e.payload.(Serial)
		if !ok || s.Port != port {
			continue
		}
		if e.ring == nil {
			return // out-direction entry; nothing to buffer
		}
		e.ring.write(p)
		if !e.pending.Swap(true) {
			select {
			case r.evq <- ID(i):
			default:
				// Queue full. Give the claim back so the next chunk
				// retries, and count the loss.
				e.pending.Store(false)
				r.drops.Add(1)
			}
		}
		return
	}
	// Unknown handle: no entry owns this port. Ignore, as the table is
	// the single source of routing truth.
}

// EventDrops reports how many receive events were discarded because the
// queue was full. Data stays in the ring; only the wakeup is lost.
func (r *Registry) EventDrops() uint32 { return r.drops.Load() }

// pump delivers queued receive events to callbacks in foreground context.
// The pending flag clears before the callback runs so data arriving
// during the callback queues a fresh event.
func (r *Registry) pump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case id := <-r.evq:
			e := &r.entries[id]
			e.pending.Store(false)
			if cb := r.cbs[id].Load(); cb != nil {
				(*cb)(id)
			}
		}
	}
}
