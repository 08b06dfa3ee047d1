package hal

import "sync/atomic"

// rxRing is a single-producer single-consumer byte ring. The receive path
// (interrupt side) writes, Read drains. Indices are monotonic; the masked
// value addresses the buffer. Bytes that do not fit are dropped and the
// overrun latch is set; the next drain reports it once.
type rxRing struct {
	buf  []byte
	mask uint32
	rd   atomic.Uint32 // consumer index (monotonic)
	wr   atomic.Uint32 // producer index (monotonic)

	overrun atomic.Bool
}

func newRXRing(size int) *rxRing {
	if size < 2 || (size&(size-1)) != 0 {
		panic("hal: ring size must be power of two >= 2")
	}
	return &rxRing{
		buf:  make([]byte, size),
		mask: uint32(size - 1),
	}
}

func (r *rxRing) size() uint32 { return uint32(len(r.buf)) }

func (r *rxRing) available() int {
	return int(r.wr.Load() - r.rd.Load())
}

// write appends as much of src as fits and returns the count stored.
// A short write latches the overrun flag. Producer side only.
func (r *rxRing) write(src []byte) (n int) {
	if len(src) == 0 {
		return 0
	}
	rd := r.rd.Load()
	wr := r.wr.Load()
	space := int(r.size() - (wr - rd))
	if space <= 0 {
		r.overrun.Store(true)
		return 0
	}
	n = len(src)
	if n > space {
		n = space
		r.overrun.Store(true)
	}

	wrIdx := wr & r.mask
	first := int(r.size() - wrIdx)
	if first > n {
		first = n
	}
	copy(r.buf[wrIdx:wrIdx+uint32(first)], src[:first])
	if second := n - first; second > 0 {
		copy(r.buf[:second], src[first:n])
	}
	r.wr.Store(wr + uint32(n)) // release
	return n
}

// drain copies out everything available in one step and clears the
// overrun latch, reporting its prior state. Bytes appended while the
// copy runs stay queued for the next drain. Consumer side only.
func (r *rxRing) drain() (data []byte, overrun bool) {
	rd := r.rd.Load()
	wr := r.wr.Load() // acquire
	n := int(wr - rd)
	if n > 0 {
		data = make([]byte, n)
		rdIdx := rd & r.mask
		first := int(r.size() - rdIdx)
		if first > n {
			first = n
		}
		copy(data[:first], r.buf[rdIdx:rdIdx+uint32(first)])
		if second := n - first; second > 0 {
			copy(data[first:n], r.buf[:second])
		}
		r.rd.Store(rd + uint32(n)) // release
	}
	return data, r.overrun.Swap(false)
}

// nextPow2 rounds n up to the next power of two (minimum 2).
func nextPow2(n int) int {
	p := 2
	for p < n {
		p <<= 1
	}
	return p
}
