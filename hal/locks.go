package hal

import "smolos-go/errcode"

// Advisory ownership locks. Dispatch operations do not consult them;
// cooperating services call Authorize before acting on shared entries.
// Owner tokens are caller-chosen nonzero values. The configured master
// owner may take over or release any held lock.

// Lock takes the entry for owner. Re-locking by the holder is a no-op;
// the master token displaces any holder.
func (r *Registry) Lock(id ID, owner uint32) error {
	if _, err := r.entryAt(id); err != nil {
		return err
	}
	if owner == 0 {
		return &errcode.E{C: errcode.InvalidConfig, Op: "lock", Msg: "owner token must be nonzero"}
	}
	r.lockMu.Lock()
	defer r.lockMu.Unlock()
	cur := r.locks[id]
	switch {
	case cur == 0 || cur == owner:
		r.locks[id] = owner
	case r.master != 0 && owner == r.master:
		r.locks[id] = owner
	default:
		return errcode.Locked
	}
	return nil
}

// Unlock releases the entry. Unlocking an unlocked entry succeeds; only
// the holder or the master may release a held one.
func (r *Registry) Unlock(id ID, owner uint32) error {
	if _, err := r.entryAt(id); err != nil {
		return err
	}
	r.lockMu.Lock()
	defer r.lockMu.Unlock()
	cur := r.locks[id]
	switch {
	case cur == 0:
	case cur == owner:
		r.locks[id] = 0
	case r.master != 0 && owner == r.master:
		r.locks[id] = 0
	default:
		return errcode.Locked
	}
	return nil
}

// Authorize reports whether owner may act on id right now: allowed when
// the entry is unlocked or held by owner. The master token gets no pass
// here; it must take the lock over explicitly.
func (r *Registry) Authorize(id ID, owner uint32) error {
	if _, err := r.entryAt(id); err != nil {
		return err
	}
	r.lockMu.Lock()
	defer r.lockMu.Unlock()
	if cur := r.locks[id]; cur != 0 && cur != owner {
		return errcode.Locked
	}
	return nil
}
