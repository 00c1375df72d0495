package metrics

import "sync"

// Observer is one connected dashboard client. Send must be safe to call from
// concurrent broadcasts and must fail (not block forever) once the underlying
// connection is gone.
type Observer interface {
	Send(Snapshot) error
}

// Registry is the process-wide set of live observers. Membership is
// self-healing: an observer whose send fails during a broadcast is dropped
// within that same broadcast.
type Registry struct {
	mu        sync.Mutex
	observers map[Observer]struct{}
}

func NewRegistry() *Registry {
	return &Registry{observers: make(map[Observer]struct{})}
}

// Register adds the observer. Registering an already present observer is a
// no-op.
func (r *Registry) Register(o Observer) {
	if o == nil {
		return
	}
	r.mu.Lock()
	r.observers[o] = struct{}{}
	r.mu.Unlock()
}

// Unregister removes the observer. Unknown observers are ignored.
func (r *Registry) Unregister(o Observer) {
	r.mu.Lock()
	delete(r.observers, o)
	r.mu.Unlock()
}

// Size returns the current observer count.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.observers)
}

// Broadcast delivers the snapshot to every observer registered at the moment
// the call starts. Deliveries run on their own goroutines so one slow
// connection cannot delay the rest; observers whose send fails are
// unregistered before Broadcast returns. Observers racing with the call may
// or may not receive this snapshot.
func (r *Registry) Broadcast(snap Snapshot) {
	r.mu.Lock()
	members := make([]Observer, 0, len(r.observers))
	for o := range r.observers {
		members = append(members, o)
	}
	r.mu.Unlock()

	if len(members) == 0 {
		return
	}

	var wg sync.WaitGroup
	var failedMu sync.Mutex
	var failed []Observer
	for _, o := range members {
		wg.Add(1)
		go func(o Observer) {
			defer wg.Done()
			if err := o.Send(snap); err != nil {
				failedMu.Lock()
				failed = append(failed, o)
				failedMu.Unlock()
			}
		}(o)
	}
	wg.Wait()

	for _, o := range failed {
		r.Unregister(o)
	}
}
