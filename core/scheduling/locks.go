package scheduling

import (
	"sort"
	"sync"
)

// resourceLocks serializes check-then-write critical sections per judge and
// courtroom so two concurrent scheduling requests cannot both pass conflict
// detection against the same stale state.
type resourceLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newResourceLocks() *resourceLocks {
	return &resourceLocks{locks: map[string]*sync.Mutex{}}
}

func (r *resourceLocks) get(key string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.locks[key]
	if !ok {
		m = &sync.Mutex{}
		r.locks[key] = m
	}
	return m
}

// acquire locks the given resource keys in sorted order and returns a release
// function. Empty keys are skipped. Sorting keeps lock order consistent
// across callers.
func (r *resourceLocks) acquire(keys ...string) func() {
	held := make([]*sync.Mutex, 0, len(keys))
	sorted := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			sorted = append(sorted, k)
		}
	}
	sort.Strings(sorted)
	for i, k := range sorted {
		if i > 0 && k == sorted[i-1] {
			continue
		}
		m := r.get(k)
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
