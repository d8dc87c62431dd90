// Package observe holds a small publish/subscribe value used by controllers to
// expose state to a rendering collaborator.
package observe

import "sync"

// Value holds a T and notifies subscribers with the previous and next value
// whenever it changes. Subscribers run synchronously, in subscription order,
// on the goroutine that performed the change and outside the internal lock,
// so a subscriber may read the value again. A subscriber must not call Set or
// Update on the same Value.
type Value[T comparable] struct {
	mu     sync.Mutex
	notify sync.Mutex
	cur    T
	nextID int
	subs   []subscriber[T]
}

type subscriber[T comparable] struct {
	id int
	fn func(prev, next T)
}

// NewValue returns a Value holding initial.
func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{cur: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur
}

// Set stores next and notifies subscribers if it differs from the current
// value. It reports whether a change happened.
func (v *Value[T]) Set(next T) bool {
	_, changed := v.Update(func(T) T { return next })
	return changed
}

// Update applies fn to the current value atomically and notifies subscribers
// when the result differs. It returns the resulting value.
func (v *Value[T]) Update(fn func(cur T) T) (T, bool) {
	// notify serialises change+publish pairs so subscribers observe
	// transitions in the order they were applied.
	v.notify.Lock()
	defer v.notify.Unlock()

	v.mu.Lock()
	prev := v.cur
	next := fn(prev)
	if next == prev {
		v.mu.Unlock()
		return prev, false
	}
	v.cur = next
	subs := make([]subscriber[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(prev, next)
	}
	return next, true
}

// Subscribe registers fn and returns a function that removes it. The cancel
// function is safe to call more than once.
func (v *Value[T]) Subscribe(fn func(prev, next T)) (cancel func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs = append(v.subs, subscriber[T]{id: id, fn: fn})
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			for i, s := range v.subs {
				if s.id == id {
					v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
					return
				}
			}
		})
	}
}
