package engine

import "slices"

// SubscriptionID identifies a registered callback.
type SubscriptionID uint64

type subscription[T any] struct {
	id SubscriptionID
	fn func(T)
}

// Dispatcher fans values out to registered callbacks in registration order.
// The zero value is ready to use. It is not safe for concurrent use.
type Dispatcher[T any] struct {
	nextID SubscriptionID
	subs   []subscription[T]
}

// Register adds fn and returns an id for Unregister.
func (d *Dispatcher[T]) Register(fn func(T)) SubscriptionID {
	d.nextID++
	d.subs = append(d.subs, subscription[T]{id: d.nextID, fn: fn})
	return d.nextID
}

// Unregister removes the callback with the given id.
// It reports whether a callback was removed.
func (d *Dispatcher[T]) Unregister(id SubscriptionID) bool {
	i := slices.IndexFunc(d.subs, func(s subscription[T]) bool { return s.id == id })
	if i < 0 {
		return false
	}
	// Copy so an in-flight Dispatch keeps iterating its own snapshot.
	d.subs = slices.Delete(slices.Clone(d.subs), i, i+1)
	return true
}

// Len returns the number of registered callbacks.
func (d *Dispatcher[T]) Len() int {
	return len(d.subs)
}

// Dispatch calls every callback registered when the call starts.
// Callbacks may register or unregister; the change applies to the next dispatch.
func (d *Dispatcher[T]) Dispatch(v T) {
	for _, s := range d.subs {
		s.fn(v)
	}
}
