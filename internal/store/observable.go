package store

import "sync"

// Observable is a publish/subscribe container for one value. Subscribers are
// invoked synchronously on every Set, and once immediately on Subscribe with
// the current value. There is no queuing.
type Observable[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int64]func(T)
	next  int64
}

func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{
		value: initial,
		subs:  make(map[int64]func(T)),
	}
}

func (o *Observable[T]) Get() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

func (o *Observable[T]) Set(value T) {
	o.mu.Lock()
	o.value = value
	subs := make([]func(T), 0, len(o.subs))
	for _, fn := range o.subs {
		subs = append(subs, fn)
	}
	o.mu.Unlock()

	for _, fn := range subs {
		fn(value)
	}
}

func (o *Observable[T]) Update(fn func(T) T) {
	o.mu.Lock()
	value := fn(o.value)
	o.value = value
	subs := make([]func(T), 0, len(o.subs))
	for _, sub := range o.subs {
		subs = append(subs, sub)
	}
	o.mu.Unlock()

	for _, sub := range subs {
		sub(value)
	}
}

// Subscribe registers fn and immediately replays the current value to it. The
// returned func detaches fn; calling it more than once is harmless.
func (o *Observable[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	o.mu.Lock()
	id := o.next
	o.next++
	o.subs[id] = fn
	value := o.value
	o.mu.Unlock()

	fn(value)

	return func() {
		o.mu.Lock()
		delete(o.subs, id)
		o.mu.Unlock()
	}
}
