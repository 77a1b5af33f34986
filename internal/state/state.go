package state

// Bag is the shared mutable context threaded through every action of a single
// engine pass. Keys are namespaced as "<namespace>.<purpose>" so that
// unrelated module families can coexist without colliding; the engine itself
// only touches its own "engine." keys.
//
// A Bag is single-owner and unsynchronized. It lives for exactly one
// execution run or one code-generation pass and is never persisted.
type Bag struct {
	values map[string]any
}

// New returns an empty Bag.
func New() *Bag {
	return &Bag{values: make(map[string]any)}
}

// Get returns the raw value stored under key.
func (b *Bag) Get(key string) (any, bool) {
	v, ok := b.values[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (b *Bag) Set(key string, value any) {
	b.values[key] = value
}

// Delete removes key from the bag. Deleting an absent key is a no-op.
func (b *Bag) Delete(key string) {
	delete(b.values, key)
}

// Len reports the number of keys currently stored.
func (b *Bag) Len() int {
	return len(b.values)
}

// Value returns the value stored under key if it exists and has type T.
func Value[T any](b *Bag, key string) (T, bool) {
	var zero T
	raw, ok := b.values[key]
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
