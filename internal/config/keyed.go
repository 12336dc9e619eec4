package config

// Keyed is an order-preserving keyed collection. Setting an existing key
// overwrites its entry but keeps the position of the first occurrence;
// a new key is appended. Used for dashboards and review shortcuts, whose
// display order follows document order.
type Keyed[T any] struct {
	keys  []string
	items map[string]T
}

// NewKeyed creates an empty collection.
func NewKeyed[T any]() *Keyed[T] {
	return &Keyed[T]{items: make(map[string]T)}
}

// Set inserts or overwrites the entry for key. Insertion order is
// overwrite-in-place: a duplicate key keeps its original position.
func (k *Keyed[T]) Set(key string, value T) {
	if _, exists := k.items[key]; !exists {
		k.keys = append(k.keys, key)
	}
	k.items[key] = value
}

// Get returns the entry for key and whether it exists.
func (k *Keyed[T]) Get(key string) (T, bool) {
	v, ok := k.items[key]
	return v, ok
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (k *Keyed[T]) Keys() []string {
	out := make([]string, len(k.keys))
	copy(out, k.keys)
	return out
}

// Len returns the number of entries.
func (k *Keyed[T]) Len() int {
	return len(k.keys)
}

// Each calls fn for every entry in insertion order.
func (k *Keyed[T]) Each(fn func(key string, value T)) {
	for _, key := range k.keys {
		fn(key, k.items[key])
	}
}
