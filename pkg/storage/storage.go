// Package storage defines the synchronous key-value contract used to persist
// Matter node state, together with the stores that implement it.
//
// Values are opaque byte strings addressed by string keys. There are no
// transactions and every call completes before returning, so higher layers
// such as the binding table order their writes so that a failure between
// two calls leaves consistent state behind.
package storage

import "errors"

var (
	// ErrNotFound is returned by Get when the key has no value.
	ErrNotFound = errors.New("storage: key not found")

	// ErrInvalidKey is returned for empty keys.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// Store is a synchronous, byte-oriented key-value store.
//
// Implementations in this package are safe for concurrent use.
type Store interface {
	// Get returns a copy of the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// Lister is implemented by stores that can enumerate their keys.
type Lister interface {
	// Keys returns all keys with the given prefix in ascending order.
	Keys(prefix string) ([]string, error)
}

func validKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
