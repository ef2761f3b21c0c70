// Package kv abstracts the terminal's durable key-value store. The
// state snapshot is the only client; the interface is deliberately a
// plain Get/Set surface.
package kv

import "errors"

// ErrKeyNotFound is returned by Get for absent keys.
var ErrKeyNotFound = errors.New("key not found")

// Store is a durable key-value store.
type Store interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(key []byte) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key []byte) error

	// Close releases the store.
	Close() error
}
