package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store is a key-value store of JSON documents
type Store interface {
	// Get returns the raw value for key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// Validator decodes raw JSON into T, rejecting malformed shapes
type Validator[T any] func(raw []byte) (T, error)

// Read loads key and runs it through validate. Missing keys, store failures,
// corrupt JSON and shape errors all come back as ok == false.
func Read[T any](ctx context.Context, s Store, key string, validate Validator[T]) (value T, ok bool) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("store: read %s failed: %v", key, err)
		}
		return value, false
	}
	if len(raw) == 0 {
		return value, false
	}
	value, err = validate(raw)
	if err != nil {
		log.Printf("store: ignoring malformed %s: %v", key, err)
		var zero T
		return zero, false
	}
	return value, true
}

// Write stores v as JSON under key. Failures are logged and swallowed so
// that a broken store degrades to "nothing persists".
func Write(ctx context.Context, s Store, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("store: encode %s failed: %v", key, err)
		return
	}
	if err := s.Set(ctx, key, raw); err != nil {
		log.Printf("store: write %s failed: %v", key, err)
	}
}

// Remove deletes key, logging and swallowing failures
func Remove(ctx context.Context, s Store, key string) {
	if err := s.Delete(ctx, key); err != nil {
		log.Printf("store: delete %s failed: %v", key, err)
	}
}
