// Package kv defines the durable key-value contract used for UI state
// persistence. Keys and values are plain strings; callers own any
// encoding layered on top.
package kv

import "context"

// KV is the interface for a persistent string key-value store.
// Get on a missing key returns ok=false with a nil error; errors are
// reserved for storage faults.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
