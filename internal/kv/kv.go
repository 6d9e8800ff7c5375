// Package kv provides the key-value storage adapter the mock collections live on.
// Values are JSON-serialized under string keys; a missing or corrupt value reads
// as absent rather than failing, matching localStorage semantics in the original
// browser demo.
package kv

import "context"

// Store is the adapter contract. Get unmarshals the stored value into dest and
// reports whether a usable value was found; corrupt payloads count as absent.
// There is no transactionality or atomicity across keys and no expiry.
type Store interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
