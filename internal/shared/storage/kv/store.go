// Package kv provides a namespaced key-value store. Each caller identity owns a
// namespace; values are opaque strings, typically JSON documents.
package kv

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("kv: key not found")

// Store persists string values by namespace and key.
type Store interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace, key string) error
	Ping(ctx context.Context) error
}

func validate(namespace, key string) error {
	if strings.TrimSpace(namespace) == "" {
		return errors.New("kv: namespace is required")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("kv: key is required")
	}
	return nil
}
