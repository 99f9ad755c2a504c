// Package metadata stores local client preferences as key/value pairs.
package metadata

import "context"

// Preference keys.
const (
	KeyModel = "model"
)

type Repository interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
}
