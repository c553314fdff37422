// Package utils provides general-purpose helpers used across the sync
// server: type-safe context keys and JSON response writing.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// SecretKeyCtxKey is the key under which the auth gate stores the
// caller's verified secret key in the request context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.SecretKeyCtxKey, "device-shared-secret")
var SecretKeyCtxKey = contextKey("secretKey")

// GetSecretKeyFromContext retrieves the authenticated secret key from the
// context.
//
// Returns the key and an ok flag:
//   - ok == true: value is found and is a non-empty string
//   - ok == false: value is missing or has an unexpected type
func GetSecretKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(SecretKeyCtxKey).(string)
	if key == "" {
		return "", false
	}
	return key, ok
}
