// Package utils provides general-purpose helpers shared by the client and
// the server: typed context keys, JSON response writing, the resty client
// wrapper, JWT helpers and identifier generation.
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

var (
	// UserIDCtxKey stores the authenticated user id (int64).
	UserIDCtxKey = contextKey("userID")
	// DeviceIDCtxKey stores the id of the device a request came from (string).
	DeviceIDCtxKey = contextKey("deviceID")
)

// GetUserIDFromContext retrieves the user identifier from the context.
// ok is false when the value is missing or has an unexpected type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetDeviceIDFromContext retrieves the device identifier from the context.
// A missing value yields an empty string.
func GetDeviceIDFromContext(ctx context.Context) string {
	deviceID, _ := ctx.Value(DeviceIDCtxKey).(string)
	return deviceID
}
