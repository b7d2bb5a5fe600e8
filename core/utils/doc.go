// Package utils provides small conversion helpers for loosely-typed values,
// primarily the map[string]any payloads decoded from JSON request bodies.
package utils
