//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// DtoMap converts a request DTO into its JSON map form and applies the
// given field mutations, so tests can send otherwise-valid payloads with
// individual fields altered or removed.
func DtoMap(t *testing.T, dto any, mutations ...func(m map[string]any)) map[string]any {
	t.Helper()

	data, err := json.Marshal(dto)
	require.NoError(t, err, "Failed to encode DTO to JSON")

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m), "Failed to decode DTO JSON into map")

	for _, mutate := range mutations {
		if mutate != nil {
			mutate(m)
		}
	}
	return m
}

// a helper function for dynamically modifying map fields in tests
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}
