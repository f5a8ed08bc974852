package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONValueAndScan(t *testing.T) {
	original := JSON{"model": "gpt-3.5-turbo", "duration_ms": float64(1200)}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned JSON
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

func TestJSONNilRoundTrip(t *testing.T) {
	var j JSON
	value, err := j.Value()
	require.NoError(t, err)
	assert.Nil(t, value)

	var scanned JSON
	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)
}

func TestJSONScanString(t *testing.T) {
	var scanned JSON
	require.NoError(t, scanned.Scan(`{"key": "value"}`))
	assert.Equal(t, "value", scanned["key"])
}

func TestJSONScanUnsupportedType(t *testing.T) {
	var scanned JSON
	assert.Error(t, scanned.Scan(42))
}
