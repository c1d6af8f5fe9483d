package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateScan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan("2024-02-29"))
	assert.Equal(t, "2024-02-29", d.String())

	require.NoError(t, d.Scan([]byte("2023-11-05")))
	assert.Equal(t, "2023-11-05", d.String())

	require.NoError(t, d.Scan(time.Date(2022, 7, 1, 13, 45, 0, 0, time.UTC)))
	assert.Equal(t, "2022-07-01", d.String())

	require.NoError(t, d.Scan("2021-03-04T00:00:00Z"))
	assert.Equal(t, "2021-03-04", d.String())

	assert.Error(t, d.Scan("not a date"))
	assert.Error(t, d.Scan(42))
}

func TestDateValue(t *testing.T) {
	v, err := NewDate(2025, time.January, 9).Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-01-09", v)
}
