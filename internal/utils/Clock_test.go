package utils

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZonedClock_Now(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	mock := &MockClock{FixedNow: time.Date(2025, 3, 31, 20, 0, 0, 0, time.UTC)}

	now := InLocation(mock, tokyo).Now()

	assert.True(t, now.Equal(mock.FixedNow))
	assert.Equal(t, time.April, now.Month())
	assert.Equal(t, 1, now.Day())
	assert.Equal(t, mock.FixedNow, InLocation(mock, nil).Now())
}
