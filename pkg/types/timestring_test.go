package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, bad := range []string{"9:30:00", "25:00", "09:61", "morning", ""} {
		_, err := NewTimeStringFromString(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, "input %q", bad)
	}
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2025, 11, 3, 14, 5, 59, 0, time.UTC))
	assert.Equal(t, TimeString("14:05"), ts)
}

func TestAddMinutes(t *testing.T) {
	ts := TimeString("09:30")

	moved, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), moved)

	// За границу суток не выходим
	_, err = TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrOutOfDayBounds)

	_, err = TimeString("00:30").AddMinutes(-60)
	assert.ErrorIs(t, err, ErrOutOfDayBounds)
}

func TestComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestMinutes(t *testing.T) {
	m, err := TimeString("01:45").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 105, m)

	_, err = TimeString("bogus").Minutes()
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestFromMinutes(t *testing.T) {
	ts, err := FromMinutes(615)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), ts)

	_, err = FromMinutes(MinutesPerDay)
	assert.ErrorIs(t, err, ErrOutOfDayBounds)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, TimeString("00:00").Validate())
	assert.Error(t, TimeString("24:00").Validate())
	assert.True(t, TimeString("").IsZero())
}
