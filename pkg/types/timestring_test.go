package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("07:00")
	require.NoError(t, err)
	assert.Equal(t, "07:00", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("7:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Minutes(t *testing.T) {
	minutes, err := TimeString("07:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 7*60+30, minutes)

	minutes, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	next, err := TimeString("07:00").AddMinutes(120)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:00"), next)

	next, err = TimeString("19:00").AddMinutes(120)
	require.NoError(t, err)
	assert.Equal(t, TimeString("21:00"), next)

	// Выход за пределы суток недопустим
	_, err = TimeString("23:00").AddMinutes(120)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = TimeString("22:00").AddMinutes(120)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("07:00").IsBefore("09:00"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("21:00").IsAfter("19:00"))
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	at := TimeString("13:45").OnDate(date)
	assert.Equal(t, time.Date(2025, 10, 15, 13, 45, 0, 0, time.UTC), at)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// TIME колонка приходит с секундами
	require.NoError(t, ts.Scan("09:00:00"))
	assert.Equal(t, TimeString("09:00"), ts)

	require.NoError(t, ts.Scan([]byte("11:30")))
	assert.Equal(t, TimeString("11:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
