package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-05-17")
	require.NoError(t, err)
	require.NotNil(t, date)
	assert.Equal(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC), *date)

	date, err = ParseDate("")
	assert.NoError(t, err)
	assert.Nil(t, date)

	_, err = ParseDate("17/05/2024")
	assert.Error(t, err)
}

func TestMonthPeriod(t *testing.T) {
	date := time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "02-2024", MonthPeriod(date))

	parsed, err := ParseMonthPeriod("02-2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), parsed)
	assert.Equal(t, parsed, FirstDayOfMonth(date.Truncate(24*time.Hour)))
}
