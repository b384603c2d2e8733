package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumMoneyDoesNotDrift(t *testing.T) {
	amounts := make([]float64, 10)
	for i := range amounts {
		amounts[i] = 0.1
	}
	assert.Equal(t, 1.0, SumMoney(amounts))
	assert.Equal(t, 0.0, SumMoney(nil))
	assert.Equal(t, "105.00", FormatMoney(SumMoney([]float64{30, 35, 40})))
}

func TestStartOfDay(t *testing.T) {
	clock := Clock(func() time.Time { return time.Date(2026, 3, 10, 23, 59, 0, 0, time.Local) })
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local), clock.StartOfDay())

	var unset Clock
	got := unset.StartOfDay()
	assert.Zero(t, got.Hour())
	assert.Zero(t, got.Minute())
}

func TestParseDateTime(t *testing.T) {
	want := time.Date(2026, 3, 10, 8, 30, 0, 0, time.Local)
	for _, in := range []string{"2026-03-10 08:30:00", "2026-03-10 08:30", "2026-03-10T08:30", " 2026-03-10T08:30:00 "} {
		got, err := ParseDateTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	got, err := ParseDateTime("2026-03-10T08:30:00Z")
	require.NoError(t, err)
	assert.True(t, time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC).Equal(got))

	_, err = ParseDateTime("")
	assert.Error(t, err)
	_, err = ParseDateTime("10/03/2026")
	assert.Error(t, err)
}

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "-", FormatDateTime(time.Time{}))
	assert.Equal(t, "2026-03-10 08:30", FormatDateTime(time.Date(2026, 3, 10, 8, 30, 0, 0, time.Local)))
	assert.Equal(t, "2026-03-10", FormatDate(time.Date(2026, 3, 10, 8, 30, 0, 0, time.Local)))
}

func TestNormalizers(t *testing.T) {
	assert.Equal(t, "A12", NormalizeSeat(" a 12 "))
	assert.Equal(t, "Asha Rao", NormalizeSpace("  Asha   Rao "))
	assert.Equal(t, "NA", SafeFilenamePart(" "))
	assert.Equal(t, "Asha_Rao_A1", SafeFilenamePart("Asha Rao/A1"))
}
