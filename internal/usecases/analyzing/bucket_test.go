package analyzing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 3, MonthsBetween(ts("2017-06-01 00:00:00"), ts("2017-09-15 10:00:00")))
	assert.Equal(t, 0, MonthsBetween(ts("2017-06-01 00:00:00"), ts("2017-06-30 23:59:59")))
	assert.Equal(t, 7, MonthsBetween(ts("2017-11-20 00:00:00"), ts("2018-06-01 00:00:00")))
}

func TestWeek(t *testing.T) {
	// 1º de janeiro de 2017 é domingo e pertence à última semana ISO de 2016
	assert.Equal(t, "2016-W52", Week(ts("2017-01-01 12:00:00")))
	assert.Equal(t, "2017-W22", Week(ts("2017-06-01 00:00:00")))
	assert.Equal(t, "2019-W01", Week(ts("2018-12-31 00:00:00")))
}

func TestMonthAndDay(t *testing.T) {
	assert.Equal(t, "2017-06", Month(ts("2017-06-30 23:59:59")))
	assert.Equal(t, "2017-06-30", Day(ts("2017-06-30 23:59:59")))
	assert.Equal(t, ts("2017-06-01 00:00:00"), MonthStart(ts("2017-06-30 23:59:59")))
}

func TestConversionBucket(t *testing.T) {
	tests := []struct {
		days     int
		expected string
		ok       bool
	}{
		{days: -1, ok: false},
		{days: 0, expected: "0d", ok: true},
		{days: 1, expected: "1d", ok: true},
		{days: 2, expected: "1w", ok: true},
		{days: 7, expected: "1w", ok: true},
		{days: 8, expected: "1m", ok: true},
		{days: 30, expected: "1m", ok: true},
		{days: 31, expected: "2m", ok: true},
		{days: 331, expected: "12m", ok: true},
		{days: 360, expected: "12m", ok: true},
		{days: 361, ok: false},
	}

	for _, tt := range tests {
		label, ok := ConversionBucket(tt.days)
		assert.Equal(t, tt.ok, ok, "dias=%d", tt.days)
		assert.Equal(t, tt.expected, label, "dias=%d", tt.days)
	}
}

func TestConversionBucketLabels(t *testing.T) {
	labels := ConversionBucketLabels()
	assert.Len(t, labels, 15)
	assert.Equal(t, "0d", labels[0])
	assert.Equal(t, "12m", labels[14])
	assert.True(t, bucketLess("1w", "1m"))
	assert.False(t, bucketLess("12m", "2m"))
}

func TestConversionDays(t *testing.T) {
	session := ts("2017-06-01 10:00:00")

	assert.Equal(t, 0, ConversionDays(session, ts("2017-06-02 09:59:59")))
	assert.Equal(t, 1, ConversionDays(session, ts("2017-06-02 10:00:00")))
	assert.Equal(t, -1, ConversionDays(session, ts("2017-06-01 09:00:00")))
}

func TestSessionSeconds(t *testing.T) {
	start := ts("2017-06-01 10:00:00")

	assert.Equal(t, int64(1200), SessionSeconds(start, ts("2017-06-01 10:20:00")))
	assert.Equal(t, int64(86340), SessionSeconds(start, ts("2017-06-01 09:59:00")))
	assert.Equal(t, int64(60), SessionSeconds(start, ts("2017-06-02 10:01:00")))
}
