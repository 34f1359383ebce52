package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tferrors "github.com/leengari/timeframe/internal/domain/errors"
)

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestFloor(t *testing.T) {
	ts := at(2017, time.May, 17, 13, 47) // a Wednesday

	tests := []struct {
		period Period
		want   time.Time
	}{
		{Of(Minute, 15), at(2017, time.May, 17, 13, 45)},
		{Of(Hour, 1), at(2017, time.May, 17, 13, 0)},
		{Of(Day, 1), at(2017, time.May, 17, 0, 0)},
		{Of(Week, 1), at(2017, time.May, 15, 0, 0)},
		{Of(Month, 1), at(2017, time.May, 1, 0, 0)},
		{Of(Month, 2), at(2017, time.May, 1, 0, 0)},
		{Of(Month, 4), at(2017, time.May, 1, 0, 0)},
		{Of(Quarter, 1), at(2017, time.April, 1, 0, 0)},
		{Of(Year, 1), at(2017, time.January, 1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.period.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.Floor(ts))
		})
	}
}

func TestWeekFloorIsMonday(t *testing.T) {
	p := Of(Week, 1)
	for d := 1; d <= 14; d++ {
		got := p.Floor(at(2017, time.January, d, 9, 0))
		assert.Equal(t, time.Monday, got.Weekday(), "day %d", d)
	}
	assert.Equal(t, time.Monday, epoch.Weekday())
}

func TestFloorKey(t *testing.T) {
	key := at(2017, time.January, 3, 10, 0).UnixNano()
	assert.Equal(t, at(2017, time.January, 1, 0, 0).UnixNano(), Of(Month, 1).FloorKey(key))
}

func TestParse(t *testing.T) {
	p, err := Parse("month")
	require.NoError(t, err)
	assert.Equal(t, Of(Month, 1), p)

	p, err = Parse("15 minutes")
	require.NoError(t, err)
	assert.Equal(t, Of(Minute, 15), p)
	assert.Equal(t, "15 minutes", p.String())

	_, err = Parse("fortnight")
	assert.ErrorIs(t, err, tferrors.ErrParameter)
	_, err = Parse("0 days")
	assert.ErrorIs(t, err, tferrors.ErrParameter)
	_, err = Parse("a b c")
	assert.ErrorIs(t, err, tferrors.ErrParameter)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Of(Day, 1).Validate())
	assert.ErrorIs(t, Of(Day, 0).Validate(), tferrors.ErrParameter)
	assert.ErrorIs(t, Of(Unit(42), 1).Validate(), tferrors.ErrParameter)
}

func TestMaxSpan(t *testing.T) {
	assert.Equal(t, 2*time.Hour, Of(Hour, 2).MaxSpan())
	assert.Equal(t, 31*24*time.Hour, Of(Month, 1).MaxSpan())
	assert.Equal(t, 2*366*24*time.Hour, Of(Year, 2).MaxSpan())
}
