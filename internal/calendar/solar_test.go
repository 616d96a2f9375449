package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToSolarDate(t *testing.T) {
	cases := []struct {
		gregorian string
		want      string
	}{
		{"1979-03-21", "1358/01/01"}, // solar new year
		{"1979-03-20", "1357/12/29"},
		{"2024-03-20", "1403/01/01"},
		{"2023-09-23", "1402/07/01"},
		{"2000-01-01", "1378/10/11"},
	}

	for _, tc := range cases {
		d, err := time.Parse("2006-01-02", tc.gregorian)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, ToSolarDate(d), "gregorian %s", tc.gregorian)
	}
}

func TestToSolarDateZeroPadding(t *testing.T) {
	d := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	got := ToSolarDate(d)
	assert.Len(t, got, len("1403/01/01"))
}

func TestToSolarDateMonotonic(t *testing.T) {
	// a later gregorian date must never map to an earlier solar date; the
	// fixed-width zero-padded format makes string order match date order
	start := time.Date(2020, time.January, 1, 12, 0, 0, 0, time.UTC)
	prev := ToSolarDate(start)
	for i := 1; i < 4*366; i++ {
		cur := ToSolarDate(start.AddDate(0, 0, i))
		if cur <= prev {
			t.Fatalf("conversion not monotonic: day %d gave %s after %s", i, cur, prev)
		}
		prev = cur
	}
}
