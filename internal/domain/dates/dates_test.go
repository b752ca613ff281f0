package dates

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

var now = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC) // a Wednesday

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-10-14", time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)},
		{"2026-10-14T08:15", time.Date(2026, 10, 14, 8, 15, 0, 0, time.UTC)},
		{"2026-10-14T08:15:00Z", time.Date(2026, 10, 14, 8, 15, 0, 0, time.UTC)},
		{"2026-10-14T08:15:00.123Z", time.Date(2026, 10, 14, 8, 15, 0, 123000000, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			is := is.New(t)
			got, err := Parse(tt.in, time.UTC)
			is.NoErr(err)
			is.True(got.Equal(tt.want))
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		is := is.New(t)
		_, err := Parse("next tuesday", time.UTC)
		is.True(err != nil)
		_, err = Parse("  ", time.UTC)
		is.True(err != nil)
	})
}

func TestDayPredicates(t *testing.T) {
	is := is.New(t)

	is.True(IsToday(time.Date(2026, 10, 14, 0, 0, 1, 0, time.UTC), now))
	is.True(!IsToday(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), now))
	is.True(IsTomorrow(time.Date(2026, 10, 15, 23, 0, 0, 0, time.UTC), now))
	is.True(IsOverdue(time.Date(2026, 10, 13, 23, 59, 0, 0, time.UTC), now))
	is.True(!IsOverdue(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), now))
}

func TestSameDay_UsesReferenceLocation(t *testing.T) {
	is := is.New(t)

	tokyo := time.FixedZone("JST", 9*3600)
	ref := time.Date(2026, 10, 15, 8, 0, 0, 0, tokyo)
	// 23:30 UTC on the 14th is the morning of the 15th in Tokyo
	is.True(SameDay(time.Date(2026, 10, 14, 23, 30, 0, 0, time.UTC), ref))
}

func TestLastDays(t *testing.T) {
	is := is.New(t)

	days := LastDays(now, 7)
	is.Equal(len(days), 7)
	is.Equal(days[0].Day(), 8)
	is.Equal(days[6].Day(), 14)
	is.True(LastDays(now, 0) == nil)
}

func TestMonthGrid(t *testing.T) {
	is := is.New(t)

	// October 2026 starts on a Thursday and has 31 days.
	cells := MonthGrid(2026, time.October, time.UTC)
	is.Equal(len(cells), GridCells)

	is.Equal(cells[0].Date.Month(), time.September)
	is.Equal(cells[0].Date.Day(), 27)
	is.True(!cells[0].CurrentMonth)

	is.Equal(cells[4].Date.Day(), 1)
	is.True(cells[4].CurrentMonth)
	is.Equal(cells[34].Date.Day(), 31)

	is.Equal(cells[35].Date.Month(), time.November)
	is.Equal(cells[41].Date.Day(), 7)

	current := 0
	for _, c := range cells {
		if c.CurrentMonth {
			current++
		}
	}
	is.Equal(current, 31)
}

func TestRelativeAndGreeting(t *testing.T) {
	is := is.New(t)

	is.Equal(Relative(now, now), "Today")
	is.Equal(Relative(now.AddDate(0, 0, 1), now), "Tomorrow")
	is.Equal(Relative(now.AddDate(0, 0, 2), now), "Oct 16, 2026")

	is.Equal(Greeting(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)), "morning")
	is.Equal(Greeting(now), "afternoon")
	is.Equal(Greeting(time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)), "evening")
}
