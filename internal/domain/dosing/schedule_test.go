package dosing

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestNextDue_FixedIntervals(t *testing.T) {
	from := date(2025, time.March, 3)

	cases := []struct {
		freq Frequency
		want time.Time
	}{
		{FrequencyDaily, date(2025, time.March, 4)},
		{FrequencyWeekly, date(2025, time.March, 10)},
		{FrequencyBiweekly, date(2025, time.March, 17)},
	}

	for _, c := range cases {
		got, advanced := NextDue(from, c.freq)
		if !advanced {
			t.Fatalf("%s: expected advancement", c.freq)
		}
		if !got.Equal(c.want) {
			t.Fatalf("%s: got %v, want %v", c.freq, got, c.want)
		}
	}
}

func TestNextDue_MonthlyClampsToShortMonth(t *testing.T) {
	cases := []struct {
		from, want time.Time
	}{
		{date(2025, time.January, 31), date(2025, time.February, 28)},
		{date(2024, time.January, 31), date(2024, time.February, 29)}, // leap year
		{date(2025, time.March, 31), date(2025, time.April, 30)},
		{date(2025, time.January, 15), date(2025, time.February, 15)},
		{date(2025, time.December, 31), date(2026, time.January, 31)}, // year rollover
	}

	for _, c := range cases {
		got, advanced := NextDue(c.from, FrequencyMonthly)
		if !advanced {
			t.Fatalf("monthly from %v: expected advancement", c.from)
		}
		if !got.Equal(c.want) {
			t.Fatalf("monthly from %v: got %v, want %v", c.from, got, c.want)
		}
	}
}

func TestNextDue_MonthlyKeepsClock(t *testing.T) {
	from := time.Date(2025, time.January, 31, 8, 45, 12, 99, time.UTC)

	got, _ := NextDue(from, FrequencyMonthly)
	if got.Hour() != 8 || got.Minute() != 45 || got.Second() != 12 || got.Nanosecond() != 99 {
		t.Fatalf("clock not preserved: %v", got)
	}
}

// Seven weekly advances must land exactly where a single 49-day jump does.
func TestNextDue_WeeklyComposes(t *testing.T) {
	start := date(2025, time.June, 1)

	got := start
	for i := 0; i < 7; i++ {
		var advanced bool
		got, advanced = NextDue(got, FrequencyWeekly)
		if !advanced {
			t.Fatal("weekly must always advance")
		}
	}

	want := start.AddDate(0, 0, 49)
	if !got.Equal(want) {
		t.Fatalf("7x weekly = %v, want %v", got, want)
	}
}

func TestNextDue_CustomIsNoOp(t *testing.T) {
	from := date(2025, time.May, 20)

	got, advanced := NextDue(from, FrequencyCustom)
	if advanced {
		t.Fatal("custom frequency must not auto-advance")
	}
	if !got.Equal(from) {
		t.Fatalf("custom frequency changed the date: %v", got)
	}
}

func TestNextDue_UnknownFrequencyIsNoOp(t *testing.T) {
	from := date(2025, time.May, 20)

	got, advanced := NextDue(from, Frequency("hourly"))
	if advanced || !got.Equal(from) {
		t.Fatalf("unknown frequency: got %v advanced=%v", got, advanced)
	}
}

func TestDaysIn(t *testing.T) {
	cases := []struct {
		y    int
		m    time.Month
		want int
	}{
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, c := range cases {
		if got := daysIn(c.y, c.m); got != c.want {
			t.Errorf("daysIn(%d, %v) = %d, want %d", c.y, c.m, got, c.want)
		}
	}
}
