package dateutil

import (
	"testing"
	"time"
)

func TestCalendarDaysSpanned_SameDay(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 10, 22, 30, 0, 0, time.UTC)
	if got := CalendarDaysSpanned(start, end); got != 1 {
		t.Errorf("expected 1 day, got %d", got)
	}
}

func TestCalendarDaysSpanned_OvernightCountsTwoDays(t *testing.T) {
	t.Parallel()

	// Less than 3 hours on the clock, but it crosses midnight.
	start := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 11, 1, 30, 0, 0, time.UTC)
	if got := CalendarDaysSpanned(start, end); got != 2 {
		t.Errorf("expected 2 days, got %d", got)
	}
}

func TestCalendarDaysSpanned_MultiDay(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)
	if got := CalendarDaysSpanned(start, end); got != 5 {
		t.Errorf("expected 5 days, got %d", got)
	}
}

func TestCalendarDaysSpanned_EndBeforeStart_ClampsToOne(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(-48 * time.Hour)
	if got := CalendarDaysSpanned(start, end); got != 1 {
		t.Errorf("expected clamp to 1 day, got %d", got)
	}
}

func TestStartOfDay(t *testing.T) {
	t.Parallel()

	in := time.Date(2025, 3, 10, 17, 45, 12, 999, time.UTC)
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if got := StartOfDay(in); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestStartOfWeek_SundayStart(t *testing.T) {
	t.Parallel()

	// 2025-03-12 is a Wednesday; the week began Sunday 2025-03-09.
	in := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	want := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	if got := StartOfWeek(in); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	// A Sunday is its own week start.
	sunday := time.Date(2025, 3, 9, 15, 0, 0, 0, time.UTC)
	if got := StartOfWeek(sunday); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestStartOfMonth(t *testing.T) {
	t.Parallel()

	in := time.Date(2025, 3, 31, 23, 59, 0, 0, time.UTC)
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := StartOfMonth(in); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
