package tests

import (
	"context"
	"testing"
	"time"

	"tripbook/internal/domain"
	"tripbook/internal/service"
)

// ──────────────────────────────────────────────
// EARNINGS SUMMARY
// ──────────────────────────────────────────────

// completedTrip builds a completed trip fixture for earnings aggregation.
func completedTrip(id string, endedAt time.Time, grandTotal, distanceKm, advance float64) *domain.Trip {
	trip := &domain.Trip{
		ID:           id,
		CustomerName: "Customer " + id,
		VehicleID:    "vehicle-1",
		Status:       domain.TripStatusCompleted,
		ActualEndTime: func() *time.Time {
			t := endedAt
			return &t
		}(),
		ActualDistanceKm:    &distanceKm,
		ActualFareBreakdown: &domain.FareBreakdown{GrandTotal: grandTotal},
		CreatedAt:           endedAt,
		UpdatedAt:           endedAt,
	}
	if advance > 0 {
		trip.AdvancePayments = []domain.AdvancePayment{
			{ID: id + "-adv", Amount: advance, Timestamp: endedAt},
		}
	}
	return trip
}

func TestEarningsSummary_BucketsByActualEndTime(t *testing.T) {
	t.Parallel()

	// Fixed clock: Monday 2025-03-10 09:00 UTC. The week started Sunday
	// 2025-03-09, the month on 2025-03-01.
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tripRepo := NewMockTripRepository()
	tripRepo.AddTrip(completedTrip("t-today", time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC), 3000, 250, 1000))
	tripRepo.AddTrip(completedTrip("t-week", time.Date(2025, 3, 9, 18, 0, 0, 0, time.UTC), 2000, 100, 2500))
	tripRepo.AddTrip(completedTrip("t-month", time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC), 5000, 400, 0))
	tripRepo.AddTrip(completedTrip("t-old", time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC), 1000, 50, 0))

	svc := service.NewEarningsServiceWithClock(tripRepo, func() time.Time { return now })
	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Today.TotalEarnings != 3000 || summary.Today.TripCount != 1 || summary.Today.TotalDistanceKm != 250 {
		t.Errorf("unexpected today bucket: %+v", summary.Today)
	}
	if summary.ThisWeek.TotalEarnings != 5000 || summary.ThisWeek.TripCount != 2 {
		t.Errorf("unexpected week bucket: %+v", summary.ThisWeek)
	}
	if summary.ThisMonth.TotalEarnings != 10000 || summary.ThisMonth.TripCount != 3 || summary.ThisMonth.TotalDistanceKm != 750 {
		t.Errorf("unexpected month bucket: %+v", summary.ThisMonth)
	}
	if summary.AllTime.TotalEarnings != 11000 || summary.AllTime.TripCount != 4 || summary.AllTime.TotalDistanceKm != 800 {
		t.Errorf("unexpected all-time bucket: %+v", summary.AllTime)
	}
}

func TestEarningsSummary_PendingFlooredAtZeroPerTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tripRepo := NewMockTripRepository()
	// Owes 2000 after a 1000 advance.
	tripRepo.AddTrip(completedTrip("t-1", now.Add(-2*time.Hour), 3000, 250, 1000))
	// Overpaid: advance exceeds the fare, contributes nothing to pending.
	tripRepo.AddTrip(completedTrip("t-2", now.Add(-3*time.Hour), 2000, 100, 2500))
	// No advances at all.
	tripRepo.AddTrip(completedTrip("t-3", now.Add(-4*time.Hour), 5000, 400, 0))

	svc := service.NewEarningsServiceWithClock(tripRepo, func() time.Time { return now })
	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.AllTime.PendingAmount != 7000 {
		t.Errorf("expected pending 7000, got %v", summary.AllTime.PendingAmount)
	}
}

func TestEarningsSummary_IgnoresNonCompletedTrips(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tripRepo := NewMockTripRepository()
	tripRepo.AddTrip(completedTrip("t-done", now.Add(-time.Hour), 3000, 250, 0))

	cancelled := completedTrip("t-cancelled", now.Add(-time.Hour), 9999, 500, 0)
	cancelled.Status = domain.TripStatusCancelled
	tripRepo.AddTrip(cancelled)

	active := completedTrip("t-active", now.Add(-time.Hour), 8888, 300, 0)
	active.Status = domain.TripStatusActive
	active.ActualFareBreakdown = nil
	tripRepo.AddTrip(active)

	svc := service.NewEarningsServiceWithClock(tripRepo, func() time.Time { return now })
	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.AllTime.TripCount != 1 {
		t.Errorf("expected 1 counted trip, got %d", summary.AllTime.TripCount)
	}
	if summary.AllTime.TotalEarnings != 3000 {
		t.Errorf("expected earnings 3000, got %v", summary.AllTime.TotalEarnings)
	}
}

func TestEarningsSummary_EmptyCollection(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	svc := service.NewEarningsServiceWithClock(tripRepo, time.Now)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.AllTime.TripCount != 0 || summary.AllTime.TotalEarnings != 0 || summary.AllTime.PendingAmount != 0 {
		t.Errorf("expected zeroed summary, got %+v", summary)
	}
}
