package service

import (
	"context"
	"time"

	"tripbook/internal/dateutil"
	"tripbook/internal/domain"
	"tripbook/internal/repository"
)

// PeriodEarnings aggregates completed trips inside one time window.
type PeriodEarnings struct {
	TotalEarnings   float64 `json:"totalEarnings"`
	TripCount       int     `json:"tripCount"`
	TotalDistanceKm float64 `json:"totalDistanceKm"`
}

// AllTimeEarnings additionally carries the amount customers still owe:
// actual fare minus advances received, floored at zero per trip.
type AllTimeEarnings struct {
	PeriodEarnings
	PendingAmount float64 `json:"pendingAmount"`
}

// EarningsSummary is the derived earnings view over completed trips. It
// carries no state of its own.
type EarningsSummary struct {
	Today     PeriodEarnings  `json:"today"`
	ThisWeek  PeriodEarnings  `json:"thisWeek"`
	ThisMonth PeriodEarnings  `json:"thisMonth"`
	AllTime   AllTimeEarnings `json:"allTime"`
}

// EarningsService computes earnings summaries from the trip collection.
type EarningsService struct {
	tripRepo repository.TripRepository

	now func() time.Time
}

// NewEarningsService creates a new EarningsService.
func NewEarningsService(tripRepo repository.TripRepository) *EarningsService {
	return &EarningsService{tripRepo: tripRepo, now: time.Now}
}

// NewEarningsServiceWithClock is NewEarningsService with an injected clock,
// for deterministic tests.
func NewEarningsServiceWithClock(tripRepo repository.TripRepository, now func() time.Time) *EarningsService {
	return &EarningsService{tripRepo: tripRepo, now: now}
}

// Summary aggregates completed trips into today/this-week/this-month/all-time
// buckets. A trip counts toward a period when its actual end time falls
// inside it.
func (s *EarningsService) Summary(ctx context.Context) (*EarningsSummary, error) {
	completed, err := s.tripRepo.GetByStatus(ctx, domain.TripStatusCompleted)
	if err != nil {
		return nil, err
	}

	now := s.now()
	startOfToday := dateutil.StartOfDay(now)
	startOfWeek := dateutil.StartOfWeek(now)
	startOfMonth := dateutil.StartOfMonth(now)

	summary := &EarningsSummary{}
	for _, trip := range completed {
		var earnings, distance float64
		if trip.ActualFareBreakdown != nil {
			earnings = trip.ActualFareBreakdown.GrandTotal
		}
		if trip.ActualDistanceKm != nil {
			distance = *trip.ActualDistanceKm
		}

		summary.AllTime.TotalEarnings += earnings
		summary.AllTime.TripCount++
		summary.AllTime.TotalDistanceKm += distance
		if pending := earnings - trip.TotalAdvances(); pending > 0 {
			summary.AllTime.PendingAmount += pending
		}

		if trip.ActualEndTime == nil {
			continue
		}
		endedAt := *trip.ActualEndTime
		addToPeriod(&summary.Today, endedAt, startOfToday, earnings, distance)
		addToPeriod(&summary.ThisWeek, endedAt, startOfWeek, earnings, distance)
		addToPeriod(&summary.ThisMonth, endedAt, startOfMonth, earnings, distance)
	}

	return summary, nil
}

func addToPeriod(p *PeriodEarnings, endedAt, periodStart time.Time, earnings, distance float64) {
	if endedAt.Before(periodStart) {
		return
	}
	p.TotalEarnings += earnings
	p.TripCount++
	p.TotalDistanceKm += distance
}
