package tests

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"tripbook/internal/domain"
	"tripbook/internal/repository"
	"tripbook/internal/service"
)

// ──────────────────────────────────────────────
// TRIP LIFECYCLE
// ──────────────────────────────────────────────

var testClock = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func testVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		ID:          "vehicle-1",
		Name:        "Dzire",
		CarSize:     domain.CarSizeSedan,
		FuelType:    domain.FuelTypeDiesel,
		ACOption:    domain.ACOptionAC,
		MinKmPerDay: 250,
		RatePerKm:   12,
		CreatedAt:   testClock,
		UpdatedAt:   testClock,
	}
}

// newTestTripService wires a trip service against mocks with a fixed clock
// and sequential IDs.
func newTestTripService(tripRepo *MockTripRepository, vehicleRepo *MockVehicleRepository, cache service.TripCache) *service.TripService {
	var seq int
	newID := func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return service.NewTripServiceWithClock(tripRepo, vehicleRepo, cache, zerolog.Nop(), func() time.Time { return testClock }, newID)
}

func createProposal(t *testing.T, svc *service.TripService, form service.ProposalForm, distanceKm float64) *domain.Trip {
	t.Helper()
	trip, err := svc.CreateProposal(context.Background(), service.CreateProposalRequest{
		Form:                form,
		EstimatedDistanceKm: distanceKm,
	})
	if err != nil {
		t.Fatalf("unexpected error creating proposal: %v", err)
	}
	return trip
}

func defaultForm() service.ProposalForm {
	return service.ProposalForm{
		CustomerName:      "Ravi",
		VehicleID:         "vehicle-1",
		ProposedStartDate: testClock,
		NumberOfDays:      "1",
		BataPerDay:        "300",
		EstimatedTolls:    "50",
	}
}

func TestCreateProposal_MinimumDistanceFloorApplied(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle())
	svc := newTestTripService(tripRepo, vehicleRepo, nil)

	// 100 km traveled against a 250 km/day minimum.
	trip := createProposal(t, svc, defaultForm(), 100)

	fb := trip.EstimatedFareBreakdown
	if fb.ChargeableDistance != 250 {
		t.Errorf("expected chargeable distance 250, got %v", fb.ChargeableDistance)
	}
	if fb.DistanceCharges != 3000 {
		t.Errorf("expected distance charges 3000, got %v", fb.DistanceCharges)
	}
	if fb.Subtotal != 3350 {
		t.Errorf("expected subtotal 3350, got %v", fb.Subtotal)
	}
	if fb.GrandTotal != 3350 {
		t.Errorf("expected grand total 3350, got %v", fb.GrandTotal)
	}
	if trip.Status != domain.TripStatusProposed {
		t.Errorf("expected proposed status, got %s", trip.Status)
	}
}

func TestCreateProposal_MalformedNumbersFallBackToDefaults(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle())
	svc := newTestTripService(tripRepo, vehicleRepo, nil)

	form := defaultForm()
	form.NumberOfDays = "abc"
	form.BataPerDay = ""
	form.EstimatedTolls = "12abc"
	form.Discount = "-"
	form.RatePerKmOverride = "not-a-number"

	trip := createProposal(t, svc, form, 300)

	if trip.NumberOfDays != 1 {
		t.Errorf("expected days default 1, got %d", trip.NumberOfDays)
	}
	if trip.BataPerDay != 0 {
		t.Errorf("expected bata default 0, got %v", trip.BataPerDay)
	}
	if trip.EstimatedTolls != 0 {
		t.Errorf("expected tolls default 0, got %v", trip.EstimatedTolls)
	}
	if trip.Discount != 0 {
		t.Errorf("expected discount default 0, got %v", trip.Discount)
	}
	if trip.RatePerKmOverride != nil {
		t.Errorf("expected malformed override to be dropped, got %v", *trip.RatePerKmOverride)
	}
	// Fare uses the snapshot rate since the override did not parse.
	if trip.EstimatedFareBreakdown.DistanceCharges != 300*12 {
		t.Errorf("expected distance charges 3600, got %v", trip.EstimatedFareBreakdown.DistanceCharges)
	}
}

func TestCreateProposal_SnapshotImmuneToLaterVehicleEdits(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle())
	svc := newTestTripService(tripRepo, vehicleRepo, nil)

	trip := createProposal(t, svc, defaultForm(), 300)

	// Edit the registry entry after the proposal exists.
	edited := testVehicle()
	edited.RatePerKm = 99
	edited.MinKmPerDay = 999
	if err := vehicleRepo.Update(context.Background(), edited); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := tripRepo.GetTrip(trip.ID)
	if stored.VehicleSnapshot.RatePerKm != 12 {
		t.Errorf("expected snapshot rate 12, got %v", stored.VehicleSnapshot.RatePerKm)
	}
	if stored.EffectiveRatePerKm() != 12 {
		t.Errorf("expected effective rate 12, got %v", stored.EffectiveRatePerKm())
	}
}

func TestCreateProposal_MissingVehicle_Fails(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	svc := newTestTripService(tripRepo, vehicleRepo, nil)

	_, err := svc.CreateProposal(context.Background(), service.CreateProposalRequest{
		Form: defaultForm(),
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if tripRepo.CountTrips() != 0 {
		t.Error("expected no trips stored")
	}
}

func TestStartTrip_OnProposed_FailsAndLeavesTripUnchanged(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle())
	svc := newTestTripService(tripRepo, vehicleRepo, nil)

	trip := createProposal(t, svc, defaultForm(), 300)

	_, err := svc.StartTrip(context.Background(), trip.ID, service.StartTripRequest{
		OdometerStart:   1000,
		ActualStartTime: testClock,
	})
	if !errors.Is(err, service.ErrTripNotConfirmed) {
		t.Errorf("expected ErrTripNotConfirmed, got %v", err)
	}

	stored := tripRepo.GetTrip(trip.ID)
	if stored.Status != domain.TripStatusProposed {
		t.Errorf("expected status unchanged, got %s", stored.Status)
	}
	if stored.OdometerStart != nil {
		t.Error("expected no odometer reading recorded")
	}
}

func TestTripLifecycle_HappyPath(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle())
	svc := newTestTripService(tripRepo, vehicleRepo, nil)
	ctx := context.Background()

	trip := createProposal(t, svc, defaultForm(), 300)
	estimateBefore := trip.EstimatedFareBreakdown

	confirmedStart := testClock.Add(24 * time.Hour)
	trip, err := svc.ConfirmTrip(ctx, trip.ID, service.ConfirmTripRequest{ConfirmedStartTime: confirmedStart})
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if trip.Status != domain.TripStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", trip.Status)
	}

	trip, err = svc.StartTrip(ctx, trip.ID, service.StartTripRequest{
		OdometerStart:   1000,
		ActualStartTime: confirmedStart,
	})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if trip.Status != domain.TripStatusActive {
		t.Fatalf("expected active, got %s", trip.Status)
	}
	if trip.OdometerStart == nil || trip.OdometerStart.Value != 1000 {
		t.Fatal("expected start odometer 1000")
	}

	trip, err = svc.AddTollEntry(ctx, trip.ID, 80, "Attibele Plaza")
	if err != nil {
		t.Fatalf("toll failed: %v", err)
	}
	trip, err = svc.AddAdvancePayment(ctx, trip.ID, 1000, "booking advance")
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	trip, err = svc.CompleteTrip(ctx, trip.ID, service.CompleteTripRequest{
		OdometerEnd:   1250,
		ActualEndTime: confirmedStart.Add(8 * time.Hour),
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if trip.Status != domain.TripStatusCompleted {
		t.Errorf("expected completed, got %s", trip.Status)
	}
	if trip.ActualDistanceKm == nil || *trip.ActualDistanceKm != 250 {
		t.Fatalf("expected actual distance 250, got %v", trip.ActualDistanceKm)
	}
	if trip.ActualFareBreakdown == nil {
		t.Fatal("expected actual fare breakdown")
	}
	// 250 km on a 250 km/day floor, 1 day: 3000 distance + 300 bata + 80 toll.
	if trip.ActualFareBreakdown.TotalTolls != 80 {
		t.Errorf("expected actual tolls 80, got %v", trip.ActualFareBreakdown.TotalTolls)
	}
	if trip.ActualFareBreakdown.GrandTotal != 3380 {
		t.Errorf("expected actual grand total 3380, got %v", trip.ActualFareBreakdown.GrandTotal)
	}

	// The estimate is frozen at proposal time; completion must not touch it.
	if trip.EstimatedFareBreakdown != estimateBefore {
		t.Errorf("estimated breakdown changed during lifecycle: %+v vs %+v", trip.EstimatedFareBreakdown, estimateBefore)
	}
	// Advances stay out of every stored breakdown.
	if trip.TotalAdvances() != 1000 {
		t.Errorf("expected total advances 1000, got %v", trip.TotalAdvances())
	}
}

func TestAddTollEntry_AppendOnly(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle())
	svc := newTestTripService(tripRepo, vehicleRepo, nil)
	ctx := context.Background()

	trip := activeTrip(t, svc)

	trip, err := svc.AddTollEntry(ctx, trip.ID, 60, "first")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	trip, err = svc.AddTollEntry(ctx, trip.ID, 40, "second")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(trip.TollEntries) != 2 {
		t.Fatalf("expected 2 toll entries, got %d", len(trip.TollEntries))
	}
	if trip.TollEntries[0].Location != "first" || trip.TollEntries[1].Location != "second" {
		t.Error("expected entries in insertion order")
	}
	if trip.TollEntries[0].ID == trip.TollEntries[1].ID {
		t.Error("expected distinct toll entry IDs")
	}
	if trip.TotalTolls() != 100 {
		t.Errorf("expected toll total 100, got %v", trip.TotalTolls())
	}
}

func TestAddTollEntry_OnNonActiveTrip_Fails(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle())
	svc := newTestTripService(tripRepo, vehicleRepo, nil)

	trip := createProposal(t, svc, defaultForm(), 300)

	_, err := svc.AddTollEntry(context.Background(), trip.ID, 60, "plaza")
	if !errors.Is(err, service.ErrTripNotActive) {
		t.Errorf("expected ErrTripNotActive, got %v", err)
	}
	if stored := tripRepo.GetTrip(trip.ID); len(stored.TollEntries) != 0 {
		t.Error("expected toll ledger unchanged")
	}
}

func TestCompleteTrip_OdometerBeforeStart_Fails(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle())
	svc := newTestTripService(tripRepo, vehicleRepo, nil)

	trip := activeTrip(t, svc)

	_, err := svc.CompleteTrip(context.Background(), trip.ID, service.CompleteTripRequest{
		OdometerEnd:   999,
		ActualEndTime: testClock.Add(2 * time.Hour),
	})
	if !errors.Is(err, service.ErrOdometerBeforeStart) {
		t.Errorf("expected ErrOdometerBeforeStart, got %v", err)
	}
	if stored := tripRepo.GetTrip(trip.ID); stored.Status != domain.TripStatusActive {
		t.Errorf("expected trip still active, got %s", stored.Status)
	}
}

func TestCompleteTrip_ActualDaysFromCalendarSpan(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle())
	svc := newTestTripService(tripRepo, vehicleRepo, nil)
	ctx := context.Background()

	trip := createProposal(t, svc, defaultForm(), 300)
	trip, err := svc.ConfirmTrip(ctx, trip.ID, service.ConfirmTripRequest{ConfirmedStartTime: testClock})
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	// Leaves at 23:00, returns 01:30 the next day: 2 calendar days.
	departure := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	trip, err = svc.StartTrip(ctx, trip.ID, service.StartTripRequest{OdometerStart: 1000, ActualStartTime: departure})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	trip, err = svc.CompleteTrip(ctx, trip.ID, service.CompleteTripRequest{
		OdometerEnd:   1100,
		ActualEndTime: time.Date(2025, 3, 11, 1, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if trip.ActualDays == nil || *trip.ActualDays != 2 {
		t.Fatalf("expected actual days 2, got %v", trip.ActualDays)
	}
	// 100 km over 2 days against a 250 km/day minimum: 500 km chargeable,
	// plus 2 days of bata.
	if trip.ActualFareBreakdown.ChargeableDistance != 500 {
		t.Errorf("expected chargeable distance 500, got %v", trip.ActualFareBreakdown.ChargeableDistance)
	}
	if trip.ActualFareBreakdown.TotalBata != 600 {
		t.Errorf("expected total bata 600, got %v", trip.ActualFareBreakdown.TotalBata)
	}
}

func TestCompleteTrip_HonorsRateOverride(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle())
	svc := newTestTripService(tripRepo, vehicleRepo, nil)
	ctx := context.Background()

	form := defaultForm()
	form.RatePerKmOverride = "15"
	form.BataPerDay = "0"
	form.EstimatedTolls = "0"
	trip := createProposal(t, svc, form, 300)

	trip, err := svc.ConfirmTrip(ctx, trip.ID, service.ConfirmTripRequest{ConfirmedStartTime: testClock})
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	trip, err = svc.StartTrip(ctx, trip.ID, service.StartTripRequest{OdometerStart: 0, ActualStartTime: testClock})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	trip, err = svc.CompleteTrip(ctx, trip.ID, service.CompleteTripRequest{
		OdometerEnd:   300,
		ActualEndTime: testClock.Add(6 * time.Hour),
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	// 300 km at the overridden 15/km, not the snapshot 12/km.
	if trip.ActualFareBreakdown.DistanceCharges != 4500 {
		t.Errorf("expected distance charges 4500, got %v", trip.ActualFareBreakdown.DistanceCharges)
	}
}

func TestUpdateProposal_ChangesOnlyGivenFields(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle())
	svc := newTestTripService(tripRepo, vehicleRepo, nil)

	trip := createProposal(t, svc, defaultForm(), 300)
	before := *trip

	discount := 100.0
	updated, err := svc.UpdateProposal(context.Background(), trip.ID, service.UpdateProposalRequest{
		Discount: &discount,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Discount != 100 {
		t.Errorf("expected discount 100, got %v", updated.Discount)
	}
	if updated.EstimatedFareBreakdown.GrandTotal != before.EstimatedFareBreakdown.GrandTotal-100 {
		t.Errorf("expected grand total reduced by 100, got %v", updated.EstimatedFareBreakdown.GrandTotal)
	}
	if updated.NumberOfDays != before.NumberOfDays ||
		updated.BataPerDay != before.BataPerDay ||
		updated.EstimatedTolls != before.EstimatedTolls ||
		updated.Notes != before.Notes ||
		updated.CustomerName != before.CustomerName {
		t.Error("expected untouched fields to keep their values")
	}
	if updated.Status != domain.TripStatusProposed {
		t.Errorf("expected proposal to stay proposed, got %s", updated.Status)
	}
}

func TestUpdateProposal_OnConfirmedTrip_Fails(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle())
	svc := newTestTripService(tripRepo, vehicleRepo, nil)
	ctx := context.Background()

	trip := createProposal(t, svc, defaultForm(), 300)
	if _, err := svc.ConfirmTrip(ctx, trip.ID, service.ConfirmTripRequest{ConfirmedStartTime: testClock}); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	days := 3
	_, err := svc.UpdateProposal(ctx, trip.ID, service.UpdateProposalRequest{NumberOfDays: &days})
	if !errors.Is(err, service.ErrTripNotProposed) {
		t.Errorf("expected ErrTripNotProposed, got %v", err)
	}
}

func TestCancelTrip_AllowedFromEveryNonCompletedStatus(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle())
	svc := newTestTripService(tripRepo, vehicleRepo, nil)
	ctx := context.Background()

	// Proposed.
	trip := createProposal(t, svc, defaultForm(), 300)
	cancelled, err := svc.CancelTrip(ctx, trip.ID)
	if err != nil {
		t.Fatalf("cancel from proposed failed: %v", err)
	}
	if cancelled.Status != domain.TripStatusCancelled {
		t.Errorf("expected cancelled, got %s", cancelled.Status)
	}

	// Active.
	active := activeTrip(t, svc)
	if _, err := svc.CancelTrip(ctx, active.ID); err != nil {
		t.Fatalf("cancel from active failed: %v", err)
	}
}

func TestCancelTrip_OnCompletedTrip_Fails(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle())
	svc := newTestTripService(tripRepo, vehicleRepo, nil)
	ctx := context.Background()

	trip := activeTrip(t, svc)
	if _, err := svc.CompleteTrip(ctx, trip.ID, service.CompleteTripRequest{
		OdometerEnd:   1300,
		ActualEndTime: testClock.Add(4 * time.Hour),
	}); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	_, err := svc.CancelTrip(ctx, trip.ID)
	if !errors.Is(err, service.ErrTripCompleted) {
		t.Errorf("expected ErrTripCompleted, got %v", err)
	}
}

func TestConfirmTrip_StaleWrite_Surfaces(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle())
	svc := newTestTripService(tripRepo, vehicleRepo, nil)

	trip := createProposal(t, svc, defaultForm(), 300)

	tripRepo.UpdateError = repository.ErrStaleUpdate
	_, err := svc.ConfirmTrip(context.Background(), trip.ID, service.ConfirmTripRequest{ConfirmedStartTime: testClock})
	if !errors.Is(err, repository.ErrStaleUpdate) {
		t.Errorf("expected ErrStaleUpdate, got %v", err)
	}
}

func TestGetTrip_ReadThroughCache(t *testing.T) {
	t.Parallel()

	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(testVehicle())
	cache := NewMockTripCache()
	svc := newTestTripService(tripRepo, vehicleRepo, cache)
	ctx := context.Background()

	trip := createProposal(t, svc, defaultForm(), 300)

	// Creation already warmed the cache; a read serves from it.
	got, err := svc.GetTrip(ctx, trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != trip.ID {
		t.Errorf("expected trip %s, got %s", trip.ID, got.ID)
	}
	if cache.GetCallCount == 0 {
		t.Error("expected cache read")
	}

	// Deletion invalidates.
	if err := svc.DeleteTrip(ctx, trip.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if cache.InvalidateCallCount == 0 {
		t.Error("expected cache invalidation on delete")
	}
}

func TestStatusTransitions_TerminalStatesHaveNoExits(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.TripStatus{domain.TripStatusCompleted, domain.TripStatusCancelled} {
		if !status.Terminal() {
			t.Errorf("expected %s to be terminal", status)
		}
		for _, next := range []domain.TripStatus{
			domain.TripStatusProposed, domain.TripStatusConfirmed, domain.TripStatusActive,
		} {
			if status.CanTransitionTo(next) {
				t.Errorf("expected %s -> %s to be illegal", status, next)
			}
		}
	}

	if !domain.TripStatusProposed.CanTransitionTo(domain.TripStatusConfirmed) {
		t.Error("expected proposed -> confirmed to be legal")
	}
	if domain.TripStatusProposed.CanTransitionTo(domain.TripStatusActive) {
		t.Error("expected proposed -> active to be illegal")
	}
}

// activeTrip creates and advances a trip to active with odometer start 1000.
func activeTrip(t *testing.T, svc *service.TripService) *domain.Trip {
	t.Helper()
	ctx := context.Background()

	trip, err := svc.CreateProposal(ctx, service.CreateProposalRequest{
		Form:                defaultForm(),
		EstimatedDistanceKm: 300,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	trip, err = svc.ConfirmTrip(ctx, trip.ID, service.ConfirmTripRequest{ConfirmedStartTime: testClock})
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	trip, err = svc.StartTrip(ctx, trip.ID, service.StartTripRequest{OdometerStart: 1000, ActualStartTime: testClock})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	return trip
}
