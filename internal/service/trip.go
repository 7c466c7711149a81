package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tripbook/internal/dateutil"
	"tripbook/internal/domain"
	"tripbook/internal/fare"
	"tripbook/internal/repository"
)

// TripCache is the optional read-through cache in front of the trip
// repository. The repository remains the source of truth; transition
// operations always read it directly.
type TripCache interface {
	Get(ctx context.Context, tripID string) (*domain.Trip, error)
	Set(ctx context.Context, trip *domain.Trip) error
	Invalidate(ctx context.Context, tripID string) error
}

// TripService owns the trip lifecycle: it is the only writer of trips, and
// every mutation goes through one of its status-guarded transition
// operations.
type TripService struct {
	tripRepo    repository.TripRepository
	vehicleRepo repository.VehicleRepository
	cache       TripCache
	log         zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewTripService creates a new TripService. cache may be nil.
func NewTripService(tripRepo repository.TripRepository, vehicleRepo repository.VehicleRepository, cache TripCache, log zerolog.Logger) *TripService {
	return &TripService{
		tripRepo:    tripRepo,
		vehicleRepo: vehicleRepo,
		cache:       cache,
		log:         log,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// NewTripServiceWithClock is NewTripService with an injected clock and id
// generator, for deterministic tests.
func NewTripServiceWithClock(tripRepo repository.TripRepository, vehicleRepo repository.VehicleRepository, cache TripCache, log zerolog.Logger, now func() time.Time, newID func() string) *TripService {
	s := NewTripService(tripRepo, vehicleRepo, cache, log)
	s.now = now
	s.newID = newID
	return s
}

// ProposalForm carries the user-entered proposal fields. Numeric values
// arrive as raw form strings; malformed or missing ones fall back to
// defaults (days 1, everything else 0) rather than rejecting the proposal.
type ProposalForm struct {
	CustomerName        string
	CustomerPhone       string
	VehicleID           string
	ProposedStartDate   time.Time
	NumberOfDays        string
	BataPerDay          string
	EstimatedTolls      string
	Discount            string
	RatePerKmOverride   string
	MinKmPerDayOverride string
	Notes               string
}

// CreateProposalRequest contains the parameters for creating a trip proposal.
type CreateProposalRequest struct {
	Form                ProposalForm
	Route               *domain.Route
	EstimatedDistanceKm float64
	IsRoundTrip         bool
}

// CreateProposal creates a new trip in proposed status. The vehicle is read
// from the registry once and embedded as a frozen snapshot; the estimated
// fare breakdown is computed here and stays fixed until the proposal is
// edited.
func (s *TripService) CreateProposal(ctx context.Context, req CreateProposalRequest) (*domain.Trip, error) {
	if req.Form.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.Form.VehicleID)
	if err != nil {
		return nil, err
	}

	numberOfDays := parseIntOr(req.Form.NumberOfDays, 1)
	bataPerDay := parseFloatOr(req.Form.BataPerDay, 0)
	estimatedTolls := parseFloatOr(req.Form.EstimatedTolls, 0)
	discount := parseFloatOr(req.Form.Discount, 0)
	ratePerKmOverride := parseOptionalFloat(req.Form.RatePerKmOverride)
	minKmPerDayOverride := parseOptionalFloat(req.Form.MinKmPerDayOverride)

	effectiveRatePerKm := vehicle.RatePerKm
	if ratePerKmOverride != nil {
		effectiveRatePerKm = *ratePerKmOverride
	}
	effectiveMinKm := vehicle.MinKmPerDay
	if minKmPerDayOverride != nil {
		effectiveMinKm = *minKmPerDayOverride
	}

	breakdown := fare.Calculate(fare.Input{
		RatePerKm:       effectiveRatePerKm,
		MinKmPerDay:     effectiveMinKm,
		TotalDistanceKm: req.EstimatedDistanceKm,
		NumberOfDays:    numberOfDays,
		BataPerDay:      bataPerDay,
		EstimatedTolls:  estimatedTolls,
		Discount:        discount,
	})

	var startLocation, endLocation string
	if req.Route != nil {
		if wp := req.Route.StartWaypoint(); wp != nil {
			startLocation = wp.Place.ShortName
		}
		if wp := req.Route.EndWaypoint(); wp != nil {
			endLocation = wp.Place.ShortName
		}
	}
	if req.IsRoundTrip {
		// A round trip ends where it starts.
		endLocation = startLocation
	}

	now := s.now()
	trip := &domain.Trip{
		ID:                     s.newID(),
		CustomerName:           req.Form.CustomerName,
		CustomerPhone:          req.Form.CustomerPhone,
		VehicleID:              vehicle.ID,
		VehicleSnapshot:        *vehicle,
		Status:                 domain.TripStatusProposed,
		Route:                  req.Route,
		StartLocationName:      startLocation,
		EndLocationName:        endLocation,
		IsRoundTrip:            req.IsRoundTrip,
		ProposedStartDate:      req.Form.ProposedStartDate,
		NumberOfDays:           numberOfDays,
		BataPerDay:             bataPerDay,
		EstimatedDistanceKm:    req.EstimatedDistanceKm,
		EstimatedTolls:         estimatedTolls,
		EstimatedFareBreakdown: breakdown,
		Discount:               discount,
		RatePerKmOverride:      ratePerKmOverride,
		MinKmPerDayOverride:    minKmPerDayOverride,
		TollEntries:            []domain.TollEntry{},
		AdvancePayments:        []domain.AdvancePayment{},
		Notes:                  req.Form.Notes,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}
	s.refreshCache(ctx, trip)

	return trip, nil
}

// UpdateProposalRequest holds the editable fields of a proposal. Nil fields
// keep the trip's current value.
type UpdateProposalRequest struct {
	NumberOfDays   *int
	BataPerDay     *float64
	EstimatedTolls *float64
	Discount       *float64
	Notes          *string
}

// UpdateProposal merges the supplied fields over a proposed trip and
// recomputes its estimated fare breakdown. The trip stays proposed.
func (s *TripService) UpdateProposal(ctx context.Context, tripID string, req UpdateProposalRequest) (*domain.Trip, error) {
	trip, loadedAt, err := s.load(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != domain.TripStatusProposed {
		return nil, ErrTripNotProposed
	}

	updated := *trip
	if req.NumberOfDays != nil {
		updated.NumberOfDays = *req.NumberOfDays
	}
	if req.BataPerDay != nil {
		updated.BataPerDay = *req.BataPerDay
	}
	if req.EstimatedTolls != nil {
		updated.EstimatedTolls = *req.EstimatedTolls
	}
	if req.Discount != nil {
		updated.Discount = *req.Discount
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}

	updated.EstimatedFareBreakdown = fare.Calculate(fare.Input{
		RatePerKm:       updated.EffectiveRatePerKm(),
		MinKmPerDay:     updated.EffectiveMinKmPerDay(),
		TotalDistanceKm: updated.EstimatedDistanceKm,
		NumberOfDays:    updated.NumberOfDays,
		BataPerDay:      updated.BataPerDay,
		EstimatedTolls:  updated.EstimatedTolls,
		Discount:        updated.Discount,
	})
	updated.UpdatedAt = s.now()

	return s.persist(ctx, &updated, loadedAt)
}

// ConfirmTripRequest contains the agreed schedule.
type ConfirmTripRequest struct {
	ConfirmedStartTime time.Time
	ConfirmedEndTime   *time.Time
}

// ConfirmTrip moves a proposed trip to confirmed, storing the agreed times
// verbatim. No fare recomputation.
func (s *TripService) ConfirmTrip(ctx context.Context, tripID string, req ConfirmTripRequest) (*domain.Trip, error) {
	trip, loadedAt, err := s.load(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != domain.TripStatusProposed {
		return nil, ErrTripNotProposed
	}

	updated := *trip
	updated.Status = domain.TripStatusConfirmed
	start := req.ConfirmedStartTime
	updated.ConfirmedStartTime = &start
	updated.ConfirmedEndTime = req.ConfirmedEndTime
	updated.UpdatedAt = s.now()

	return s.persist(ctx, &updated, loadedAt)
}

// StartTripRequest contains the physical departure data.
type StartTripRequest struct {
	OdometerStart   float64
	ActualStartTime time.Time
}

// StartTrip moves a confirmed trip to active, recording the start odometer
// reading exactly once.
func (s *TripService) StartTrip(ctx context.Context, tripID string, req StartTripRequest) (*domain.Trip, error) {
	trip, loadedAt, err := s.load(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != domain.TripStatusConfirmed {
		return nil, ErrTripNotConfirmed
	}

	updated := *trip
	updated.Status = domain.TripStatusActive
	start := req.ActualStartTime
	updated.ActualStartTime = &start
	updated.OdometerStart = &domain.OdometerReading{
		Value:     req.OdometerStart,
		Timestamp: req.ActualStartTime,
		Type:      domain.OdometerReadingStart,
	}
	updated.UpdatedAt = s.now()

	return s.persist(ctx, &updated, loadedAt)
}

// AddTollEntry appends a toll to an active trip's ledger. The fare breakdown
// is untouched; tolls are folded in at completion.
func (s *TripService) AddTollEntry(ctx context.Context, tripID string, amount float64, location string) (*domain.Trip, error) {
	trip, loadedAt, err := s.load(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != domain.TripStatusActive {
		return nil, ErrTripNotActive
	}

	entry := domain.TollEntry{
		ID:        s.newID(),
		Amount:    amount,
		Location:  location,
		Timestamp: s.now(),
	}

	updated := *trip
	updated.TollEntries = append(append([]domain.TollEntry{}, trip.TollEntries...), entry)
	updated.UpdatedAt = s.now()

	return s.persist(ctx, &updated, loadedAt)
}

// AddAdvancePayment appends an advance to an active trip's ledger. Advances
// never alter a stored fare breakdown; they offset the balance due in
// derived views only.
func (s *TripService) AddAdvancePayment(ctx context.Context, tripID string, amount float64, reason string) (*domain.Trip, error) {
	trip, loadedAt, err := s.load(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != domain.TripStatusActive {
		return nil, ErrTripNotActive
	}

	payment := domain.AdvancePayment{
		ID:        s.newID(),
		Amount:    amount,
		Reason:    reason,
		Timestamp: s.now(),
	}

	updated := *trip
	updated.AdvancePayments = append(append([]domain.AdvancePayment{}, trip.AdvancePayments...), payment)
	updated.UpdatedAt = s.now()

	return s.persist(ctx, &updated, loadedAt)
}

// CompleteTripRequest contains the physical arrival data.
type CompleteTripRequest struct {
	OdometerEnd   float64
	ActualEndTime time.Time
}

// CompleteTrip moves an active trip to completed: derives the actual
// distance from the odometer pair, the actual day count from the calendar
// span, folds the toll ledger in, and computes the actual fare breakdown.
// The estimated breakdown is left untouched.
func (s *TripService) CompleteTrip(ctx context.Context, tripID string, req CompleteTripRequest) (*domain.Trip, error) {
	trip, loadedAt, err := s.load(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != domain.TripStatusActive {
		return nil, ErrTripNotActive
	}

	var odometerStart float64
	if trip.OdometerStart != nil {
		odometerStart = trip.OdometerStart.Value
	}
	if req.OdometerEnd < odometerStart {
		return nil, ErrOdometerBeforeStart
	}

	actualDistanceKm := req.OdometerEnd - odometerStart
	totalTolls := trip.TotalTolls()

	actualDays := trip.NumberOfDays
	if trip.ActualStartTime != nil {
		actualDays = dateutil.CalendarDaysSpanned(*trip.ActualStartTime, req.ActualEndTime)
	}

	breakdown := fare.CalculateActual(fare.ActualInput{
		RatePerKm:        trip.EffectiveRatePerKm(),
		MinKmPerDay:      trip.EffectiveMinKmPerDay(),
		ActualDistanceKm: actualDistanceKm,
		ActualDays:       actualDays,
		ActualTolls:      totalTolls,
		BataPerDay:       trip.BataPerDay,
	})

	updated := *trip
	updated.Status = domain.TripStatusCompleted
	end := req.ActualEndTime
	updated.ActualEndTime = &end
	updated.OdometerEnd = &domain.OdometerReading{
		Value:     req.OdometerEnd,
		Timestamp: req.ActualEndTime,
		Type:      domain.OdometerReadingEnd,
	}
	updated.ActualDistanceKm = &actualDistanceKm
	updated.ActualDays = &actualDays
	updated.ActualFareBreakdown = &breakdown
	updated.UpdatedAt = s.now()

	return s.persist(ctx, &updated, loadedAt)
}

// CancelTrip cancels a trip from any non-completed status. No other fields
// change.
func (s *TripService) CancelTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	trip, loadedAt, err := s.load(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status == domain.TripStatusCompleted {
		return nil, ErrTripCompleted
	}

	updated := *trip
	updated.Status = domain.TripStatusCancelled
	updated.UpdatedAt = s.now()

	return s.persist(ctx, &updated, loadedAt)
}

// DeleteTrip removes a trip unconditionally. Status-based deletion policy
// (only proposed or cancelled trips, per the client's rules) is the
// caller's concern.
func (s *TripService) DeleteTrip(ctx context.Context, tripID string) error {
	if tripID == "" {
		return ErrInvalidTripID
	}

	if err := s.tripRepo.Delete(ctx, tripID); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, tripID)
	}
	return nil
}

// GetTrip retrieves a trip by ID, through the cache when one is configured.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, tripID)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	s.refreshCache(ctx, trip)

	return trip, nil
}

// GetAllTrips retrieves all trips, newest first.
func (s *TripService) GetAllTrips(ctx context.Context) ([]*domain.Trip, error) {
	return s.tripRepo.GetAll(ctx)
}

// GetTripsByStatus retrieves all trips in the given status, newest first.
func (s *TripService) GetTripsByStatus(ctx context.Context, status domain.TripStatus) ([]*domain.Trip, error) {
	return s.tripRepo.GetByStatus(ctx, status)
}

// load fetches a trip for mutation, bypassing the cache, and returns the
// UpdatedAt the compare-and-swap write must match.
func (s *TripService) load(ctx context.Context, tripID string) (*domain.Trip, time.Time, error) {
	if tripID == "" {
		return nil, time.Time{}, ErrInvalidTripID
	}
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, time.Time{}, err
	}
	return trip, trip.UpdatedAt, nil
}

// persist writes an updated trip and refreshes the cache.
func (s *TripService) persist(ctx context.Context, trip *domain.Trip, loadedAt time.Time) (*domain.Trip, error) {
	if err := s.tripRepo.Update(ctx, trip, loadedAt); err != nil {
		return nil, err
	}
	s.refreshCache(ctx, trip)
	return trip, nil
}

func (s *TripService) refreshCache(ctx context.Context, trip *domain.Trip) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, trip); err != nil {
		s.log.Debug().Err(err).Str("trip_id", trip.ID).Msg("trip cache refresh failed")
	}
}
