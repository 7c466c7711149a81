package service

import "errors"

var (
	// ErrInvalidTripID is returned when trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidVehicleID is returned when vehicle ID is empty.
	ErrInvalidVehicleID = errors.New("invalid vehicle id")

	// ErrInvalidVehicleRates is returned when a vehicle's rate or daily
	// minimum is zero or negative.
	ErrInvalidVehicleRates = errors.New("vehicle rate and minimum km per day must be positive")

	// ErrTripNotProposed is returned when an operation requires a trip in
	// proposed status (confirm, edit proposal).
	ErrTripNotProposed = errors.New("trip is not in proposed status")

	// ErrTripNotConfirmed is returned when starting a trip that has not been
	// confirmed.
	ErrTripNotConfirmed = errors.New("trip must be confirmed first")

	// ErrTripNotActive is returned when an operation requires an active trip
	// (tolls, advances, completion).
	ErrTripNotActive = errors.New("trip is not active")

	// ErrTripCompleted is returned when trying to cancel a completed trip.
	ErrTripCompleted = errors.New("cannot cancel completed trip")

	// ErrOdometerBeforeStart is returned when the end odometer reading is
	// lower than the recorded start reading.
	ErrOdometerBeforeStart = errors.New("odometer end reading is before the start reading")
)
