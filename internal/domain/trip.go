package domain

import "time"

// TripStatus represents where a trip is in its lifecycle.
type TripStatus string

const (
	TripStatusProposed  TripStatus = "proposed"
	TripStatusConfirmed TripStatus = "confirmed"
	TripStatusActive    TripStatus = "active"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// statusTransitions is the directed graph of legal status changes. A trip only
// ever moves forward through it or jumps to cancelled; completed and cancelled
// are terminal.
var statusTransitions = map[TripStatus][]TripStatus{
	TripStatusProposed:  {TripStatusConfirmed, TripStatusCancelled},
	TripStatusConfirmed: {TripStatusActive, TripStatusCancelled},
	TripStatusActive:    {TripStatusCompleted, TripStatusCancelled},
	TripStatusCompleted: {},
	TripStatusCancelled: {},
}

// CanTransitionTo reports whether from -> to is a legal status change.
// Self-loops are allowed: editing a proposal or appending ledger entries to an
// active trip does not change status.
func (s TripStatus) CanTransitionTo(to TripStatus) bool {
	if s == to {
		return true
	}
	for _, next := range statusTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s TripStatus) Terminal() bool {
	return len(statusTransitions[s]) == 0
}

// OdometerReadingType marks which end of the trip a reading belongs to.
type OdometerReadingType string

const (
	OdometerReadingStart OdometerReadingType = "start"
	OdometerReadingEnd   OdometerReadingType = "end"
)

// OdometerReading is a timestamped distance-meter value.
type OdometerReading struct {
	Value     float64             `json:"value"`
	Timestamp time.Time           `json:"timestamp"`
	Type      OdometerReadingType `json:"type" validate:"oneof=start end"`
}

// TollEntry is an individual toll paid during an active trip. Entries are
// append-only; the sum is folded into the fare at completion.
type TollEntry struct {
	ID        string    `json:"id" validate:"required"`
	Amount    float64   `json:"amount"`
	Location  string    `json:"location"`
	Timestamp time.Time `json:"timestamp"`
}

// AdvancePayment is money received from the customer before settlement.
// Advances never change a stored fare breakdown; they only offset the balance
// due in derived views.
type AdvancePayment struct {
	ID        string    `json:"id" validate:"required"`
	Amount    float64   `json:"amount"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// Trip is the central aggregate: a customer engagement moving through the
// lifecycle from proposal to completion. Mutated exclusively through the trip
// service's transition operations.
type Trip struct {
	ID            string `json:"id" validate:"required"`
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerPhone string `json:"customerPhone,omitempty"`

	VehicleID       string  `json:"vehicleId" validate:"required"`
	VehicleSnapshot Vehicle `json:"vehicleSnapshot" validate:"required"`

	Status TripStatus `json:"status" validate:"oneof=proposed confirmed active completed cancelled"`

	Route             *Route `json:"route,omitempty"`
	StartLocationName string `json:"startLocationName,omitempty"`
	EndLocationName   string `json:"endLocationName,omitempty"`
	IsRoundTrip       bool   `json:"isRoundTrip"`

	ProposedStartDate  time.Time  `json:"proposedStartDate"`
	ConfirmedStartTime *time.Time `json:"confirmedStartTime,omitempty"`
	ConfirmedEndTime   *time.Time `json:"confirmedEndTime,omitempty"`
	ActualStartTime    *time.Time `json:"actualStartTime,omitempty"`
	ActualEndTime      *time.Time `json:"actualEndTime,omitempty"`

	NumberOfDays int     `json:"numberOfDays" validate:"gte=1"`
	BataPerDay   float64 `json:"bataPerDay" validate:"gte=0"`

	EstimatedDistanceKm    float64       `json:"estimatedDistanceKm" validate:"gte=0"`
	EstimatedTolls         float64       `json:"estimatedTolls" validate:"gte=0"`
	EstimatedFareBreakdown FareBreakdown `json:"estimatedFareBreakdown"`
	Discount               float64       `json:"discount" validate:"gte=0"`
	RatePerKmOverride      *float64      `json:"ratePerKmOverride,omitempty"`
	MinKmPerDayOverride    *float64      `json:"minKmPerDayOverride,omitempty"`

	ActualDistanceKm    *float64         `json:"actualDistanceKm,omitempty"`
	ActualDays          *int             `json:"actualDays,omitempty"`
	OdometerStart       *OdometerReading `json:"odometerStart,omitempty"`
	OdometerEnd         *OdometerReading `json:"odometerEnd,omitempty"`
	TollEntries         []TollEntry      `json:"tollEntries" validate:"dive"`
	AdvancePayments     []AdvancePayment `json:"advancePayments" validate:"dive"`
	ActualFareBreakdown *FareBreakdown   `json:"actualFareBreakdown,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EffectiveRatePerKm resolves the per-km rate for fare computations:
// the per-trip override when present, else the frozen vehicle snapshot.
func (t *Trip) EffectiveRatePerKm() float64 {
	if t.RatePerKmOverride != nil {
		return *t.RatePerKmOverride
	}
	return t.VehicleSnapshot.RatePerKm
}

// EffectiveMinKmPerDay resolves the minimum daily distance the same way.
func (t *Trip) EffectiveMinKmPerDay() float64 {
	if t.MinKmPerDayOverride != nil {
		return *t.MinKmPerDayOverride
	}
	return t.VehicleSnapshot.MinKmPerDay
}

// TotalTolls sums the toll ledger.
func (t *Trip) TotalTolls() float64 {
	var sum float64
	for _, e := range t.TollEntries {
		sum += e.Amount
	}
	return sum
}

// TotalAdvances sums the advance-payment ledger.
func (t *Trip) TotalAdvances() float64 {
	var sum float64
	for _, p := range t.AdvancePayments {
		sum += p.Amount
	}
	return sum
}
