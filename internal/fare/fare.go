// Package fare computes trip fare breakdowns from distance, day count and the
// minimum-charge policy. It is pure arithmetic: no state, no rounding, no
// validation. Callers are responsible for supplying sane inputs; see the
// service layer for the parsing/validation boundary.
package fare

import (
	"math"

	"tripbook/internal/domain"
)

// Input is the argument set for an estimated fare computation.
type Input struct {
	RatePerKm       float64
	MinKmPerDay     float64
	TotalDistanceKm float64
	NumberOfDays    int
	BataPerDay      float64
	EstimatedTolls  float64
	Discount        float64
}

// ActualInput is the argument set for a completed trip's fare computation.
type ActualInput struct {
	RatePerKm        float64
	MinKmPerDay      float64
	ActualDistanceKm float64
	ActualDays       int
	ActualTolls      float64
	BataPerDay       float64
	Discount         float64
}

// Calculate produces a fare breakdown.
//
// The chargeable distance is the greater of the distance traveled and the
// contractual minimum (minKmPerDay * days), guaranteeing the driver a daily
// floor even on short trips.
func Calculate(in Input) domain.FareBreakdown {
	days := float64(in.NumberOfDays)

	minimumChargeableDistance := in.MinKmPerDay * days
	chargeableDistance := math.Max(in.TotalDistanceKm, minimumChargeableDistance)

	distanceCharges := chargeableDistance * in.RatePerKm
	totalBata := in.BataPerDay * days

	subtotal := distanceCharges + totalBata + in.EstimatedTolls
	grandTotal := subtotal - in.Discount

	return domain.FareBreakdown{
		ActualDistance:     in.TotalDistanceKm,
		ChargeableDistance: chargeableDistance,
		DistanceCharges:    distanceCharges,
		TotalBata:          totalBata,
		TotalTolls:         in.EstimatedTolls,
		Subtotal:           subtotal,
		Discount:           in.Discount,
		GrandTotal:         grandTotal,
	}
}

// CalculateActual adapts a completed trip's actuals onto Calculate.
func CalculateActual(in ActualInput) domain.FareBreakdown {
	return Calculate(Input{
		RatePerKm:       in.RatePerKm,
		MinKmPerDay:     in.MinKmPerDay,
		TotalDistanceKm: in.ActualDistanceKm,
		NumberOfDays:    in.ActualDays,
		BataPerDay:      in.BataPerDay,
		EstimatedTolls:  in.ActualTolls,
		Discount:        in.Discount,
	})
}
