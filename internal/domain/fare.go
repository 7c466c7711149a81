package domain

// FareBreakdown is the itemized result of a fare computation. It is only ever
// produced by the fare engine, never hand-assembled.
type FareBreakdown struct {
	ActualDistance     float64 `json:"actualDistance"`
	ChargeableDistance float64 `json:"chargeableDistance"`
	DistanceCharges    float64 `json:"distanceCharges"`
	TotalBata          float64 `json:"totalBata"`
	TotalTolls         float64 `json:"totalTolls"`
	Subtotal           float64 `json:"subtotal"`
	Discount           float64 `json:"discount"`
	GrandTotal         float64 `json:"grandTotal"`
}
