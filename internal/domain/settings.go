package domain

// DriverSettings holds the driver's profile and defaults applied to new
// proposals.
type DriverSettings struct {
	Name              string  `json:"name"`
	Phone             string  `json:"phone"`
	DefaultBataPerDay float64 `json:"defaultBataPerDay" validate:"gte=0"`
}

// DefaultDriverSettings are used until the driver saves their own.
var DefaultDriverSettings = DriverSettings{
	DefaultBataPerDay: 500,
}
