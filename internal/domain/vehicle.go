package domain

import "time"

// CarSize categorizes a vehicle's body type.
type CarSize string

const (
	CarSizeHatchback CarSize = "Hatchback"
	CarSizeSedan     CarSize = "Sedan"
	CarSizeSUV       CarSize = "SUV"
	CarSizeMUV       CarSize = "MUV"
	CarSizeLuxury    CarSize = "Luxury"
)

// FuelType is the vehicle's fuel category.
type FuelType string

const (
	FuelTypePetrol   FuelType = "Petrol"
	FuelTypeDiesel   FuelType = "Diesel"
	FuelTypeCNG      FuelType = "CNG"
	FuelTypeElectric FuelType = "Electric"
	FuelTypeHybrid   FuelType = "Hybrid"
)

// ACOption indicates whether fares are quoted with air conditioning.
type ACOption string

const (
	ACOptionAC    ACOption = "AC"
	ACOptionNonAC ACOption = "Non-AC"
)

// Vehicle is a car in the driver's registry. Trips embed a frozen copy at
// proposal time, so later edits to the registry never change an existing
// trip's fare basis.
type Vehicle struct {
	ID          string    `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	CarSize     CarSize   `json:"carSize" validate:"oneof=Hatchback Sedan SUV MUV Luxury"`
	FuelType    FuelType  `json:"fuelType" validate:"oneof=Petrol Diesel CNG Electric Hybrid"`
	ACOption    ACOption  `json:"acOption" validate:"oneof=AC Non-AC"`
	MinKmPerDay float64   `json:"minKmPerDay" validate:"gt=0"`
	RatePerKm   float64   `json:"ratePerKm" validate:"gt=0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
