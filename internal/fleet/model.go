package fleet

import (
	"time"

	"rentcrm/internal/api"
)

// DeletePolicy: fleet rows carry an is_active soft flag, but the admin path
// hard-deletes. Both exist on purpose.
const DeletePolicy = api.HardDelete

type Vehicle struct {
	ID              int     `db:"id" json:"id"`
	BranchID        *int    `db:"branch_id" json:"branch_id"`
	Model           string  `db:"model" json:"model"`
	LicensePlate    string  `db:"license_plate" json:"license_plate"`
	Vin             *string `db:"vin" json:"vin"`
	Year            *int    `db:"year" json:"year"`
	Color           *string `db:"color" json:"color"`
	Seats           *int    `db:"seats" json:"seats"`
	Category        *string `db:"category" json:"category"`
	Status          string  `db:"status" json:"status"`
	CurrentLocation *string `db:"current_location" json:"current_location"`

	InsuranceExpires      *time.Time `db:"insurance_expires" json:"insurance_expires"`
	TechInspectionExpires *time.Time `db:"tech_inspection_expires" json:"tech_inspection_expires"`
	OsagoNumber           *string    `db:"osago_number" json:"osago_number"`
	KaskoNumber           *string    `db:"kasko_number" json:"kasko_number"`

	LastServiceDate *time.Time `db:"last_service_date" json:"last_service_date"`
	NextServiceDate *time.Time `db:"next_service_date" json:"next_service_date"`
	LastServiceKm   *int       `db:"last_service_km" json:"last_service_km"`
	NextServiceKm   *int       `db:"next_service_km" json:"next_service_km"`
	CurrentKm       int        `db:"current_km" json:"current_km"`

	PurchasePrice     *float64 `db:"purchase_price" json:"purchase_price"`
	RentalPricePerDay *float64 `db:"rental_price_per_day" json:"rental_price_per_day"`
	RentalPricePerKm  *float64 `db:"rental_price_per_km" json:"rental_price_per_km"`
	SubleaseCost      float64  `db:"sublease_cost" json:"sublease_cost"`

	Notes    *string `db:"notes" json:"notes"`
	IsActive bool    `db:"is_active" json:"is_active"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at"`
}

// VehicleSummary is the shortened list form.
type VehicleSummary struct {
	ID              int        `db:"id" json:"id"`
	Model           string     `db:"model" json:"model"`
	LicensePlate    string     `db:"license_plate" json:"license_plate"`
	Status          string     `db:"status" json:"status"`
	CurrentLocation *string    `db:"current_location" json:"current_location"`
	NextServiceDate *time.Time `db:"next_service_date" json:"next_service_date"`
}

type CreateParams struct {
	BranchID        *int    `json:"branch_id" db:"branch_id"`
	Model           string  `json:"model" db:"model" validate:"required"`
	LicensePlate    string  `json:"license_plate" db:"license_plate" validate:"required"`
	Vin             *string `json:"vin" db:"vin"`
	Year            *int    `json:"year" db:"year"`
	Color           *string `json:"color" db:"color"`
	Seats           *int    `json:"seats" db:"seats"`
	Category        *string `json:"category" db:"category"`
	Status          string  `json:"status" db:"status"`
	CurrentLocation *string `json:"current_location" db:"current_location"`

	InsuranceExpires      *string `json:"insurance_expires" db:"insurance_expires"`
	TechInspectionExpires *string `json:"tech_inspection_expires" db:"tech_inspection_expires"`
	OsagoNumber           *string `json:"osago_number" db:"osago_number"`
	KaskoNumber           *string `json:"kasko_number" db:"kasko_number"`

	LastServiceDate *string `json:"last_service_date" db:"last_service_date"`
	NextServiceDate *string `json:"next_service_date" db:"next_service_date"`
	LastServiceKm   *int    `json:"last_service_km" db:"last_service_km"`
	NextServiceKm   *int    `json:"next_service_km" db:"next_service_km"`
	CurrentKm       int     `json:"current_km" db:"current_km"`

	PurchasePrice     *float64 `json:"purchase_price" db:"purchase_price"`
	RentalPricePerDay *float64 `json:"rental_price_per_day" db:"rental_price_per_day"`
	RentalPricePerKm  *float64 `json:"rental_price_per_km" db:"rental_price_per_km"`
	SubleaseCost      float64  `json:"sublease_cost" db:"sublease_cost"`

	Notes *string `json:"notes" db:"notes"`
}

type UpdateParams struct {
	ID                int      `json:"id"`
	Model             string   `json:"model"`
	LicensePlate      string   `json:"license_plate"`
	Status            string   `json:"status"`
	CurrentLocation   *string  `json:"current_location"`
	CurrentKm         int      `json:"current_km"`
	RentalPricePerDay *float64 `json:"rental_price_per_day"`
	RentalPricePerKm  *float64 `json:"rental_price_per_km"`
	SubleaseCost      float64  `json:"sublease_cost"`
	Notes             *string  `json:"notes"`
}

type ListResponse struct {
	Vehicles []VehicleSummary `json:"vehicles"`
	Total    int              `json:"total"`
}
