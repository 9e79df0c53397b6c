package handover

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Handover is an append-only pickup/return record. Rows are never updated
// or deleted once written.
type Handover struct {
	ID         int     `db:"id" json:"id"`
	HandoverID *string `db:"handover_id" json:"handover_id"`
	VehicleID  *int    `db:"vehicle_id" json:"vehicle_id"`
	BookingID  *int    `db:"booking_id" json:"booking_id"`
	Type       *string `db:"type" json:"type"`

	HandoverDate *string `db:"handover_date" json:"handover_date"`
	HandoverTime *string `db:"handover_time" json:"handover_time"`

	Odometer          *int    `db:"odometer" json:"odometer"`
	FuelLevel         *string `db:"fuel_level" json:"fuel_level"`
	TransponderNeeded bool    `db:"transponder_needed" json:"transponder_needed"`
	TransponderNumber *string `db:"transponder_number" json:"transponder_number"`

	DepositAmount       float64 `db:"deposit_amount" json:"deposit_amount"`
	RentalAmount        float64 `db:"rental_amount" json:"rental_amount"`
	RentalPaymentMethod *string `db:"rental_payment_method" json:"rental_payment_method"`
	RentalReceiptURL    *string `db:"rental_receipt_url" json:"rental_receipt_url"`

	Damages      *string        `db:"damages" json:"damages"`
	Notes        *string        `db:"notes" json:"notes"`
	CustomFields types.JSONText `db:"custom_fields" json:"custom_fields"`
	CreatedBy    *string        `db:"created_by" json:"created_by"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// HandoverWithVehicle carries the fleet join columns used by list views.
type HandoverWithVehicle struct {
	Handover
	VehicleModel *string `db:"vehicle_model" json:"vehicle_model"`
	LicensePlate *string `db:"license_plate" json:"license_plate"`
}

type CreateParams struct {
	HandoverID *string `json:"handover_id" db:"handover_id"`
	VehicleID  *int    `json:"vehicle_id" db:"vehicle_id" validate:"required"`
	BookingID  *int    `json:"booking_id" db:"booking_id"`
	Type       *string `json:"type" db:"type"`

	HandoverDate *string `json:"handover_date" db:"handover_date"`
	HandoverTime *string `json:"handover_time" db:"handover_time"`

	Odometer          *int    `json:"odometer" db:"odometer"`
	FuelLevel         *string `json:"fuel_level" db:"fuel_level"`
	TransponderNeeded bool    `json:"transponder_needed" db:"transponder_needed"`
	TransponderNumber *string `json:"transponder_number" db:"transponder_number"`

	DepositAmount       float64 `json:"deposit_amount" db:"deposit_amount"`
	RentalAmount        float64 `json:"rental_amount" db:"rental_amount"`
	RentalPaymentMethod *string `json:"rental_payment_method" db:"rental_payment_method"`
	RentalReceiptURL    *string `json:"rental_receipt_url" db:"rental_receipt_url"`

	Damages      *string `json:"damages" db:"damages"`
	Notes        *string `json:"notes" db:"notes"`
	CustomFields rawJSON `json:"custom_fields" db:"custom_fields"`
	CreatedBy    *string `json:"created_by" db:"created_by"`
}

type ListResponse struct {
	Handovers []HandoverWithVehicle `json:"handovers"`
}

type DetailResponse struct {
	Handover *Handover `json:"handover"`
}
