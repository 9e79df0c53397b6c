package lead

import (
	"time"

	"rentcrm/internal/api"
)

// DeletePolicy: DELETE only bumps updated_at, the row stays.
const DeletePolicy = api.SoftDeleteTimestampOnly

type Lead struct {
	ID           int        `db:"id" json:"id"`
	LeadID       *string    `db:"lead_id" json:"lead_id"`
	ClientName   *string    `db:"client_name" json:"client_name"`
	Phone        *string    `db:"phone" json:"phone"`
	Email        *string    `db:"email" json:"email"`
	Source       *string    `db:"source" json:"source"`
	Status       string     `db:"status" json:"status"`
	VehicleType  *string    `db:"vehicle_type" json:"vehicle_type"`
	RentalPeriod *string    `db:"rental_period" json:"rental_period"`
	Notes        *string    `db:"notes" json:"notes"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at"`
}

type CreateParams struct {
	LeadID       *string `json:"lead_id"`
	ClientName   string  `json:"client_name" validate:"required"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Source       *string `json:"source"`
	Status       string  `json:"status"`
	VehicleType  *string `json:"vehicle_type"`
	RentalPeriod *string `json:"rental_period"`
	Notes        *string `json:"notes"`
}

type UpdateParams struct {
	ID           int     `json:"id"`
	ClientName   *string `json:"client_name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Source       *string `json:"source"`
	Status       *string `json:"status"`
	VehicleType  *string `json:"vehicle_type"`
	RentalPeriod *string `json:"rental_period"`
	Notes        *string `json:"notes"`
}

type ListResponse struct {
	Leads []Lead `json:"leads"`
}

type DetailResponse struct {
	Lead *Lead `json:"lead"`
}
