package finance

import (
	"time"

	"rentcrm/internal/api"
)

// DeletePolicy: same as leads, DELETE only bumps updated_at.
const DeletePolicy = api.SoftDeleteTimestampOnly

type Operation struct {
	ID           int        `db:"id" json:"id"`
	OperationID  *string    `db:"operation_id" json:"operation_id"`
	BookingID    *int       `db:"booking_id" json:"booking_id"`
	Date         time.Time  `db:"date" json:"date"`
	ClientName   *string    `db:"client_name" json:"client_name"`
	Type         *string    `db:"type" json:"type"`
	Category     string     `db:"category" json:"category"`
	Method       *string    `db:"method" json:"method"`
	Amount       float64    `db:"amount" json:"amount"`
	Status       string     `db:"status" json:"status"`
	DocumentURL  *string    `db:"document_url" json:"document_url"`
	DocumentName *string    `db:"document_name" json:"document_name"`
	Notes        *string    `db:"notes" json:"notes"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at"`
}

type CreateParams struct {
	OperationID  *string `json:"operation_id"`
	BookingID    *int    `json:"booking_id"`
	Date         string  `json:"date"`
	ClientName   *string `json:"client_name"`
	Type         *string `json:"type"`
	Category     string  `json:"category"`
	Method       *string `json:"method"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
	DocumentURL  *string `json:"document_url"`
	DocumentName *string `json:"document_name"`
	Notes        *string `json:"notes"`
}

type UpdateParams struct {
	ID         int      `json:"id"`
	ClientName *string  `json:"client_name"`
	Type       *string  `json:"type"`
	Method     *string  `json:"method"`
	Amount     *float64 `json:"amount"`
	Status     *string  `json:"status"`
	Notes      *string  `json:"notes"`
}

type ListResponse struct {
	Operations []Operation `json:"operations"`
}

type DetailResponse struct {
	Operation *Operation `json:"operation"`
}
