package client

import (
	"time"

	"rentcrm/internal/api"
)

// DeletePolicy: DELETE removes the row for real.
const DeletePolicy = api.HardDelete

type Client struct {
	ID          int        `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Phone       string     `db:"phone" json:"phone"`
	Email       *string    `db:"email" json:"email"`
	Company     *string    `db:"company" json:"company"`
	Telegram    *string    `db:"telegram" json:"telegram"`
	Whatsapp    *string    `db:"whatsapp" json:"whatsapp"`
	City        *string    `db:"city" json:"city"`
	Balance     float64    `db:"balance" json:"balance"`
	TotalSpent  float64    `db:"total_spent" json:"total_spent"`
	OrdersCount int        `db:"orders_count" json:"orders_count"`
	Rating      float64    `db:"rating" json:"rating"`
	Source      string     `db:"source" json:"source"`
	IsBlacklist bool       `db:"is_blacklist" json:"is_blacklist"`
	Notes       *string    `db:"notes" json:"notes"`
	BirthDate   *time.Time `db:"birth_date" json:"birth_date"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at"`
}

type CreateParams struct {
	Name      string  `json:"name" db:"name" validate:"required"`
	Phone     string  `json:"phone" db:"phone" validate:"required"`
	Email     *string `json:"email" db:"email"`
	Company   *string `json:"company" db:"company"`
	Telegram  *string `json:"telegram" db:"telegram"`
	Whatsapp  *string `json:"whatsapp" db:"whatsapp"`
	City      *string `json:"city" db:"city"`
	Notes     *string `json:"notes" db:"notes"`
	Source    string  `json:"source" db:"source"`
	BirthDate *string `json:"birth_date" db:"birth_date"`
}

type UpdateParams struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Email       *string `json:"email"`
	Company     *string `json:"company"`
	Telegram    *string `json:"telegram"`
	Whatsapp    *string `json:"whatsapp"`
	City        *string `json:"city"`
	Notes       *string `json:"notes"`
	IsBlacklist bool    `json:"is_blacklist"`
	BirthDate   *string `json:"birth_date"`
}

type ListResponse struct {
	Clients []Client `json:"clients"`
}

type DetailResponse struct {
	Client *Client `json:"client"`
}
