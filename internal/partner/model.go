package partner

import (
	"time"

	"rentcrm/internal/api"
)

// DeletePolicy: DELETE removes the partner row.
const DeletePolicy = api.HardDelete

type Partner struct {
	ID            int     `db:"id" json:"id"`
	PartnerID     string  `db:"partner_id" json:"partner_id"`
	Type          *string `db:"type" json:"type"`
	CompanyName   *string `db:"company_name" json:"company_name"`
	ContactPerson *string `db:"contact_person" json:"contact_person"`
	Phone         *string `db:"phone" json:"phone"`
	Email         *string `db:"email" json:"email"`

	TelegramUsername *string `db:"telegram_username" json:"telegram_username"`
	TelegramLink     *string `db:"telegram_link" json:"telegram_link"`

	LegalName    *string `db:"legal_name" json:"legal_name"`
	Inn          *string `db:"inn" json:"inn"`
	Kpp          *string `db:"kpp" json:"kpp"`
	LegalAddress *string `db:"legal_address" json:"legal_address"`

	BankName             *string `db:"bank_name" json:"bank_name"`
	BankAccount          *string `db:"bank_account" json:"bank_account"`
	CorrespondentAccount *string `db:"correspondent_account" json:"correspondent_account"`
	Bik                  *string `db:"bik" json:"bik"`

	PassportSeries     *string    `db:"passport_series" json:"passport_series"`
	PassportNumber     *string    `db:"passport_number" json:"passport_number"`
	PassportIssuedBy   *string    `db:"passport_issued_by" json:"passport_issued_by"`
	PassportIssuedDate *time.Time `db:"passport_issued_date" json:"passport_issued_date"`

	Notes     *string    `db:"notes" json:"notes"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at"`

	// Children are hydrated with secondary queries, not joins.
	Vehicles []PartnerVehicle `db:"-" json:"vehicles,omitempty"`
	Services []PartnerService `db:"-" json:"services,omitempty"`
}

type PartnerVehicle struct {
	ID           int     `db:"id" json:"id"`
	PartnerRowID int     `db:"partner_id" json:"partner_id"`
	Model        string  `db:"model" json:"model"`
	LicensePlate string  `db:"license_plate" json:"license_plate"`
	DailyRate    float64 `db:"daily_rate" json:"daily_rate"`
	Notes        *string `db:"notes" json:"notes"`
}

type PartnerService struct {
	ID           int     `db:"id" json:"id"`
	PartnerRowID int     `db:"partner_id" json:"partner_id"`
	Name         string  `db:"name" json:"name"`
	Price        float64 `db:"price" json:"price"`
	Unit         string  `db:"unit" json:"unit"`
	Notes        *string `db:"notes" json:"notes"`
}

type VehicleInput struct {
	Model        string  `json:"model" validate:"required"`
	LicensePlate string  `json:"license_plate" validate:"required"`
	DailyRate    float64 `json:"daily_rate"`
	Notes        *string `json:"notes"`
}

type ServiceInput struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price"`
	Unit  string  `json:"unit"`
	Notes *string `json:"notes"`
}

type CreateParams struct {
	Type          *string `json:"type"`
	CompanyName   string  `json:"company_name" validate:"required"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`

	TelegramUsername *string `json:"telegram_username"`
	TelegramLink     *string `json:"telegram_link"`

	LegalName    *string `json:"legal_name"`
	Inn          *string `json:"inn"`
	Kpp          *string `json:"kpp"`
	LegalAddress *string `json:"legal_address"`

	BankName             *string `json:"bank_name"`
	BankAccount          *string `json:"bank_account"`
	CorrespondentAccount *string `json:"correspondent_account"`
	Bik                  *string `json:"bik"`

	PassportSeries     *string `json:"passport_series"`
	PassportNumber     *string `json:"passport_number"`
	PassportIssuedBy   *string `json:"passport_issued_by"`
	PassportIssuedDate *string `json:"passport_issued_date"`

	Notes *string `json:"notes"`

	Vehicles []VehicleInput `json:"vehicles"`
	Services []ServiceInput `json:"services"`
}

type UpdateParams struct {
	ID            int     `json:"id"`
	Type          *string `json:"type"`
	CompanyName   *string `json:"company_name"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`

	TelegramUsername *string `json:"telegram_username"`
	TelegramLink     *string `json:"telegram_link"`

	LegalName    *string `json:"legal_name"`
	Inn          *string `json:"inn"`
	Kpp          *string `json:"kpp"`
	LegalAddress *string `json:"legal_address"`

	BankName             *string `json:"bank_name"`
	BankAccount          *string `json:"bank_account"`
	CorrespondentAccount *string `json:"correspondent_account"`
	Bik                  *string `json:"bik"`

	PassportSeries     *string `json:"passport_series"`
	PassportNumber     *string `json:"passport_number"`
	PassportIssuedBy   *string `json:"passport_issued_by"`
	PassportIssuedDate *string `json:"passport_issued_date"`

	Notes *string `json:"notes"`
}

type ListResponse struct {
	Partners []Partner `json:"partners"`
}

type DetailResponse struct {
	Partner *Partner `json:"partner"`
}
