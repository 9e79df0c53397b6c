package booking

import (
	"database/sql/driver"
)

// rawJSON captures a JSON value verbatim from the request body and binds it as
// a text parameter (the statement casts it to jsonb). Empty means "absent" and
// binds the column default of an empty array.
type rawJSON string

func (r *rawJSON) UnmarshalJSON(b []byte) error {
	*r = rawJSON(b)
	return nil
}

func (r rawJSON) MarshalJSON() ([]byte, error) {
	if r == "" {
		return []byte("[]"), nil
	}
	return []byte(r), nil
}

func (r rawJSON) Value() (driver.Value, error) {
	if r == "" {
		return "[]", nil
	}
	return string(r), nil
}

// CreateParams is both the POST body and the named-parameter source for the
// insert. Dates travel as strings and are cast by Postgres.
type CreateParams struct {
	ClientName      string  `json:"client_name" db:"client_name" validate:"required"`
	ClientPhone     string  `json:"client_phone" db:"client_phone" validate:"required"`
	ClientEmail     *string `json:"client_email" db:"client_email"`
	ClientBirthDate *string `json:"client_birth_date" db:"client_birth_date"`

	ClientPassportSeries       *string `json:"client_passport_series" db:"client_passport_series"`
	ClientPassportNumber       *string `json:"client_passport_number" db:"client_passport_number"`
	ClientPassportIssuedBy     *string `json:"client_passport_issued_by" db:"client_passport_issued_by"`
	ClientPassportIssuedDate   *string `json:"client_passport_issued_date" db:"client_passport_issued_date"`
	ClientPassportRegistration *string `json:"client_passport_registration" db:"client_passport_registration"`

	ClientDriverLicenseSeries     *string `json:"client_driver_license_series" db:"client_driver_license_series"`
	ClientDriverLicenseNumber     *string `json:"client_driver_license_number" db:"client_driver_license_number"`
	ClientDriverLicenseIssuedDate *string `json:"client_driver_license_issued_date" db:"client_driver_license_issued_date"`
	ClientDriverLicenseIssuedBy   *string `json:"client_driver_license_issued_by" db:"client_driver_license_issued_by"`

	ClientIsForeign bool `json:"client_is_foreign" db:"client_is_foreign"`

	VehicleID           *int    `json:"vehicle_id" db:"vehicle_id"`
	VehicleModel        *string `json:"vehicle_model" db:"vehicle_model"`
	VehicleLicensePlate *string `json:"vehicle_license_plate" db:"vehicle_license_plate"`

	StartDate string `json:"start_date" db:"start_date" validate:"required"`
	EndDate   string `json:"end_date" db:"end_date" validate:"required"`
	Days      int    `json:"days" db:"days"`

	PickupLocation  *string `json:"pickup_location" db:"pickup_location"`
	DropoffLocation *string `json:"dropoff_location" db:"dropoff_location"`

	RouteType       *string `json:"route_type" db:"route_type"`
	IsInternational bool    `json:"is_international" db:"is_international"`
	PlannedKmTotal  *int    `json:"planned_km_total" db:"planned_km_total"`

	Status      string  `json:"status" db:"status"`
	BookingType string  `json:"booking_type" db:"booking_type"`
	TotalPrice  float64 `json:"total_price" db:"total_price"`
	PaidAmount  float64 `json:"paid_amount" db:"paid_amount"`

	DepositAmount     float64 `json:"deposit_amount" db:"deposit_amount"`
	DepositStatus     string  `json:"deposit_status" db:"deposit_status"`
	DepositHoldMethod *string `json:"deposit_hold_method" db:"deposit_hold_method"`

	Services          rawJSON  `json:"services" db:"services"`
	RentalDays        *int     `json:"rental_days" db:"rental_days"`
	RentalKm          *int     `json:"rental_km" db:"rental_km"`
	RentalPricePerDay *float64 `json:"rental_price_per_day" db:"rental_price_per_day"`
	RentalPricePerKm  *float64 `json:"rental_price_per_km" db:"rental_price_per_km"`

	HasChildSeat         bool    `json:"has_child_seat" db:"has_child_seat"`
	ChildSeatCount       int     `json:"child_seat_count" db:"child_seat_count"`
	HasGps               bool    `json:"has_gps" db:"has_gps"`
	HasWinterTires       bool    `json:"has_winter_tires" db:"has_winter_tires"`
	HasRoofRack          bool    `json:"has_roof_rack" db:"has_roof_rack"`
	HasAdditionalDriver  bool    `json:"has_additional_driver" db:"has_additional_driver"`
	AdditionalDriverName *string `json:"additional_driver_name" db:"additional_driver_name"`

	InsuranceType *string `json:"insurance_type" db:"insurance_type"`
	InsuranceCost float64 `json:"insurance_cost" db:"insurance_cost"`
	FuelPolicy    string  `json:"fuel_policy" db:"fuel_policy"`

	CommunicationChannel *string `json:"communication_channel" db:"communication_channel"`
	Source               *string `json:"source" db:"source"`

	Notes         *string `json:"notes" db:"notes"`
	CustomFields  rawJSON `json:"custom_fields" db:"custom_fields"`
	Payments      rawJSON `json:"payments" db:"payments"`
	InternalNotes *string `json:"internal_notes" db:"internal_notes"`

	CreatedBy       *string `json:"created_by" db:"created_by"`
	AssignedManager *string `json:"assigned_manager" db:"assigned_manager"`
}

// applyDefaults fills the same defaults the API has always guaranteed for
// omitted fields.
func (p *CreateParams) applyDefaults() {
	if p.Status == "" {
		p.Status = "Бронь"
	}
	if p.BookingType == "" {
		p.BookingType = "rent"
	}
	if p.DepositStatus == "" {
		p.DepositStatus = "pending"
	}
	if p.FuelPolicy == "" {
		p.FuelPolicy = "full-to-full"
	}
	if p.Days == 0 {
		p.Days = 1
	}
}
