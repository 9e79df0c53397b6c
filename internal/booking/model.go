package booking

import (
	"time"

	"github.com/jmoiron/sqlx/types"

	"rentcrm/internal/api"
)

// DeletePolicy: DELETE mutates status to the cancelled display string.
const DeletePolicy = api.SoftDeleteStatus

// Booking is a rental booking row. Client data is denormalized at creation
// time, and vehicle model/plate are a snapshot, not a live reference to fleet.
type Booking struct {
	ID int `db:"id" json:"id"`

	ClientName      string     `db:"client_name" json:"client_name"`
	ClientPhone     string     `db:"client_phone" json:"client_phone"`
	ClientEmail     *string    `db:"client_email" json:"client_email"`
	ClientBirthDate *time.Time `db:"client_birth_date" json:"client_birth_date"`

	ClientPassportSeries       *string    `db:"client_passport_series" json:"client_passport_series"`
	ClientPassportNumber       *string    `db:"client_passport_number" json:"client_passport_number"`
	ClientPassportIssuedBy     *string    `db:"client_passport_issued_by" json:"client_passport_issued_by"`
	ClientPassportIssuedDate   *time.Time `db:"client_passport_issued_date" json:"client_passport_issued_date"`
	ClientPassportRegistration *string    `db:"client_passport_registration" json:"client_passport_registration"`

	ClientDriverLicenseSeries     *string    `db:"client_driver_license_series" json:"client_driver_license_series"`
	ClientDriverLicenseNumber     *string    `db:"client_driver_license_number" json:"client_driver_license_number"`
	ClientDriverLicenseIssuedDate *time.Time `db:"client_driver_license_issued_date" json:"client_driver_license_issued_date"`
	ClientDriverLicenseIssuedBy   *string    `db:"client_driver_license_issued_by" json:"client_driver_license_issued_by"`

	ClientIsForeign bool `db:"client_is_foreign" json:"client_is_foreign"`

	VehicleID           *int    `db:"vehicle_id" json:"vehicle_id"`
	VehicleModel        *string `db:"vehicle_model" json:"vehicle_model"`
	VehicleLicensePlate *string `db:"vehicle_license_plate" json:"vehicle_license_plate"`

	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Days      int       `db:"days" json:"days"`

	PickupLocation  *string `db:"pickup_location" json:"pickup_location"`
	DropoffLocation *string `db:"dropoff_location" json:"dropoff_location"`

	RouteType       *string `db:"route_type" json:"route_type"`
	IsInternational bool    `db:"is_international" json:"is_international"`
	PlannedKmTotal  *int    `db:"planned_km_total" json:"planned_km_total"`

	Status      string  `db:"status" json:"status"`
	BookingType string  `db:"booking_type" json:"booking_type"`
	TotalPrice  float64 `db:"total_price" json:"total_price"`
	PaidAmount  float64 `db:"paid_amount" json:"paid_amount"`

	DepositAmount     float64 `db:"deposit_amount" json:"deposit_amount"`
	DepositStatus     string  `db:"deposit_status" json:"deposit_status"`
	DepositHoldMethod *string `db:"deposit_hold_method" json:"deposit_hold_method"`

	Services          types.JSONText `db:"services" json:"services"`
	RentalDays        *int           `db:"rental_days" json:"rental_days"`
	RentalKm          *int           `db:"rental_km" json:"rental_km"`
	RentalPricePerDay *float64       `db:"rental_price_per_day" json:"rental_price_per_day"`
	RentalPricePerKm  *float64       `db:"rental_price_per_km" json:"rental_price_per_km"`

	HasChildSeat         bool    `db:"has_child_seat" json:"has_child_seat"`
	ChildSeatCount       int     `db:"child_seat_count" json:"child_seat_count"`
	HasGps               bool    `db:"has_gps" json:"has_gps"`
	HasWinterTires       bool    `db:"has_winter_tires" json:"has_winter_tires"`
	HasRoofRack          bool    `db:"has_roof_rack" json:"has_roof_rack"`
	HasAdditionalDriver  bool    `db:"has_additional_driver" json:"has_additional_driver"`
	AdditionalDriverName *string `db:"additional_driver_name" json:"additional_driver_name"`

	InsuranceType *string `db:"insurance_type" json:"insurance_type"`
	InsuranceCost float64 `db:"insurance_cost" json:"insurance_cost"`
	FuelPolicy    string  `db:"fuel_policy" json:"fuel_policy"`

	CommunicationChannel *string `db:"communication_channel" json:"communication_channel"`
	Source               *string `db:"source" json:"source"`

	Notes         *string        `db:"notes" json:"notes"`
	CustomFields  types.JSONText `db:"custom_fields" json:"custom_fields"`
	Payments      types.JSONText `db:"payments" json:"payments"`
	InternalNotes *string        `db:"internal_notes" json:"internal_notes"`

	CreatedBy       *string `db:"created_by" json:"created_by"`
	AssignedManager *string `db:"assigned_manager" json:"assigned_manager"`

	GoogleCalendarEventID *string `db:"google_calendar_event_id" json:"google_calendar_event_id"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at"`
}

// BookingWithVehicle joins the live fleet row for display alongside the
// snapshotted vehicle fields.
type BookingWithVehicle struct {
	Booking
	VehicleModelFull *string `db:"vehicle_model_full" json:"vehicle_model_full"`
	VehiclePlateFull *string `db:"vehicle_plate_full" json:"vehicle_plate_full"`
}

// Filters narrows the booking list. Absent filters are omitted from the query
// entirely rather than compared against defaults.
type Filters struct {
	Status    string
	VehicleID *int
	DateFrom  string
	DateTo    string
}

type ListResponse struct {
	Bookings []BookingWithVehicle `json:"bookings"`
	Total    int                  `json:"total"`
}

type DetailResponse struct {
	Booking *BookingWithVehicle `json:"booking"`
	Message string              `json:"message,omitempty"`
}
