package booking

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"rentcrm/internal/status"
)

var (
	ErrNotFound         = errors.New("booking not found")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// simpleUpdateFields are the columns a sparse PUT may touch directly.
var simpleUpdateFields = []string{
	"client_name", "client_phone", "vehicle_id", "vehicle_model", "vehicle_license_plate",
	"start_date", "end_date", "days", "pickup_location", "dropoff_location",
	"status", "total_price", "paid_amount", "deposit_amount",
	"rental_days", "rental_km", "rental_price_per_day", "rental_price_per_km",
	"notes",
}

// jsonUpdateFields are replaced wholesale with a marshalled value, never merged.
var jsonUpdateFields = []string{"services", "custom_fields", "payments"}

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const selectWithVehicle = `
	SELECT b.*,
	       f.model AS vehicle_model_full,
	       f.license_plate AS vehicle_plate_full
	FROM bookings b
	LEFT JOIN fleet f ON b.vehicle_id = f.id
	WHERE b.id = $1
`

func (r *Repository) GetByID(ctx context.Context, id int) (*BookingWithVehicle, error) {
	var b BookingWithVehicle
	err := r.db.GetContext(ctx, &b, selectWithVehicle, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns bookings newest-first. Rows with corrupt far-future dates are
// excluded so one bad import does not wreck every calendar view.
func (r *Repository) List(ctx context.Context, f Filters) ([]BookingWithVehicle, error) {
	qb := sq.Select(
		"b.*",
		"f.model AS vehicle_model_full",
		"f.license_plate AS vehicle_plate_full",
	).
		From("bookings b").
		LeftJoin("fleet f ON b.vehicle_id = f.id").
		Where("EXTRACT(YEAR FROM b.start_date) < 2100").
		Where("EXTRACT(YEAR FROM b.end_date) < 2100").
		OrderBy("b.created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if f.Status != "" {
		qb = qb.Where(sq.Eq{"b.status": f.Status})
	}
	if f.VehicleID != nil {
		qb = qb.Where(sq.Eq{"b.vehicle_id": *f.VehicleID})
	}
	if f.DateFrom != "" {
		qb = qb.Where(sq.GtOrEq{"b.end_date": f.DateFrom})
	}
	if f.DateTo != "" {
		qb = qb.Where(sq.LtOrEq{"b.start_date": f.DateTo})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}

	bookings := []BookingWithVehicle{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, err
	}
	return bookings, nil
}

// PurgeStaleDrafts deletes this phone's draft bookings older than one hour.
// Best effort: it is not transactionally tied to the insert that follows.
func (r *Repository) PurgeStaleDrafts(ctx context.Context, phone string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM bookings
		WHERE client_phone = $1
		AND status = $2
		AND created_at < NOW() - INTERVAL '1 hour'
	`, phone, status.Draft.Display())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type VehicleSnapshot struct {
	Model        string `db:"model"`
	LicensePlate string `db:"license_plate"`
}

// SnapshotVehicle looks up the current model/plate for denormalized copies on
// the booking row. A missing vehicle is not an error; the caller keeps
// whatever the request supplied.
func (r *Repository) SnapshotVehicle(ctx context.Context, vehicleID int) (*VehicleSnapshot, error) {
	var v VehicleSnapshot
	err := r.db.GetContext(ctx, &v, `SELECT model, license_plate FROM fleet WHERE id = $1`, vehicleID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

const insertBooking = `
	INSERT INTO bookings (
		client_name, client_phone, client_email, client_birth_date,
		client_passport_series, client_passport_number, client_passport_issued_by,
		client_passport_issued_date, client_passport_registration,
		client_driver_license_series, client_driver_license_number,
		client_driver_license_issued_date, client_driver_license_issued_by,
		client_is_foreign,
		vehicle_id, vehicle_model, vehicle_license_plate,
		start_date, end_date, days,
		pickup_location, dropoff_location,
		route_type, is_international, planned_km_total,
		status, booking_type, total_price, paid_amount, deposit_amount,
		deposit_status, deposit_hold_method,
		services, rental_days, rental_km, rental_price_per_day, rental_price_per_km,
		has_child_seat, child_seat_count, has_gps, has_winter_tires,
		has_roof_rack, has_additional_driver, additional_driver_name,
		insurance_type, insurance_cost, fuel_policy,
		communication_channel, source,
		notes, custom_fields, payments, internal_notes,
		created_by, assigned_manager
	) VALUES (
		:client_name, :client_phone, :client_email, :client_birth_date,
		:client_passport_series, :client_passport_number, :client_passport_issued_by,
		:client_passport_issued_date, :client_passport_registration,
		:client_driver_license_series, :client_driver_license_number,
		:client_driver_license_issued_date, :client_driver_license_issued_by,
		:client_is_foreign,
		:vehicle_id, :vehicle_model, :vehicle_license_plate,
		:start_date, :end_date, :days,
		:pickup_location, :dropoff_location,
		:route_type, :is_international, :planned_km_total,
		:status, :booking_type, :total_price, :paid_amount, :deposit_amount,
		:deposit_status, :deposit_hold_method,
		CAST(:services AS jsonb), :rental_days, :rental_km, :rental_price_per_day, :rental_price_per_km,
		:has_child_seat, :child_seat_count, :has_gps, :has_winter_tires,
		:has_roof_rack, :has_additional_driver, :additional_driver_name,
		:insurance_type, :insurance_cost, :fuel_policy,
		:communication_channel, :source,
		:notes, CAST(:custom_fields AS jsonb), CAST(:payments AS jsonb), :internal_notes,
		:created_by, :assigned_manager
	) RETURNING id
`

// Create inserts a booking and returns the new id. Callers run PurgeStaleDrafts
// and SnapshotVehicle first; this method only writes.
func (r *Repository) Create(ctx context.Context, p *CreateParams) (int, error) {
	rows, err := sqlx.NamedQueryContext(ctx, r.db, insertBooking, p)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, sql.ErrNoRows
	}
	var id int
	if err := rows.Scan(&id); err != nil {
		return 0, err
	}
	return id, rows.Err()
}

func (r *Repository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM bookings WHERE id = $1)`, id)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Update applies a sparse field map. Only recognized columns are emitted; JSON
// columns arrive pre-marshalled as strings and replace the stored value whole.
func (r *Repository) Update(ctx context.Context, id int, fields map[string]interface{}) error {
	qb := sq.Update("bookings").Where(sq.Eq{"id": id}).PlaceholderFormat(sq.Dollar)

	n := 0
	for _, col := range simpleUpdateFields {
		if v, ok := fields[col]; ok {
			qb = qb.Set(col, v)
			n++
		}
	}
	for _, col := range jsonUpdateFields {
		if v, ok := fields[col]; ok {
			qb = qb.Set(col, sq.Expr("CAST(? AS jsonb)", v))
			n++
		}
	}

	if n == 0 {
		return ErrNoFieldsToUpdate
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete cancels a booking by status mutation; the row stays.
func (r *Repository) SoftDelete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $1 WHERE id = $2`,
		status.Cancelled.Display(), id,
	)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreditPaidAmount adds a successful payment to the running paid total.
// Not idempotent: polling the same succeeded payment twice credits twice.
// Known risk carried over from the payment-check contract, see DESIGN.md.
func (r *Repository) CreditPaidAmount(ctx context.Context, id int, amount float64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET paid_amount = paid_amount + $1 WHERE id = $2`,
		amount, id,
	)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendPayment pushes one payment entry onto the payments jsonb array.
func (r *Repository) AppendPayment(ctx context.Context, id int, entryJSON string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET payments = COALESCE(payments, '[]'::jsonb) || $1::jsonb WHERE id = $2`,
		entryJSON, id,
	)
	return err
}

func (r *Repository) SetCalendarEventID(ctx context.Context, id int, eventID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET google_calendar_event_id = $1 WHERE id = $2`,
		eventID, id,
	)
	return err
}

// ListForCalendarSync returns active bookings that have no calendar event yet.
func (r *Repository) ListForCalendarSync(ctx context.Context) ([]Booking, error) {
	query, args, err := sq.Select("*").
		From("bookings").
		Where(sq.Eq{"status": status.ActiveDisplays()}).
		Where("(google_calendar_event_id IS NULL OR google_calendar_event_id = '')").
		Where("EXTRACT(YEAR FROM start_date) BETWEEN 1900 AND 2100").
		Where("EXTRACT(YEAR FROM end_date) BETWEEN 1900 AND 2100").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	bookings := []Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListForExport returns the bookings that belong in the shared ICS feed.
func (r *Repository) ListForExport(ctx context.Context) ([]Booking, error) {
	query, args, err := sq.Select("*").
		From("bookings").
		Where(sq.Eq{"status": status.ExportDisplays()}).
		Where("EXTRACT(YEAR FROM start_date) BETWEEN 1900 AND 2100").
		Where("EXTRACT(YEAR FROM end_date) BETWEEN 1900 AND 2100").
		OrderBy("start_date").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	bookings := []Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, err
	}
	return bookings, nil
}
