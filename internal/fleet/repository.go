package fleet

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("vehicle not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns only vehicles still in rotation, in showroom order.
func (r *Repository) ListActive(ctx context.Context) ([]VehicleSummary, error) {
	query := `
		SELECT id, model, license_plate, status, current_location, next_service_date
		FROM fleet
		WHERE is_active = true
		ORDER BY model, license_plate
	`

	vehicles := []VehicleSummary{}
	if err := r.db.SelectContext(ctx, &vehicles, query); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Vehicle, error) {
	query := `
		SELECT id, branch_id, model, license_plate, vin, year, color, seats, category,
		       status, current_location, insurance_expires, tech_inspection_expires,
		       osago_number, kasko_number, last_service_date, next_service_date,
		       last_service_km, next_service_km, current_km, purchase_price,
		       rental_price_per_day, rental_price_per_km, sublease_cost, notes, is_active,
		       created_at, updated_at
		FROM fleet
		WHERE id = $1
	`

	var v Vehicle
	err := r.db.GetContext(ctx, &v, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

const insertVehicle = `
	INSERT INTO fleet (
		branch_id, model, license_plate, vin, year, color, seats, category,
		status, current_location, insurance_expires, tech_inspection_expires,
		osago_number, kasko_number, last_service_date, next_service_date,
		last_service_km, next_service_km, current_km, purchase_price,
		rental_price_per_day, rental_price_per_km, sublease_cost, notes, is_active, updated_at
	) VALUES (
		:branch_id, :model, :license_plate, :vin, :year, :color, :seats, :category,
		:status, :current_location, :insurance_expires, :tech_inspection_expires,
		:osago_number, :kasko_number, :last_service_date, :next_service_date,
		:last_service_km, :next_service_km, :current_km, :purchase_price,
		:rental_price_per_day, :rental_price_per_km, :sublease_cost, :notes, true, NOW()
	) RETURNING id
`

func (r *Repository) Create(ctx context.Context, p *CreateParams) (int, error) {
	rows, err := sqlx.NamedQueryContext(ctx, r.db, insertVehicle, p)
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

func (r *Repository) Update(ctx context.Context, p *UpdateParams) error {
	query := `
		UPDATE fleet
		SET model = $1, license_plate = $2, status = $3, current_location = $4,
		    current_km = $5, rental_price_per_day = $6, rental_price_per_km = $7,
		    sublease_cost = $8, notes = $9, updated_at = $10
		WHERE id = $11
	`

	result, err := r.db.ExecContext(ctx, query,
		p.Model, p.LicensePlate, p.Status, p.CurrentLocation,
		p.CurrentKm, p.RentalPricePerDay, p.RentalPricePerKm,
		p.SubleaseCost, p.Notes, time.Now(), p.ID,
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

// Deactivate flips the is_active soft flag without touching the row.
func (r *Repository) Deactivate(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE fleet SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
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

// Delete is the admin hard-delete path.
func (r *Repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM fleet WHERE id = $1`, id)
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

// Clear wipes the whole fleet and reports how many rows went.
func (r *Repository) Clear(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM fleet`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
