package handover

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("handover not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const selectWithVehicle = `
	SELECT vh.*, f.model AS vehicle_model, f.license_plate
	FROM vehicle_handovers vh
	LEFT JOIN fleet f ON vh.vehicle_id = f.id
`

// List returns the full handover history, newest event first.
func (r *Repository) List(ctx context.Context) ([]HandoverWithVehicle, error) {
	handovers := []HandoverWithVehicle{}
	err := r.db.SelectContext(ctx, &handovers,
		selectWithVehicle+` ORDER BY vh.handover_date DESC, vh.handover_time DESC`)
	if err != nil {
		return nil, err
	}
	return handovers, nil
}

// ListByVehicle returns one vehicle's history, newest event first.
func (r *Repository) ListByVehicle(ctx context.Context, vehicleID int) ([]HandoverWithVehicle, error) {
	handovers := []HandoverWithVehicle{}
	err := r.db.SelectContext(ctx, &handovers,
		selectWithVehicle+` WHERE vh.vehicle_id = $1 ORDER BY vh.handover_date DESC, vh.handover_time DESC`,
		vehicleID)
	if err != nil {
		return nil, err
	}
	return handovers, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Handover, error) {
	var h Handover
	err := r.db.GetContext(ctx, &h,
		`SELECT * FROM vehicle_handovers WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

const insertHandover = `
	INSERT INTO vehicle_handovers (
		handover_id, vehicle_id, booking_id, type, handover_date, handover_time,
		odometer, fuel_level, transponder_needed, transponder_number,
		deposit_amount, rental_amount, rental_payment_method, rental_receipt_url,
		damages, notes, custom_fields, created_by
	) VALUES (
		:handover_id, :vehicle_id, :booking_id, :type, :handover_date, :handover_time,
		:odometer, :fuel_level, :transponder_needed, :transponder_number,
		:deposit_amount, :rental_amount, :rental_payment_method, :rental_receipt_url,
		:damages, :notes, CAST(:custom_fields AS jsonb), :created_by
	) RETURNING id
`

func (r *Repository) Create(ctx context.Context, p *CreateParams) (int, error) {
	rows, err := sqlx.NamedQueryContext(ctx, r.db, insertHandover, p)
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
