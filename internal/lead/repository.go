package lead

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const leadColumns = `
	id, lead_id, client_name, phone, email, source, status,
	vehicle_type, rental_period, notes, created_at, updated_at
`

func (r *Repository) List(ctx context.Context) ([]Lead, error) {
	leads := []Lead{}
	err := r.db.SelectContext(ctx, &leads,
		`SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Lead, error) {
	var l Lead
	err := r.db.GetContext(ctx, &l,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repository) Create(ctx context.Context, p *CreateParams) (*Lead, error) {
	var l Lead
	err := r.db.GetContext(ctx, &l, `
		INSERT INTO leads (lead_id, client_name, phone, email, source, status,
		                   vehicle_type, rental_period, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+leadColumns,
		p.LeadID, p.ClientName, p.Phone, p.Email, p.Source, p.Status,
		p.VehicleType, p.RentalPeriod, p.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repository) Update(ctx context.Context, p *UpdateParams) (*Lead, error) {
	var l Lead
	err := r.db.GetContext(ctx, &l, `
		UPDATE leads
		SET client_name = $1, phone = $2, email = $3, source = $4, status = $5,
		    vehicle_type = $6, rental_period = $7, notes = $8,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $9
		RETURNING `+leadColumns,
		p.ClientName, p.Phone, p.Email, p.Source, p.Status,
		p.VehicleType, p.RentalPeriod, p.Notes, p.ID,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Touch is the delete path: the row is kept, only updated_at moves.
// Succeeds even when the id matches nothing.
func (r *Repository) Touch(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE leads SET updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}
