package client

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("client not found")

const clientColumns = `
	id, name, phone, email, company, telegram, whatsapp,
	city, balance, total_spent, orders_count, rating,
	source, is_blacklist, notes, birth_date, created_at, updated_at
`

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context) ([]Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC`

	clients := []Client{}
	if err := r.db.SelectContext(ctx, &clients, query); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	var cl Client
	err := r.db.GetContext(ctx, &cl, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

func (r *Repository) Create(ctx context.Context, p *CreateParams) (*Client, error) {
	query := `
		INSERT INTO clients (name, phone, email, company, telegram, whatsapp, city, notes, source, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + clientColumns

	var cl Client
	err := r.db.GetContext(ctx, &cl, query,
		p.Name, p.Phone, p.Email, p.Company, p.Telegram,
		p.Whatsapp, p.City, p.Notes, p.Source, p.BirthDate,
	)
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

func (r *Repository) Update(ctx context.Context, p *UpdateParams) (*Client, error) {
	query := `
		UPDATE clients
		SET name = $1, phone = $2, email = $3, company = $4,
		    telegram = $5, whatsapp = $6, city = $7, notes = $8,
		    is_blacklist = $9, birth_date = $10, updated_at = CURRENT_TIMESTAMP
		WHERE id = $11
		RETURNING ` + clientColumns

	var cl Client
	err := r.db.GetContext(ctx, &cl, query,
		p.Name, p.Phone, p.Email, p.Company, p.Telegram,
		p.Whatsapp, p.City, p.Notes, p.IsBlacklist, p.BirthDate, p.ID,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

// Delete removes the client row entirely (the one hard-delete entity besides
// partners and the fleet admin path).
func (r *Repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
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
