package finance

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("finance operation not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const operationColumns = `
	id, operation_id, booking_id, date, client_name, type, category, method,
	amount, status, document_url, document_name, notes, created_at, updated_at
`

// List returns operations newest-first, optionally narrowed to one category.
func (r *Repository) List(ctx context.Context, category string) ([]Operation, error) {
	ops := []Operation{}
	var err error
	if category != "" {
		err = r.db.SelectContext(ctx, &ops,
			`SELECT `+operationColumns+` FROM finance_operations WHERE category = $1 ORDER BY date DESC`,
			category)
	} else {
		err = r.db.SelectContext(ctx, &ops,
			`SELECT `+operationColumns+` FROM finance_operations ORDER BY date DESC`)
	}
	if err != nil {
		return nil, err
	}
	return ops, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Operation, error) {
	var op Operation
	err := r.db.GetContext(ctx, &op,
		`SELECT `+operationColumns+` FROM finance_operations WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *Repository) Create(ctx context.Context, p *CreateParams) (*Operation, error) {
	var op Operation
	err := r.db.GetContext(ctx, &op, `
		INSERT INTO finance_operations (
			operation_id, booking_id, date, client_name, type, category,
			method, amount, status, document_url, document_name, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+operationColumns,
		p.OperationID, p.BookingID, p.Date, p.ClientName, p.Type, p.Category,
		p.Method, p.Amount, p.Status, p.DocumentURL, p.DocumentName, p.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *Repository) Update(ctx context.Context, p *UpdateParams) (*Operation, error) {
	var op Operation
	err := r.db.GetContext(ctx, &op, `
		UPDATE finance_operations
		SET client_name = $1, type = $2, method = $3, amount = $4, status = $5,
		    notes = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING `+operationColumns,
		p.ClientName, p.Type, p.Method, p.Amount, p.Status, p.Notes, p.ID,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &op, nil
}

// Touch is the delete path: the row stays, only updated_at moves.
func (r *Repository) Touch(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE finance_operations SET updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}
