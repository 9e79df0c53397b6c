package partner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("partner not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const partnerColumns = `
	id, partner_id, type, company_name, contact_person, phone, email,
	telegram_username, telegram_link,
	legal_name, inn, kpp, legal_address,
	bank_name, bank_account, correspondent_account, bik,
	passport_series, passport_number, passport_issued_by, passport_issued_date,
	notes, created_at, updated_at
`

// NextPartnerID builds the next display id in the P-001 series by reading the
// current maximum. The read and the insert are not serialized, so two
// concurrent creates can mint the same id; last write errors on the unique
// index and the caller retries by hand. Low write volume makes this tolerable.
func (r *Repository) NextPartnerID(ctx context.Context) (string, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COALESCE(MAX(CAST(SUBSTRING(partner_id FROM 3) AS INTEGER)), 0) + 1
		FROM partners
		WHERE partner_id LIKE 'P-%'
	`)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("P-%03d", n), nil
}

func (r *Repository) List(ctx context.Context) ([]Partner, error) {
	partners := []Partner{}
	err := r.db.SelectContext(ctx, &partners,
		`SELECT `+partnerColumns+` FROM partners ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}

	for i := range partners {
		if err := r.hydrate(ctx, &partners[i]); err != nil {
			return nil, err
		}
	}
	return partners, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Partner, error) {
	var p Partner
	err := r.db.GetContext(ctx, &p,
		`SELECT `+partnerColumns+` FROM partners WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.hydrate(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// hydrate attaches the vehicle and service child rows.
func (r *Repository) hydrate(ctx context.Context, p *Partner) error {
	p.Vehicles = []PartnerVehicle{}
	err := r.db.SelectContext(ctx, &p.Vehicles, `
		SELECT id, partner_id, model, license_plate, daily_rate, notes
		FROM partner_vehicles
		WHERE partner_id = $1
		ORDER BY id
	`, p.ID)
	if err != nil {
		return err
	}

	p.Services = []PartnerService{}
	return r.db.SelectContext(ctx, &p.Services, `
		SELECT id, partner_id, name, price, unit, notes
		FROM partner_services
		WHERE partner_id = $1
		ORDER BY id
	`, p.ID)
}

// Create inserts the partner and its child rows in one transaction.
func (r *Repository) Create(ctx context.Context, partnerID string, p *CreateParams) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO partners (
			partner_id, type, company_name, contact_person, phone, email,
			telegram_username, telegram_link,
			legal_name, inn, kpp, legal_address,
			bank_name, bank_account, correspondent_account, bik,
			passport_series, passport_number, passport_issued_by, passport_issued_date,
			notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21
		) RETURNING id
	`,
		partnerID, p.Type, p.CompanyName, p.ContactPerson, p.Phone, p.Email,
		p.TelegramUsername, p.TelegramLink,
		p.LegalName, p.Inn, p.Kpp, p.LegalAddress,
		p.BankName, p.BankAccount, p.CorrespondentAccount, p.Bik,
		p.PassportSeries, p.PassportNumber, p.PassportIssuedBy, p.PassportIssuedDate,
		p.Notes,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	for _, v := range p.Vehicles {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO partner_vehicles (partner_id, model, license_plate, daily_rate, notes)
			VALUES ($1, $2, $3, $4, $5)
		`, id, v.Model, v.LicensePlate, v.DailyRate, v.Notes)
		if err != nil {
			return 0, err
		}
	}

	for _, s := range p.Services {
		unit := s.Unit
		if unit == "" {
			unit = "шт"
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO partner_services (partner_id, name, price, unit, notes)
			VALUES ($1, $2, $3, $4, $5)
		`, id, s.Name, s.Price, unit, s.Notes)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repository) Update(ctx context.Context, p *UpdateParams) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE partners
		SET type = $1, company_name = $2, contact_person = $3, phone = $4, email = $5,
		    telegram_username = $6, telegram_link = $7,
		    legal_name = $8, inn = $9, kpp = $10, legal_address = $11,
		    bank_name = $12, bank_account = $13, correspondent_account = $14, bik = $15,
		    passport_series = $16, passport_number = $17, passport_issued_by = $18,
		    passport_issued_date = $19, notes = $20, updated_at = CURRENT_TIMESTAMP
		WHERE id = $21
	`,
		p.Type, p.CompanyName, p.ContactPerson, p.Phone, p.Email,
		p.TelegramUsername, p.TelegramLink,
		p.LegalName, p.Inn, p.Kpp, p.LegalAddress,
		p.BankName, p.BankAccount, p.CorrespondentAccount, p.Bik,
		p.PassportSeries, p.PassportNumber, p.PassportIssuedBy,
		p.PassportIssuedDate, p.Notes, p.ID,
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

// Delete removes the partner; child rows go via ON DELETE CASCADE.
func (r *Repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM partners WHERE id = $1`, id)
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
