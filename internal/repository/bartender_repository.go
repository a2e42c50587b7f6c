package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bestbartenders/bartender-booking/internal/model"
)

// BartenderRepo provides persistence for bartender profiles.
type BartenderRepo struct {
	db *sql.DB
}

// NewBartenderRepo returns a BartenderRepo bound to the given database.
func NewBartenderRepo(db *sql.DB) *BartenderRepo { return &BartenderRepo{db: db} }

const bartenderCols = `id, firstname, lastname, email, phone, password_hash, experience, skills,
	rate, street, apt, city, state, zip, license_number, profile_photo_url, license_file_url,
	government_id_url, approved, created_at`

// Create inserts a new bartender profile with approved = false and
// assigns its id. Accounts stay unusable until an administrator flips
// the approved flag.
func (r *BartenderRepo) Create(ctx context.Context, b *model.Bartender) error {
	b.ID = uuid.NewString()
	b.Email = strings.ToLower(strings.TrimSpace(b.Email))
	b.Approved = false
	b.CreatedAt = time.Now().UTC().Truncate(time.Second)
	const q = `INSERT INTO bartenders (` + bartenderCols + `) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,0,?)`
	_, err := r.db.ExecContext(ctx, q,
		b.ID, b.FirstName, b.LastName, b.Email, b.Phone, b.PasswordHash, b.Experience, b.Skills,
		b.Rate, b.Street, b.Apt, b.City, b.State, b.Zip, b.LicenseNumber, b.ProfilePhotoURL,
		b.LicenseFileURL, b.GovernmentIDURL, b.CreatedAt)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrEmailExists
	}
	return err
}

func scanBartender(row *sql.Row) (model.Bartender, error) {
	var b model.Bartender
	err := row.Scan(&b.ID, &b.FirstName, &b.LastName, &b.Email, &b.Phone, &b.PasswordHash,
		&b.Experience, &b.Skills, &b.Rate, &b.Street, &b.Apt, &b.City, &b.State, &b.Zip,
		&b.LicenseNumber, &b.ProfilePhotoURL, &b.LicenseFileURL, &b.GovernmentIDURL,
		&b.Approved, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Bartender{}, ErrNotFound
	}
	return b, err
}

// GetByEmail fetches a bartender by normalized email.
func (r *BartenderRepo) GetByEmail(ctx context.Context, email string) (model.Bartender, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT ` + bartenderCols + ` FROM bartenders WHERE email = ? LIMIT 1`
	return scanBartender(r.db.QueryRowContext(ctx, q, email))
}

// GetByID fetches a bartender by id.
func (r *BartenderRepo) GetByID(ctx context.Context, id string) (model.Bartender, error) {
	const q = `SELECT ` + bartenderCols + ` FROM bartenders WHERE id = ? LIMIT 1`
	return scanBartender(r.db.QueryRowContext(ctx, q, id))
}

// ListApproved returns all approved bartenders for the public
// directory, newest first.
func (r *BartenderRepo) ListApproved(ctx context.Context) ([]model.Bartender, error) {
	const q = `SELECT ` + bartenderCols + ` FROM bartenders WHERE approved = 1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Bartender, 0)
	for rows.Next() {
		var b model.Bartender
		if err := rows.Scan(&b.ID, &b.FirstName, &b.LastName, &b.Email, &b.Phone, &b.PasswordHash,
			&b.Experience, &b.Skills, &b.Rate, &b.Street, &b.Apt, &b.City, &b.State, &b.Zip,
			&b.LicenseNumber, &b.ProfilePhotoURL, &b.LicenseFileURL, &b.GovernmentIDURL,
			&b.Approved, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
