package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bestbartenders/bartender-booking/internal/model"
)

// ErrEmailExists is returned when a registration reuses an email that
// already has an account.
var ErrEmailExists = errors.New("email already exists")

// CustomerRepo provides persistence for customer accounts.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo returns a CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerCols = `id, firstname, lastname, address, email, phone, password_hash,
	email_verified, verify_token_hash, verify_expires_at, created_at`

// Create inserts a new unverified customer and assigns its id. The
// email is normalized to lower case; a duplicate is reported as
// ErrEmailExists via the MySQL 1062 duplicate-key error.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	c.ID = uuid.NewString()
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.CreatedAt = time.Now().UTC().Truncate(time.Second)
	const q = `INSERT INTO customers (id, firstname, lastname, address, email, phone, password_hash, email_verified, created_at)
		VALUES (?,?,?,?,?,?,?,0,?)`
	_, err := r.db.ExecContext(ctx, q, c.ID, c.FirstName, c.LastName, c.Address, c.Email, c.Phone, c.PasswordHash, c.CreatedAt)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

func scanCustomer(row *sql.Row) (model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Address, &c.Email, &c.Phone,
		&c.PasswordHash, &c.EmailVerified, &c.VerifyTokenHash, &c.VerifyExpiresAt, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Customer{}, ErrNotFound
	}
	return c, err
}

// GetByEmail fetches a customer by normalized email.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (model.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT ` + customerCols + ` FROM customers WHERE email = ? LIMIT 1`
	return scanCustomer(r.db.QueryRowContext(ctx, q, email))
}

// GetByID fetches a customer by id.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (model.Customer, error) {
	const q = `SELECT ` + customerCols + ` FROM customers WHERE id = ? LIMIT 1`
	return scanCustomer(r.db.QueryRowContext(ctx, q, id))
}

// SetVerifyToken records the hash and expiry of the verification token
// mailed to a customer. Re-registering attempts replace any previous
// outstanding token.
func (r *CustomerRepo) SetVerifyToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error {
	const q = `UPDATE customers SET verify_token_hash = ?, verify_expires_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, tokenHash, expiresAt.UTC(), id)
	return err
}

// Verify flips email_verified for the customer if the presented token
// hash matches the outstanding one and has not expired. The predicate
// checks id, hash and expiry in one statement; zero affected rows means
// the link was stale or already used.
func (r *CustomerRepo) Verify(ctx context.Context, id, tokenHash string) (bool, error) {
	const q = `UPDATE customers SET email_verified = 1, verify_token_hash = NULL, verify_expires_at = NULL
		WHERE id = ? AND verify_token_hash = ? AND verify_expires_at > ? AND email_verified = 0`
	res, err := r.db.ExecContext(ctx, q, id, tokenHash, time.Now().UTC())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
