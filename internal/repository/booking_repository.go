package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/bestbartenders/bartender-booking/internal/model"
)

// BookingRepo provides persistence for bookings. Bookings are keyed by
// a generated uuid and are never deleted; lifecycle operations only
// move the status column along the state machine. All timestamps are
// stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = `id, customer_id, customer_name, customer_email, customer_phone,
	bartender_id, event_type, event_date, event_time, location, status, created_at, updated_at`

// Create inserts a new Pending booking, assigning its id and timestamps
// on the provided record.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	b.ID = uuid.NewString()
	b.Status = model.StatusPending
	now := time.Now().UTC().Truncate(time.Second)
	b.CreatedAt = now
	b.UpdatedAt = now
	const q = `INSERT INTO bookings (` + bookingCols + `) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, q,
		b.ID, b.CustomerID, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.BartenderID, b.EventType, b.EventDate, b.EventTime, b.Location,
		string(b.Status), b.CreatedAt, b.UpdatedAt)
	return err
}

func scanBooking(row *sql.Row) (model.Booking, error) {
	var b model.Booking
	var status string
	err := row.Scan(&b.ID, &b.CustomerID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.BartenderID, &b.EventType, &b.EventDate, &b.EventTime, &b.Location,
		&status, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrNotFound
	}
	if err != nil {
		return model.Booking{}, err
	}
	b.Status = model.BookingStatus(status)
	return b, nil
}

// GetByID fetches a booking by id. Returns ErrNotFound when no row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id string) (model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id = ? LIMIT 1`
	return scanBooking(r.db.QueryRowContext(ctx, q, id))
}

// GetAcceptedForBartender fetches a booking by id scoped to the owning
// bartender and to status Accepted. Returns ErrNotFound when no row
// matches the full predicate.
func (r *BookingRepo) GetAcceptedForBartender(ctx context.Context, id, bartenderID string) (model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id = ? AND bartender_id = ? AND status = ? LIMIT 1`
	return scanBooking(r.db.QueryRowContext(ctx, q, id, bartenderID, string(model.StatusAccepted)))
}

// TransitionForBartender performs the conditional read-modify-write for
// accept and reject. The predicate scopes the update by id, owning
// bartender and expected current status in a single statement, closing
// the window for a different-owner overwrite or a double transition.
// It reports whether a row changed.
func (r *BookingRepo) TransitionForBartender(ctx context.Context, id, bartenderID string, from, to model.BookingStatus) (bool, error) {
	const q = `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND bartender_id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, q, string(to), time.Now().UTC(), id, bartenderID, string(from))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// TransitionForCustomer moves a booking to the given status scoped by
// id and owning customer. Cancel carries no source-status guard, so the
// predicate only excludes rows already in the target status to keep the
// affected-rows count meaningful.
func (r *BookingRepo) TransitionForCustomer(ctx context.Context, id, customerID string, to model.BookingStatus) (bool, error) {
	const q = `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ? AND customer_id = ? AND status <> ?`
	res, err := r.db.ExecContext(ctx, q, string(to), time.Now().UTC(), id, customerID, string(to))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *BookingRepo) list(ctx context.Context, q string, arg any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		var status string
		if err := rows.Scan(&b.ID, &b.CustomerID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
			&b.BartenderID, &b.EventType, &b.EventDate, &b.EventTime, &b.Location,
			&status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		b.Status = model.BookingStatus(status)
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListByBartender returns all bookings addressed to a bartender, newest
// first. No pagination, matching the product behavior.
func (r *BookingRepo) ListByBartender(ctx context.Context, bartenderID string) ([]model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE bartender_id = ? ORDER BY created_at DESC`
	return r.list(ctx, q, bartenderID)
}

// ListByCustomerEmail returns all bookings whose contact snapshot email
// matches, newest first. The email key mirrors the original product,
// where the customer dashboard queried by the address entered on the
// booking form.
func (r *BookingRepo) ListByCustomerEmail(ctx context.Context, email string) ([]model.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE customer_email = ? ORDER BY created_at DESC`
	return r.list(ctx, q, email)
}
