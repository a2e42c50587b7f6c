// Package booking implements the booking lifecycle: creation by a
// customer, accept/reject by the owning bartender, cancel by the owning
// customer, and the list/detail queries both parties use. The engine is
// the only code that mutates a booking's status. The acting party is an
// explicit auth.Actor parameter on every operation; the engine never
// reads identity from ambient state.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bestbartenders/bartender-booking/internal/auth"
	"github.com/bestbartenders/bartender-booking/internal/mailer"
	"github.com/bestbartenders/bartender-booking/internal/metrics"
	"github.com/bestbartenders/bartender-booking/internal/model"
	"github.com/bestbartenders/bartender-booking/internal/queue"
	"github.com/bestbartenders/bartender-booking/internal/repository"
)

// ErrUnauthorized is returned when an operation requires an
// authenticated actor of a specific role and none is present. Handlers
// should translate this into an HTTP 401 response.
var ErrUnauthorized = errors.New("unauthorized")

// Ownership and state guard failures reuse the repository sentinels so
// handlers have a single set of errors to translate.
var (
	ErrForbidden    = repository.ErrForbidden
	ErrInvalidState = repository.ErrInvalidState
	ErrNotFound     = repository.ErrNotFound
)

// Store is the persistence surface the engine needs for bookings. The
// transition methods scope their UPDATE by id, owner and (for bartender
// transitions) expected current status in a single predicate, so the
// read and the ownership check happen together.
type Store interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (model.Booking, error)
	GetAcceptedForBartender(ctx context.Context, id, bartenderID string) (model.Booking, error)
	TransitionForBartender(ctx context.Context, id, bartenderID string, from, to model.BookingStatus) (bool, error)
	TransitionForCustomer(ctx context.Context, id, customerID string, to model.BookingStatus) (bool, error)
	ListByBartender(ctx context.Context, bartenderID string) ([]model.Booking, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]model.Booking, error)
}

// BartenderDirectory resolves bartender references.
type BartenderDirectory interface {
	GetByID(ctx context.Context, id string) (model.Bartender, error)
}

// CustomerDirectory resolves customer accounts.
type CustomerDirectory interface {
	GetByID(ctx context.Context, id string) (model.Customer, error)
}

// Publisher emits a domain event after a successful accept. A nil
// Publisher disables event publishing.
type Publisher func(ctx context.Context, ev queue.BookingAcceptedEvent) error

// Engine enforces the booking state machine and its ownership guards
// and triggers the side effects of a transition. Notification and
// publish failures are logged and never propagated: a booked state
// change is already durable by the time they run.
type Engine struct {
	store      Store
	bartenders BartenderDirectory
	customers  CustomerDirectory
	mail       mailer.Sender
	publish    Publisher
	log        zerolog.Logger
}

// NewEngine constructs an Engine. store, bartenders, customers and mail
// must be non-nil; publish may be nil.
func NewEngine(store Store, bartenders BartenderDirectory, customers CustomerDirectory, mail mailer.Sender, publish Publisher, log zerolog.Logger) *Engine {
	if store == nil || bartenders == nil || customers == nil || mail == nil {
		panic("nil dependency passed to NewEngine")
	}
	return &Engine{
		store:      store,
		bartenders: bartenders,
		customers:  customers,
		mail:       mail,
		publish:    publish,
		log:        log,
	}
}

// CreateRequest carries the booking form fields. The contact fields are
// stored as a snapshot on the booking, independent of the customer record.
type CreateRequest struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	BartenderID   string
	EventType     string
	EventDate     string
	EventTime     string
	Location      string
}

// Create opens a new Pending booking on behalf of an authenticated
// customer. The bartender reference must resolve to an approved
// bartender; unapproved profiles are not bookable and are reported as
// ErrNotFound, the same as a missing id, so the response does not leak
// which unapproved accounts exist.
func (e *Engine) Create(ctx context.Context, actor auth.Actor, req CreateRequest) (model.Booking, error) {
	if !actor.IsCustomer() {
		return model.Booking{}, ErrUnauthorized
	}
	bt, err := e.bartenders.GetByID(ctx, req.BartenderID)
	if err != nil {
		return model.Booking{}, err
	}
	if !bt.Approved {
		return model.Booking{}, ErrNotFound
	}
	b := model.Booking{
		CustomerID:    actor.ID(),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		BartenderID:   bt.ID,
		EventType:     req.EventType,
		EventDate:     req.EventDate,
		EventTime:     req.EventTime,
		Location:      req.Location,
	}
	if err := e.store.Create(ctx, &b); err != nil {
		return model.Booking{}, err
	}
	metrics.IncBookingCreated()
	e.log.Info().Str("booking_id", b.ID).Str("bartender_id", b.BartenderID).Msg("booking created")
	return b, nil
}

// Accept moves a Pending booking to Accepted on behalf of the bartender
// it is addressed to. On success it sends two emails, an "accepted"
// summary to the customer and the full customer contact details to the
// bartender, and publishes a booking.accepted event. All three side
// effects are non-fatal.
func (e *Engine) Accept(ctx context.Context, actor auth.Actor, id string) (model.Booking, error) {
	b, err := e.guardBartenderTransition(ctx, actor, id, model.StatusAccepted)
	if err != nil {
		return model.Booking{}, err
	}
	changed, err := e.store.TransitionForBartender(ctx, id, actor.ID(), b.Status, model.StatusAccepted)
	if err != nil {
		return model.Booking{}, err
	}
	if !changed {
		// Lost a race with another transition on the same booking.
		return model.Booking{}, ErrInvalidState
	}
	b.Status = model.StatusAccepted
	metrics.IncTransition(string(model.StatusAccepted))
	e.log.Info().Str("booking_id", b.ID).Str("bartender_id", actor.ID()).Msg("booking accepted")

	e.notifyAccepted(ctx, b)
	if e.publish != nil {
		ev := queue.BookingAcceptedEvent{
			BookingID:     b.ID,
			BartenderID:   b.BartenderID,
			CustomerName:  b.CustomerName,
			CustomerEmail: b.CustomerEmail,
			EventType:     b.EventType,
			EventDate:     b.EventDate,
			EventTime:     b.EventTime,
			Location:      b.Location,
			AcceptedAt:    time.Now().UTC().Format(time.RFC3339),
		}
		if err := e.publish(ctx, ev); err != nil {
			e.log.Error().Err(err).Str("booking_id", b.ID).Msg("publish booking.accepted failed")
		}
	}
	return b, nil
}

// Reject moves a Pending booking to Rejected on behalf of the bartender
// it is addressed to. Reject sends no notification; the original
// product only mailed on accept and that asymmetry is kept.
func (e *Engine) Reject(ctx context.Context, actor auth.Actor, id string) (model.Booking, error) {
	b, err := e.guardBartenderTransition(ctx, actor, id, model.StatusRejected)
	if err != nil {
		return model.Booking{}, err
	}
	changed, err := e.store.TransitionForBartender(ctx, id, actor.ID(), b.Status, model.StatusRejected)
	if err != nil {
		return model.Booking{}, err
	}
	if !changed {
		return model.Booking{}, ErrInvalidState
	}
	b.Status = model.StatusRejected
	metrics.IncTransition(string(model.StatusRejected))
	e.log.Info().Str("booking_id", b.ID).Str("bartender_id", actor.ID()).Msg("booking rejected")
	return b, nil
}

// guardBartenderTransition loads the booking and applies the guards
// shared by accept and reject: authenticated bartender actor, ownership
// of the booking, and a current status with a valid edge to target.
func (e *Engine) guardBartenderTransition(ctx context.Context, actor auth.Actor, id string, target model.BookingStatus) (model.Booking, error) {
	if !actor.IsBartender() {
		return model.Booking{}, ErrUnauthorized
	}
	b, err := e.store.GetByID(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	if b.BartenderID != actor.ID() {
		return model.Booking{}, ErrForbidden
	}
	if !b.Status.CanTransitionTo(target) {
		return model.Booking{}, ErrInvalidState
	}
	return b, nil
}

// Cancel moves a booking to Cancelled on behalf of the customer who
// created it. Cancel has no source-status guard: cancelling a booking
// the bartender already rejected succeeds, matching the original
// product. Cancelling an already-cancelled booking is a no-op success.
func (e *Engine) Cancel(ctx context.Context, actor auth.Actor, id string) (model.Booking, error) {
	if !actor.IsCustomer() {
		return model.Booking{}, ErrUnauthorized
	}
	b, err := e.store.GetByID(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	if b.CustomerID != actor.ID() {
		return model.Booking{}, ErrForbidden
	}
	if b.Status == model.StatusCancelled {
		return b, nil
	}
	if _, err := e.store.TransitionForCustomer(ctx, id, actor.ID(), model.StatusCancelled); err != nil {
		return model.Booking{}, err
	}
	b.Status = model.StatusCancelled
	metrics.IncTransition(string(model.StatusCancelled))
	e.log.Info().Str("booking_id", b.ID).Str("customer_id", actor.ID()).Msg("booking cancelled")
	return b, nil
}

// ListForBartender returns the acting bartender's bookings, newest first.
func (e *Engine) ListForBartender(ctx context.Context, actor auth.Actor) ([]model.Booking, error) {
	if !actor.IsBartender() {
		return nil, ErrUnauthorized
	}
	return e.store.ListByBartender(ctx, actor.ID())
}

// ListForCustomer returns the bookings whose contact email matches the
// acting customer's account email, newest first.
func (e *Engine) ListForCustomer(ctx context.Context, actor auth.Actor) ([]model.Booking, error) {
	if !actor.IsCustomer() {
		return nil, ErrUnauthorized
	}
	cust, err := e.customers.GetByID(ctx, actor.ID())
	if err != nil {
		return nil, err
	}
	return e.store.ListByCustomerEmail(ctx, cust.Email)
}

// Get returns the full booking record to either of its owners. Any
// other actor receives ErrForbidden; a missing id is a distinct
// ErrNotFound rather than a generic server error.
func (e *Engine) Get(ctx context.Context, actor auth.Actor, id string) (model.Booking, error) {
	if actor.IsAnonymous() {
		return model.Booking{}, ErrUnauthorized
	}
	b, err := e.store.GetByID(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	switch {
	case actor.IsBartender() && b.BartenderID == actor.ID():
		return b, nil
	case actor.IsCustomer() && b.CustomerID == actor.ID():
		return b, nil
	}
	return model.Booking{}, ErrForbidden
}

// GetAccepted returns a booking to its bartender only when its status
// is Accepted. The id, ownership and status filters form one query
// predicate, so a wrong owner and a non-accepted status are both
// surfaced as ErrNotFound.
func (e *Engine) GetAccepted(ctx context.Context, actor auth.Actor, id string) (model.Booking, error) {
	if !actor.IsBartender() {
		return model.Booking{}, ErrUnauthorized
	}
	return e.store.GetAcceptedForBartender(ctx, id, actor.ID())
}

// notifyAccepted sends the two accept emails. Failures are logged and
// swallowed; the state change is already persisted.
func (e *Engine) notifyAccepted(ctx context.Context, b model.Booking) {
	subject, body := customerAcceptedEmail(b)
	e.send(ctx, b.CustomerEmail, subject, body, b.ID)

	bt, err := e.bartenders.GetByID(ctx, b.BartenderID)
	if err != nil {
		e.log.Error().Err(err).Str("booking_id", b.ID).Msg("load bartender for notification failed")
		return
	}
	subject, body = bartenderAcceptedEmail(b)
	e.send(ctx, bt.Email, subject, body, b.ID)
}

func (e *Engine) send(ctx context.Context, to, subject, body, bookingID string) {
	if err := e.mail.Send(ctx, to, subject, body); err != nil {
		metrics.IncEmail("error")
		e.log.Error().Err(err).Str("to", to).Str("booking_id", bookingID).Msg("email send failed")
		return
	}
	metrics.IncEmail("ok")
}
