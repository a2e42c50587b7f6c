package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bestbartenders/bartender-booking/internal/auth"
	"github.com/bestbartenders/bartender-booking/internal/model"
	"github.com/bestbartenders/bartender-booking/internal/queue"
)

// fakeStore mimics the repository's predicate semantics in memory: the
// transition methods only change a row when id, owner and (for
// bartender transitions) expected status all match.
type fakeStore struct {
	bookings map[string]model.Booking
	seq      int
	failNext error
}

func newFakeStore() *fakeStore {
	return &fakeStore{bookings: make(map[string]model.Booking)}
}

func (s *fakeStore) Create(ctx context.Context, b *model.Booking) error {
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	s.seq++
	b.ID = fmt.Sprintf("bk-%d", s.seq)
	b.Status = model.StatusPending
	b.CreatedAt = time.Now().UTC().Add(time.Duration(s.seq) * time.Second)
	b.UpdatedAt = b.CreatedAt
	s.bookings[b.ID] = *b
	return nil
}

func (s *fakeStore) GetByID(ctx context.Context, id string) (model.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return model.Booking{}, ErrNotFound
	}
	return b, nil
}

func (s *fakeStore) GetAcceptedForBartender(ctx context.Context, id, bartenderID string) (model.Booking, error) {
	b, ok := s.bookings[id]
	if !ok || b.BartenderID != bartenderID || b.Status != model.StatusAccepted {
		return model.Booking{}, ErrNotFound
	}
	return b, nil
}

func (s *fakeStore) TransitionForBartender(ctx context.Context, id, bartenderID string, from, to model.BookingStatus) (bool, error) {
	b, ok := s.bookings[id]
	if !ok || b.BartenderID != bartenderID || b.Status != from {
		return false, nil
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	s.bookings[id] = b
	return true, nil
}

func (s *fakeStore) TransitionForCustomer(ctx context.Context, id, customerID string, to model.BookingStatus) (bool, error) {
	b, ok := s.bookings[id]
	if !ok || b.CustomerID != customerID || b.Status == to {
		return false, nil
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	s.bookings[id] = b
	return true, nil
}

func (s *fakeStore) ListByBartender(ctx context.Context, bartenderID string) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range s.bookings {
		if b.BartenderID == bartenderID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeStore) ListByCustomerEmail(ctx context.Context, email string) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range s.bookings {
		if b.CustomerEmail == email {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeBartenders struct {
	items map[string]model.Bartender
}

func (f *fakeBartenders) GetByID(ctx context.Context, id string) (model.Bartender, error) {
	b, ok := f.items[id]
	if !ok {
		return model.Bartender{}, ErrNotFound
	}
	return b, nil
}

type fakeCustomers struct {
	items map[string]model.Customer
}

func (f *fakeCustomers) GetByID(ctx context.Context, id string) (model.Customer, error) {
	c, ok := f.items[id]
	if !ok {
		return model.Customer{}, ErrNotFound
	}
	return c, nil
}

type sentMail struct {
	to, subject, body string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

type testEnv struct {
	engine     *Engine
	store      *fakeStore
	bartenders *fakeBartenders
	customers  *fakeCustomers
	sender     *fakeSender
	published  []queue.BookingAcceptedEvent
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		store: newFakeStore(),
		bartenders: &fakeBartenders{items: map[string]model.Bartender{
			"b1": {ID: "b1", FirstName: "Maya", Email: "maya@bar.example", Approved: true},
			"b2": {ID: "b2", FirstName: "Leo", Email: "leo@bar.example", Approved: true},
			"b3": {ID: "b3", FirstName: "New", Email: "new@bar.example", Approved: false},
		}},
		customers: &fakeCustomers{items: map[string]model.Customer{
			"c1": {ID: "c1", FirstName: "Ana", Email: "ana@example.com", EmailVerified: true},
			"c2": {ID: "c2", FirstName: "Bob", Email: "bob@example.com", EmailVerified: true},
		}},
		sender: &fakeSender{},
	}
	publish := func(ctx context.Context, ev queue.BookingAcceptedEvent) error {
		env.published = append(env.published, ev)
		return nil
	}
	env.engine = NewEngine(env.store, env.bartenders, env.customers, env.sender, publish, zerolog.Nop())
	return env
}

func (env *testEnv) createBooking(t *testing.T, customerID, bartenderID string) model.Booking {
	t.Helper()
	b, err := env.engine.Create(context.Background(), auth.CustomerActor(customerID), CreateRequest{
		CustomerName:  "Ana Diaz",
		CustomerEmail: "ana@example.com",
		CustomerPhone: "555-0101",
		BartenderID:   bartenderID,
		EventType:     "Wedding",
		EventDate:     "2026-10-03",
		EventTime:     "18:00",
		Location:      "Brooklyn, NY",
	})
	require.NoError(t, err)
	return b
}

func TestCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("success starts pending", func(t *testing.T) {
		b := env.createBooking(t, "c1", "b1")
		assert.Equal(t, model.StatusPending, b.Status)
		assert.Equal(t, "c1", b.CustomerID)
		assert.Equal(t, "b1", b.BartenderID)
		assert.NotEmpty(t, b.ID)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		_, err := env.engine.Create(ctx, auth.Anonymous, CreateRequest{BartenderID: "b1"})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("bartender actor is unauthorized", func(t *testing.T) {
		_, err := env.engine.Create(ctx, auth.BartenderActor("b1"), CreateRequest{BartenderID: "b1"})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("missing bartender is not found", func(t *testing.T) {
		_, err := env.engine.Create(ctx, auth.CustomerActor("c1"), CreateRequest{BartenderID: "nope"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unapproved bartender is not found", func(t *testing.T) {
		_, err := env.engine.Create(ctx, auth.CustomerActor("c1"), CreateRequest{BartenderID: "b3"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAccept(t *testing.T) {
	t.Run("owner accepts pending booking", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, "c1", "b1")

		got, err := env.engine.Accept(context.Background(), auth.BartenderActor("b1"), b.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusAccepted, got.Status)

		stored, _ := env.store.GetByID(context.Background(), b.ID)
		assert.Equal(t, model.StatusAccepted, stored.Status)

		// One mail to the customer, one to the bartender.
		require.Len(t, env.sender.sent, 2)
		assert.Equal(t, "ana@example.com", env.sender.sent[0].to)
		assert.Equal(t, "maya@bar.example", env.sender.sent[1].to)
		// The bartender mail carries the customer's contact details.
		assert.Contains(t, env.sender.sent[1].body, "555-0101")
		assert.Contains(t, env.sender.sent[1].body, "ana@example.com")

		require.Len(t, env.published, 1)
		assert.Equal(t, b.ID, env.published[0].BookingID)
	})

	t.Run("no session is unauthorized", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, "c1", "b1")
		_, err := env.engine.Accept(context.Background(), auth.Anonymous, b.ID)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("customer session is unauthorized", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, "c1", "b1")
		_, err := env.engine.Accept(context.Background(), auth.CustomerActor("c1"), b.ID)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("wrong bartender is forbidden and sends nothing", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, "c1", "b1")

		_, err := env.engine.Accept(context.Background(), auth.BartenderActor("b2"), b.ID)
		assert.ErrorIs(t, err, ErrForbidden)

		stored, _ := env.store.GetByID(context.Background(), b.ID)
		assert.Equal(t, model.StatusPending, stored.Status)
		assert.Empty(t, env.sender.sent)
		assert.Empty(t, env.published)
	})

	t.Run("re-accept is invalid state with no duplicate mail", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, "c1", "b1")

		_, err := env.engine.Accept(context.Background(), auth.BartenderActor("b1"), b.ID)
		require.NoError(t, err)
		_, err = env.engine.Accept(context.Background(), auth.BartenderActor("b1"), b.ID)
		assert.ErrorIs(t, err, ErrInvalidState)

		stored, _ := env.store.GetByID(context.Background(), b.ID)
		assert.Equal(t, model.StatusAccepted, stored.Status)
		assert.Len(t, env.sender.sent, 2)
		assert.Len(t, env.published, 1)
	})

	t.Run("accept after cancel is invalid state", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, "c1", "b1")
		_, err := env.engine.Cancel(context.Background(), auth.CustomerActor("c1"), b.ID)
		require.NoError(t, err)

		_, err = env.engine.Accept(context.Background(), auth.BartenderActor("b1"), b.ID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("missing booking is not found", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.engine.Accept(context.Background(), auth.BartenderActor("b1"), "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("mail failure does not fail the accept", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, "c1", "b1")
		env.sender.err = errors.New("smtp down")

		got, err := env.engine.Accept(context.Background(), auth.BartenderActor("b1"), b.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusAccepted, got.Status)

		stored, _ := env.store.GetByID(context.Background(), b.ID)
		assert.Equal(t, model.StatusAccepted, stored.Status)
	})
}

func TestReject(t *testing.T) {
	t.Run("owner rejects pending booking without mail", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, "c1", "b1")

		got, err := env.engine.Reject(context.Background(), auth.BartenderActor("b1"), b.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusRejected, got.Status)
		assert.Empty(t, env.sender.sent)
		assert.Empty(t, env.published)
	})

	t.Run("wrong bartender is forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, "c1", "b1")
		_, err := env.engine.Reject(context.Background(), auth.BartenderActor("b2"), b.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("reject after accept is invalid state", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, "c1", "b1")
		_, err := env.engine.Accept(context.Background(), auth.BartenderActor("b1"), b.ID)
		require.NoError(t, err)

		_, err = env.engine.Reject(context.Background(), auth.BartenderActor("b1"), b.ID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestCancel(t *testing.T) {
	t.Run("owner cancels pending booking", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, "c1", "b1")

		got, err := env.engine.Cancel(context.Background(), auth.CustomerActor("c1"), b.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, got.Status)
		assert.Empty(t, env.sender.sent)
	})

	t.Run("owner cancels accepted booking", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, "c1", "b1")
		_, err := env.engine.Accept(context.Background(), auth.BartenderActor("b1"), b.ID)
		require.NoError(t, err)

		got, err := env.engine.Cancel(context.Background(), auth.CustomerActor("c1"), b.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, got.Status)
	})

	// Cancel has no source-status guard. Cancelling a booking the
	// bartender already rejected is allowed on purpose.
	t.Run("owner cancels rejected booking", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, "c1", "b1")
		_, err := env.engine.Reject(context.Background(), auth.BartenderActor("b1"), b.ID)
		require.NoError(t, err)

		got, err := env.engine.Cancel(context.Background(), auth.CustomerActor("c1"), b.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, got.Status)
	})

	t.Run("second cancel is a no-op success", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, "c1", "b1")
		_, err := env.engine.Cancel(context.Background(), auth.CustomerActor("c1"), b.ID)
		require.NoError(t, err)

		got, err := env.engine.Cancel(context.Background(), auth.CustomerActor("c1"), b.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, got.Status)
	})

	t.Run("different customer is forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, "c1", "b1")
		_, err := env.engine.Cancel(context.Background(), auth.CustomerActor("c2"), b.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("bartender actor is unauthorized", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, "c1", "b1")
		_, err := env.engine.Cancel(context.Background(), auth.BartenderActor("b1"), b.ID)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestLists(t *testing.T) {
	env := newTestEnv(t)
	first := env.createBooking(t, "c1", "b1")
	second := env.createBooking(t, "c1", "b2")
	third := env.createBooking(t, "c1", "b1")

	t.Run("bartender sees only own bookings newest first", func(t *testing.T) {
		items, err := env.engine.ListForBartender(context.Background(), auth.BartenderActor("b1"))
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, third.ID, items[0].ID)
		assert.Equal(t, first.ID, items[1].ID)
		for _, b := range items {
			assert.Equal(t, "b1", b.BartenderID)
		}
	})

	t.Run("customer list keys on contact email", func(t *testing.T) {
		items, err := env.engine.ListForCustomer(context.Background(), auth.CustomerActor("c1"))
		require.NoError(t, err)
		assert.Len(t, items, 3)
		_ = second
	})

	t.Run("customer with no bookings gets empty list", func(t *testing.T) {
		items, err := env.engine.ListForCustomer(context.Background(), auth.CustomerActor("c2"))
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("anonymous list is unauthorized", func(t *testing.T) {
		_, err := env.engine.ListForBartender(context.Background(), auth.Anonymous)
		assert.ErrorIs(t, err, ErrUnauthorized)
		_, err = env.engine.ListForCustomer(context.Background(), auth.Anonymous)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestGet(t *testing.T) {
	env := newTestEnv(t)
	b := env.createBooking(t, "c1", "b1")

	t.Run("booking bartender may fetch", func(t *testing.T) {
		got, err := env.engine.Get(context.Background(), auth.BartenderActor("b1"), b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})

	t.Run("creating customer may fetch", func(t *testing.T) {
		got, err := env.engine.Get(context.Background(), auth.CustomerActor("c1"), b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		_, err := env.engine.Get(context.Background(), auth.BartenderActor("b2"), b.ID)
		assert.ErrorIs(t, err, ErrForbidden)
		_, err = env.engine.Get(context.Background(), auth.CustomerActor("c2"), b.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("missing id is not found, distinct from server error", func(t *testing.T) {
		_, err := env.engine.Get(context.Background(), auth.CustomerActor("c1"), "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetAccepted(t *testing.T) {
	env := newTestEnv(t)
	b := env.createBooking(t, "c1", "b1")

	t.Run("pending booking is not found", func(t *testing.T) {
		_, err := env.engine.GetAccepted(context.Background(), auth.BartenderActor("b1"), b.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("accepted booking is returned to its bartender only", func(t *testing.T) {
		_, err := env.engine.Accept(context.Background(), auth.BartenderActor("b1"), b.ID)
		require.NoError(t, err)

		got, err := env.engine.GetAccepted(context.Background(), auth.BartenderActor("b1"), b.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusAccepted, got.Status)

		_, err = env.engine.GetAccepted(context.Background(), auth.BartenderActor("b2"), b.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
