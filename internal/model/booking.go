package model

import "time"

// BookingStatus enumerates the states of a booking. A booking starts
// Pending and moves exactly once into one of the three terminal states.
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusAccepted  BookingStatus = "Accepted"
	StatusRejected  BookingStatus = "Rejected"
	StatusCancelled BookingStatus = "Cancelled"
)

// allowedTransitions defines which state pairs are structurally valid.
// Who may trigger a transition (customer vs. bartender) is enforced by
// the booking engine; this map only encodes the state flow. Cancel is
// deliberately permissive: the original product allowed a customer to
// cancel a booking the bartender had already rejected.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:  {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted: {StatusCancelled},
}

// CanTransitionTo reports whether moving from s to next is a valid edge
// in the booking state machine.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s BookingStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// Valid reports whether s is one of the known status values.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Booking mirrors the `bookings` table. The customer contact columns are
// a free-text snapshot captured at booking time, not a live reference to
// the customer record; CustomerID additionally links the booking to the
// account that created it so ownership of cancel can be checked.
//
// Fields:
//  ID            – uuid primary key, assigned at creation.
//  CustomerID    – account that created the booking.
//  CustomerName  – contact name snapshot.
//  CustomerEmail – contact email snapshot (list key for customers).
//  CustomerPhone – contact phone snapshot.
//  BartenderID   – bartender the booking is addressed to.
//  EventType     – free-text event descriptor.
//  EventDate     – free-text event date as entered by the customer.
//  EventTime     – free-text event time.
//  Location      – free-text venue.
//  Status        – current state of the booking.
//  CreatedAt     – creation timestamp, list queries sort on it descending.
//  UpdatedAt     – last transition timestamp.
type Booking struct {
	ID            string        `json:"id"`
	CustomerID    string        `json:"customer_id"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	CustomerPhone string        `json:"customer_phone"`
	BartenderID   string        `json:"bartender_id"`
	EventType     string        `json:"event_type"`
	EventDate     string        `json:"event_date"`
	EventTime     string        `json:"event_time"`
	Location      string        `json:"location"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
