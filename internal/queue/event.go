// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingAcceptedEvent is published when a bartender accepts a booking.
// It carries enough information for downstream consumers to log or
// trigger analytics without querying the primary database.
type BookingAcceptedEvent struct {
	BookingID     string `json:"booking_id"`
	BartenderID   string `json:"bartender_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	EventType     string `json:"event_type"`
	EventDate     string `json:"event_date"`
	EventTime     string `json:"event_time"`
	Location      string `json:"location"`
	AcceptedAt    string `json:"accepted_at"`
}
