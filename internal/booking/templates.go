package booking

import (
	"fmt"

	"github.com/bestbartenders/bartender-booking/internal/model"
)

// customerAcceptedEmail builds the mail sent to the customer when a
// bartender accepts: a short confirmation with the event summary.
func customerAcceptedEmail(b model.Booking) (subject, body string) {
	subject = "Your booking has been accepted!"
	body = fmt.Sprintf(
		`<h2>Good news, %s!</h2>
<p>Your bartender has accepted your booking.</p>
<ul>
  <li><b>Event:</b> %s</li>
  <li><b>Date:</b> %s at %s</li>
  <li><b>Location:</b> %s</li>
</ul>
<p>They will reach out to you shortly to confirm the details.</p>
<p>&mdash; The B.E.S.T Bartenders team</p>`,
		b.CustomerName, b.EventType, b.EventDate, b.EventTime, b.Location)
	return subject, body
}

// bartenderAcceptedEmail builds the mail sent to the bartender: the
// full customer contact details so they can follow up directly.
func bartenderAcceptedEmail(b model.Booking) (subject, body string) {
	subject = fmt.Sprintf("Booking confirmed: %s on %s", b.EventType, b.EventDate)
	body = fmt.Sprintf(
		`<h2>You accepted a booking</h2>
<p>Here are the customer's contact details:</p>
<ul>
  <li><b>Name:</b> %s</li>
  <li><b>Email:</b> %s</li>
  <li><b>Phone:</b> %s</li>
</ul>
<p>Event details:</p>
<ul>
  <li><b>Event:</b> %s</li>
  <li><b>Date:</b> %s at %s</li>
  <li><b>Location:</b> %s</li>
</ul>
<p>&mdash; The B.E.S.T Bartenders team</p>`,
		b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.EventType, b.EventDate, b.EventTime, b.Location)
	return subject, body
}
