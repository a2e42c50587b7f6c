package handler

// This file defines the HTTP handlers around the booking lifecycle
// engine. All guard decisions (role, ownership, state) live in the
// engine; the handlers only bind input, pass the resolved actor through
// and translate engine errors into status codes.

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bestbartenders/bartender-booking/internal/booking"
	"github.com/bestbartenders/bartender-booking/internal/middleware"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Engine *booking.Engine
	Log    zerolog.Logger
}

// NewBookingHandler constructs a BookingHandler. The engine must be non-nil.
func NewBookingHandler(engine *booking.Engine, log zerolog.Logger) *BookingHandler {
	if engine == nil {
		panic("nil engine passed to NewBookingHandler")
	}
	return &BookingHandler{Engine: engine, Log: log}
}

type createBookingReq struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	BartenderID   string `json:"bartender_id"`
	EventType     string `json:"event_type"`
	EventDate     string `json:"event_date"`
	EventTime     string `json:"event_time"`
	Location      string `json:"location"`
}

// Create handles POST /v1/bookings. The body carries the booking form
// fields; the booking is created Pending for the acting customer.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.CustomerEmail = strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	if req.CustomerName == "" || req.CustomerEmail == "" || req.BartenderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_name/customer_email/bartender_id required"})
	}

	b, err := h.Engine.Create(c.Request().Context(), middleware.CurrentActor(c), booking.CreateRequest{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		BartenderID:   req.BartenderID,
		EventType:     req.EventType,
		EventDate:     req.EventDate,
		EventTime:     req.EventTime,
		Location:      req.Location,
	})
	if err != nil {
		return h.writeError(c, err, "create booking failed")
	}
	return c.JSON(http.StatusCreated, b)
}

// Accept handles GET /v1/bookings/:id/accept. GET because the original
// product drove the transition from a link in the bartender dashboard.
func (h *BookingHandler) Accept(c echo.Context) error {
	b, err := h.Engine.Accept(c.Request().Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		return h.writeError(c, err, "accept booking failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking accepted", "booking": b})
}

// Reject handles GET /v1/bookings/:id/reject.
func (h *BookingHandler) Reject(c echo.Context) error {
	b, err := h.Engine.Reject(c.Request().Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		return h.writeError(c, err, "reject booking failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking rejected", "booking": b})
}

// Cancel handles POST /v1/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c echo.Context) error {
	b, err := h.Engine.Cancel(c.Request().Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		return h.writeError(c, err, "cancel booking failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled", "booking": b})
}

// ListForBartender handles GET /v1/bartender/bookings, returning the
// acting bartender's bookings newest first.
func (h *BookingHandler) ListForBartender(c echo.Context) error {
	items, err := h.Engine.ListForBartender(c.Request().Context(), middleware.CurrentActor(c))
	if err != nil {
		return h.writeError(c, err, "load bartender bookings failed")
	}
	return c.JSON(http.StatusOK, items)
}

// ListForCustomer handles GET /v1/customer/bookings, returning the
// acting customer's bookings newest first.
func (h *BookingHandler) ListForCustomer(c echo.Context) error {
	items, err := h.Engine.ListForCustomer(c.Request().Context(), middleware.CurrentActor(c))
	if err != nil {
		return h.writeError(c, err, "load customer bookings failed")
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /v1/bookings/:id, returning the full record to either
// of the booking's owners.
func (h *BookingHandler) Get(c echo.Context) error {
	b, err := h.Engine.Get(c.Request().Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		return h.writeError(c, err, "load booking failed")
	}
	return c.JSON(http.StatusOK, b)
}

// GetAccepted handles GET /v1/bookings/accepted/:id, the bartender-only
// fetch additionally filtered by status Accepted.
func (h *BookingHandler) GetAccepted(c echo.Context) error {
	b, err := h.Engine.GetAccepted(c.Request().Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		return h.writeError(c, err, "load accepted booking failed")
	}
	return c.JSON(http.StatusOK, b)
}

// writeError maps engine errors onto HTTP status codes: 401 for a
// missing or wrong-role actor, 403 for an ownership violation, 400 for
// an invalid transition, 404 for a missing record and 500 for anything
// else, which is also logged.
func (h *BookingHandler) writeError(c echo.Context, err error, msg string) error {
	switch {
	case errors.Is(err, booking.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	case errors.Is(err, booking.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, booking.ErrInvalidState):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid state"})
	case errors.Is(err, booking.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	h.Log.Error().Err(err).Str("path", c.Path()).Msg(msg)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg})
}
