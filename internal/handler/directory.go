package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bestbartenders/bartender-booking/internal/model"
	"github.com/bestbartenders/bartender-booking/internal/repository"
)

// DirectoryHandler serves the public bartender directory customers
// browse before booking. Only approved profiles are listed and the
// response is sanitized: no contact details, credentials or document
// URLs.
type DirectoryHandler struct {
	Bartenders *repository.BartenderRepo
	Log        zerolog.Logger
}

func NewDirectoryHandler(b *repository.BartenderRepo, log zerolog.Logger) *DirectoryHandler {
	return &DirectoryHandler{Bartenders: b, Log: log}
}

// ListBartenders handles GET /v1/bartenders.
func (h *DirectoryHandler) ListBartenders(c echo.Context) error {
	items, err := h.Bartenders.ListApproved(c.Request().Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("load bartender directory failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bartenders"})
	}
	out := make([]model.PublicBartender, 0, len(items))
	for _, b := range items {
		out = append(out, b.Public())
	}
	return c.JSON(http.StatusOK, out)
}
