package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bestbartenders/bartender-booking/internal/auth"
	"github.com/bestbartenders/bartender-booking/internal/config"
	"github.com/bestbartenders/bartender-booking/internal/mailer"
	"github.com/bestbartenders/bartender-booking/internal/middleware"
	"github.com/bestbartenders/bartender-booking/internal/model"
	"github.com/bestbartenders/bartender-booking/internal/repository"
	"github.com/bestbartenders/bartender-booking/internal/session"
	"github.com/bestbartenders/bartender-booking/internal/utils"
)

// AuthHandler bundles dependencies for registration, login and logout
// of both account types.
type AuthHandler struct {
	Cfg        config.Config
	Customers  *repository.CustomerRepo
	Bartenders *repository.BartenderRepo
	Sessions   *session.Store
	Mail       mailer.Sender
	Log        zerolog.Logger
}

func NewAuthHandler(cfg config.Config, c *repository.CustomerRepo, b *repository.BartenderRepo, s *session.Store, m mailer.Sender, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Customers: c, Bartenders: b, Sessions: s, Mail: m, Log: log}
}

// ----- DTOs -----

type customerRegisterReq struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Address   string `json:"address"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

type bartenderRegisterReq struct {
	FirstName       string `json:"firstname"`
	LastName        string `json:"lastname"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	Experience      string `json:"experience"`
	Skills          string `json:"skills"`
	Rate            string `json:"rate"`
	Street          string `json:"street"`
	Apt             string `json:"apt"`
	City            string `json:"city"`
	State           string `json:"state"`
	Zip             string `json:"zip"`
	LicenseNumber   string `json:"license_number"`
	ProfilePhotoURL string `json:"profile_photo"`
	LicenseFileURL  string `json:"bartending_license"`
	GovernmentIDURL string `json:"government_id"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterCustomer creates an unverified customer account and mails a
// verification link. The account cannot log in until the link is
// followed. A failed verification mail is logged but still answers 201;
// the user can re-register to trigger a new mail.
func (h *AuthHandler) RegisterCustomer(c echo.Context) error {
	var req customerRegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" || req.FirstName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "firstname/email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}
	cust := model.Customer{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Address:      req.Address,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	if err := h.Customers.Create(ctx, &cust); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create customer failed"})
	}

	token, exp, err := utils.NewVerificationToken(h.Cfg.JWTSecret, cust.ID, h.Cfg.VerifyTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue verification token failed"})
	}
	if err := h.Customers.SetVerifyToken(ctx, cust.ID, utils.HashToken(token), exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save verification token failed"})
	}

	link := h.Cfg.BaseURL + "/v1/auth/customer/verify?token=" + token
	body := "<p>Welcome to B.E.S.T Bartenders, " + cust.FirstName + "!</p>" +
		"<p>Please <a href=\"" + link + "\">verify your email address</a> to activate your account.</p>"
	if err := h.Mail.Send(ctx, cust.Email, "Verify your email", body); err != nil {
		h.Log.Error().Err(err).Str("customer_id", cust.ID).Msg("verification email failed")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":      cust.ID,
		"message": "registration successful, check your email to verify your account",
	})
}

// VerifyCustomer handles the verification link. The token is a signed
// JWT naming the customer; the stored hash and expiry must also match,
// so a link can be used at most once.
func (h *AuthHandler) VerifyCustomer(c echo.Context) error {
	raw := c.QueryParam("token")
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token required"})
	}
	customerID, err := utils.ParseVerificationToken(h.Cfg.JWTSecret, raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or expired token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ok, err := h.Customers.Verify(ctx, customerID, utils.HashToken(raw))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verification failed"})
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or expired token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "email verified, you can now log in"})
}

// LoginCustomer verifies customer credentials and opens a session.
// Login is refused while the email is unverified.
func (h *AuthHandler) LoginCustomer(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cust, err := h.Customers.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(cust.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if !cust.EmailVerified {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "email not verified"})
	}

	return h.openSession(c, ctx, auth.CustomerActor(cust.ID), echo.Map{
		"id":        cust.ID,
		"firstname": cust.FirstName,
		"lastname":  cust.LastName,
		"email":     cust.Email,
	})
}

// LoginBartender verifies bartender credentials and opens a session.
// An unapproved account is refused even with valid credentials.
func (h *AuthHandler) LoginBartender(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bt, err := h.Bartenders.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(bt.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if !bt.Approved {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "your account is still under review"})
	}

	return h.openSession(c, ctx, auth.BartenderActor(bt.ID), echo.Map{
		"id":        bt.ID,
		"firstname": bt.FirstName,
		"lastname":  bt.LastName,
		"email":     bt.Email,
	})
}

// RegisterBartender creates a bartender profile pending approval. The
// document URL fields hold the locations of the already-uploaded files.
func (h *AuthHandler) RegisterBartender(c echo.Context) error {
	var req bartenderRegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" || req.FirstName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "firstname/email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}
	bt := model.Bartender{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		PasswordHash:    hash,
		Experience:      req.Experience,
		Skills:          req.Skills,
		Rate:            req.Rate,
		Street:          req.Street,
		Apt:             req.Apt,
		City:            req.City,
		State:           req.State,
		Zip:             req.Zip,
		LicenseNumber:   req.LicenseNumber,
		ProfilePhotoURL: req.ProfilePhotoURL,
		LicenseFileURL:  req.LicenseFileURL,
		GovernmentIDURL: req.GovernmentIDURL,
	}
	if err := h.Bartenders.Create(ctx, &bt); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create bartender failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":      bt.ID,
		"message": "registration received, your account is under review",
	})
}

// Logout terminates the current session if one exists. Always answers
// 204 and clears the cookie, even when the token was already gone.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if err := h.Sessions.Delete(ctx, cookie.Value); err != nil {
			h.Log.Error().Err(err).Msg("delete session failed")
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated customer's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	actor := middleware.CurrentActor(c)
	if !actor.IsCustomer() {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not logged in"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cust, err := h.Customers.GetByID(ctx, actor.ID())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load customer failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"firstname": cust.FirstName,
		"lastname":  cust.LastName,
		"email":     cust.Email,
		"phone":     cust.Phone,
		"address":   cust.Address,
	})
}

// openSession creates the session record, sets the cookie and writes
// the login response body.
func (h *AuthHandler) openSession(c echo.Context, ctx context.Context, actor auth.Actor, body echo.Map) error {
	raw, err := h.Sessions.Create(ctx, actor)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "open session failed"})
	}
	c.SetCookie(&http.Cookie{
		Name:     session.CookieName,
		Value:    raw,
		Path:     "/",
		MaxAge:   int(h.Cfg.SessionTTL / time.Second),
		HttpOnly: true,
		Secure:   h.Cfg.Env == "prod",
		SameSite: http.SameSiteLaxMode,
	})
	body["message"] = "login successful"
	return c.JSON(http.StatusOK, body)
}
