package main // Entry point package

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/bestbartenders/bartender-booking/internal/booking"
	"github.com/bestbartenders/bartender-booking/internal/config"
	"github.com/bestbartenders/bartender-booking/internal/database"
	"github.com/bestbartenders/bartender-booking/internal/handler"
	"github.com/bestbartenders/bartender-booking/internal/logging"
	"github.com/bestbartenders/bartender-booking/internal/mailer"
	"github.com/bestbartenders/bartender-booking/internal/metrics"
	"github.com/bestbartenders/bartender-booking/internal/middleware"
	"github.com/bestbartenders/bartender-booking/internal/queue"
	"github.com/bestbartenders/bartender-booking/internal/repository"
	"github.com/bestbartenders/bartender-booking/internal/router"
	queuepublisher "github.com/bestbartenders/bartender-booking/internal/service"
	"github.com/bestbartenders/bartender-booking/internal/session"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Env)
	metrics.Register()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Sessions live in Redis, so unlike caching and rate limiting a
	// missing Redis is fatal here.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Fatal("redis unavailable; sessions require a reachable redis")
	}
	sessions := session.NewStore(rdb, cfg.SessionTTL)

	customers := repository.NewCustomerRepo(db)
	bartenders := repository.NewBartenderRepo(db)
	bookings := repository.NewBookingRepo(db)

	var sender mailer.Sender
	switch cfg.MailerBackend {
	case "smtp":
		sender = mailer.NewSMTP(cfg)
	case "noop":
		sender = mailer.Noop{}
	default:
		sender = mailer.NewConsole(logger)
	}

	engine := booking.NewEngine(bookings, bartenders, customers, sender,
		queuepublisher.PublishBookingAccepted, logger)

	// Background consumer appends accepted bookings to logs/booking.log.
	go queue.StartBookingConsumer(logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	authH := handler.NewAuthHandler(cfg, customers, bartenders, sessions, sender, logger)
	bookingH := handler.NewBookingHandler(engine, logger)
	dirH := handler.NewDirectoryHandler(bartenders, logger)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH)
	router.RegisterPublic(e, dirH, cacheMW)
	router.RegisterBooking(e, bookingH, authH, sessions)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
