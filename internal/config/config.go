package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The types reflect how the values are used
// in the application: strings for identifiers and secrets, ints and
// durations for costs and lifetimes.
type Config struct {
	Env           string        // application environment (e.g. "dev", "prod")
	Port          string        // HTTP port to listen on
	BaseURL       string        // public base URL, used to build verification links
	DBUser        string        // database username
	DBPass        string        // database password (optional)
	DBHost        string        // database host address
	DBPort        string        // database port number
	DBName        string        // database name
	JWTSecret     string        // secret used to sign email verification tokens
	SessionTTL    time.Duration // lifetime of a login session
	VerifyTTL     time.Duration // lifetime of an email verification link
	BcryptCost    int           // bcrypt cost for password hashing
	MailerBackend string        // "smtp", "console" or "noop"
	SMTPHost      string        // SMTP server host (smtp backend only)
	SMTPPort      int           // SMTP server port
	SMTPUser      string        // SMTP username, also the envelope sender
	SMTPPass      string        // SMTP password
	MailFrom      string        // display name on the From header of outbound mail
}

// Load reads configuration values from environment variables and returns
// a Config. A .env file is loaded first when present so local runs do
// not need to export everything by hand. Required variables are enforced
// by must() and missing values cause the program to exit with a fatal
// log message.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		BaseURL:       must("APP_BASE_URL"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"), // empty allowed
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		JWTSecret:     must("JWT_SECRET"),
		SessionTTL:    time.Duration(mustInt("SESSION_TTL_HOURS")) * time.Hour,
		VerifyTTL:     time.Duration(mustInt("VERIFY_TOKEN_TTL_HOURS")) * time.Hour,
		BcryptCost:    mustInt("BCRYPT_COST"),
		MailerBackend: envStr("MAILER_BACKEND", "console"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      envInt("SMTP_PORT", 587),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		MailFrom:      envStr("MAIL_FROM", "B.E.S.T Bartenders"),
	}
	if cfg.MailerBackend == "smtp" && cfg.SMTPHost == "" {
		log.Fatal("MAILER_BACKEND=smtp requires SMTP_HOST")
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
