package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Dispatcher names accepted by CONTACT_DISPATCHER
const (
	DispatcherFunction = "function"
	DispatcherSMTP     = "smtp"
	DispatcherSendGrid = "sendgrid"
)

type Config struct {
	Port        string
	GinMode     string
	LogLevel    string
	FrontendURL string
	// Extra origins allowed by CORS on top of the production domains
	AllowedOrigins []string
	// Contact dispatch
	ContactDispatcher   string
	FunctionsURL        string
	FunctionsAnonKey    string
	ContactFunctionName string
	DispatchTimeout     time.Duration
	// SMTP Configuration
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string // Verified sender email (different from SMTP login)
	ContactEmailTo string
	// SendGrid
	SendGridAPIKey string
	// Optional persistence
	DBUrl string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	RateLimitGlobalThreshold  int
	// Whether to persist operator events to database
	EventLogToDB bool
	// Optional YAML file overriding the built-in site content
	SiteContentFile string
}

func LoadConfig() (*Config, error) {
	// .env is only expected locally; missing file is fine in production
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		FrontendURL:    strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
		// Contact dispatch
		ContactDispatcher: strings.ToLower(getEnv("CONTACT_DISPATCHER", DispatcherFunction)),
		// Trailing slash would produce .co//functions
		FunctionsURL:        strings.TrimRight(getEnv("FUNCTIONS_URL", getEnv("SUPABASE_URL", "")), "/"),
		FunctionsAnonKey:    getEnv("FUNCTIONS_ANON_KEY", getEnv("SUPABASE_ANON_KEY", "")),
		ContactFunctionName: getEnv("CONTACT_FUNCTION_NAME", "send-contact-email"),
		DispatchTimeout:     time.Duration(getEnvInt("DISPATCH_TIMEOUT_SECONDS", 15)) * time.Second,
		// SMTP Configuration
		SMTPHost:       getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", "noreply@lunarai.agency"),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", "admin@lunarai.agency"),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		DBUrl:          getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", getEnv("UPSTASH_REDIS_URL", "")),
		RedisPassword:  getEnv("REDIS_PASSWORD", getEnv("UPSTASH_REDIS_PASSWORD", "")),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		RateLimitGlobalThreshold:  getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		EventLogToDB:              getEnvBool("EVENT_LOG_TO_DB", true),
		SiteContentFile:           getEnv("SITE_CONTENT_FILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL not configured. Operator events will only be logged.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// Validate rejects dispatcher settings that could never deliver a message
func (c *Config) Validate() error {
	switch c.ContactDispatcher {
	case DispatcherFunction:
		if c.FunctionsURL == "" {
			return fmt.Errorf("config: FUNCTIONS_URL is required for the %q dispatcher", c.ContactDispatcher)
		}
	case DispatcherSMTP:
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("config: SMTP_HOST, SMTP_USERNAME and SMTP_PASSWORD are required for the %q dispatcher", c.ContactDispatcher)
		}
	case DispatcherSendGrid:
		if c.SendGridAPIKey == "" {
			return fmt.Errorf("config: SENDGRID_API_KEY is required for the %q dispatcher", c.ContactDispatcher)
		}
	default:
		return fmt.Errorf("config: unknown CONTACT_DISPATCHER %q", c.ContactDispatcher)
	}
	if c.DispatchTimeout <= 0 {
		return fmt.Errorf("config: DISPATCH_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// IsProduction reports whether gin runs in release mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// Environment is the label attached to operator events
func (c *Config) Environment() string {
	if c.IsProduction() {
		return "production"
	}
	return "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimRight(strings.TrimSpace(part), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
