package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTourBookingURL = "https://api.cosmosalonstudios.com/widget/booking/XKQxxfMpeAtAFVuOh84T"
	defaultCallBookingURL = "https://api.cosmosalonstudios.com/widget/booking/rTXPD4SlT0wj9UKBzTHa"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	// Booking widget destinations
	TourBookingURL string
	CallBookingURL string

	// Page behaviour
	DesktopBreakpointPx int
	PromoFreeWeeks      int
	ToastDuration       time.Duration
	LikeBurstDuration   time.Duration
	ChatReplyDelay      time.Duration
	UnreadDelay         time.Duration
	SessionTTL          time.Duration
	SessionMaxPages     int
	SecureCookies       bool
	ContentPath         string

	// HTTP edge
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// Load reads configuration from environment variables
func Load() *Config {
	env := getEnv("ENV", "development")
	return &Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 env,
		PublicBaseURL:       strings.TrimSuffix(getEnv("PUBLIC_BASE_URL", "https://wb.cosmosalonstudios.com"), "/"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		TourBookingURL:      getEnv("TOUR_BOOKING_URL", defaultTourBookingURL),
		CallBookingURL:      getEnv("CALL_BOOKING_URL", defaultCallBookingURL),
		DesktopBreakpointPx: getEnvAsPositiveInt("DESKTOP_BREAKPOINT_PX", 768),
		PromoFreeWeeks:      getEnvAsWeeks("PROMO_FREE_WEEKS", 8),
		ToastDuration:       getEnvAsDuration("TOAST_DURATION", 2*time.Second),
		LikeBurstDuration:   getEnvAsDuration("LIKE_BURST_DURATION", 550*time.Millisecond),
		ChatReplyDelay:      getEnvAsDuration("CHAT_REPLY_DELAY", 1100*time.Millisecond),
		UnreadDelay:         getEnvAsDuration("UNREAD_DELAY", 2500*time.Millisecond),
		SessionTTL:          getEnvAsDuration("SESSION_TTL", 30*time.Minute),
		SessionMaxPages:     getEnvAsPositiveInt("SESSION_MAX_PAGES", 5000),
		SecureCookies:       getEnvAsBool("SECURE_COOKIES", strings.EqualFold(env, "production")),
		ContentPath:         getEnv("CONTENT_PATH", ""),
		CORSAllowedOrigins:  getEnvAsList("CORS_ALLOWED_ORIGINS"),
		RateLimitRPS:        getEnvAsFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:      getEnvAsPositiveInt("RATE_LIMIT_BURST", 30),
	}
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsPositiveInt(key string, defaultValue int) int {
	if value := getEnvAsInt(key, defaultValue); value > 0 {
		return value
	}
	return defaultValue
}

// getEnvAsWeeks accepts 0..51 free weeks; anything else keeps the default.
func getEnvAsWeeks(key string, defaultValue int) int {
	value := getEnvAsInt(key, defaultValue)
	if value < 0 || value >= 52 {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
