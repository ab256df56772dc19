package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "PUBLIC_BASE_URL", "TOUR_BOOKING_URL", "CALL_BOOKING_URL",
		"DESKTOP_BREAKPOINT_PX", "PROMO_FREE_WEEKS", "TOAST_DURATION", "LIKE_BURST_DURATION",
		"CHAT_REPLY_DELAY", "UNREAD_DELAY", "SESSION_TTL", "SESSION_MAX_PAGES", "SECURE_COOKIES", "CONTENT_PATH",
		"CORS_ALLOWED_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.DesktopBreakpointPx != 768 {
		t.Fatalf("expected default breakpoint 768, got %d", cfg.DesktopBreakpointPx)
	}
	if cfg.PromoFreeWeeks != 8 {
		t.Fatalf("expected 8 promo weeks, got %d", cfg.PromoFreeWeeks)
	}
	if cfg.ToastDuration != 2*time.Second {
		t.Fatalf("expected toast duration 2s, got %s", cfg.ToastDuration)
	}
	if cfg.LikeBurstDuration != 550*time.Millisecond {
		t.Fatalf("expected like burst 550ms, got %s", cfg.LikeBurstDuration)
	}
	if cfg.ChatReplyDelay != 1100*time.Millisecond {
		t.Fatalf("expected chat reply delay 1100ms, got %s", cfg.ChatReplyDelay)
	}
	if cfg.UnreadDelay != 2500*time.Millisecond {
		t.Fatalf("expected unread delay 2500ms, got %s", cfg.UnreadDelay)
	}
	if cfg.TourBookingURL != defaultTourBookingURL || cfg.CallBookingURL != defaultCallBookingURL {
		t.Fatalf("expected default booking urls, got %s / %s", cfg.TourBookingURL, cfg.CallBookingURL)
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Fatalf("expected no cors origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.IsProduction() {
		t.Fatalf("expected development env")
	}
	if cfg.SecureCookies {
		t.Fatalf("expected insecure cookies outside production")
	}
	if cfg.SessionMaxPages != 5000 {
		t.Fatalf("expected default page cap 5000, got %d", cfg.SessionMaxPages)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("PUBLIC_BASE_URL", "https://example.com/")
	t.Setenv("TOUR_BOOKING_URL", "https://book.example/tour")
	t.Setenv("DESKTOP_BREAKPOINT_PX", "1024")
	t.Setenv("PROMO_FREE_WEEKS", "4")
	t.Setenv("TOAST_DURATION", "3s")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production env")
	}
	if !cfg.SecureCookies {
		t.Fatalf("expected secure cookies in production")
	}
	if cfg.PublicBaseURL != "https://example.com" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.PublicBaseURL)
	}
	if cfg.TourBookingURL != "https://book.example/tour" {
		t.Fatalf("expected tour url override, got %s", cfg.TourBookingURL)
	}
	if cfg.DesktopBreakpointPx != 1024 {
		t.Fatalf("expected breakpoint override, got %d", cfg.DesktopBreakpointPx)
	}
	if cfg.PromoFreeWeeks != 4 {
		t.Fatalf("expected promo weeks override, got %d", cfg.PromoFreeWeeks)
	}
	if cfg.ToastDuration != 3*time.Second {
		t.Fatalf("expected toast override, got %s", cfg.ToastDuration)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Fatalf("expected session ttl override, got %s", cfg.SessionTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("expected two cors origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Fatalf("expected rate override, got %v", cfg.RateLimitRPS)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("DESKTOP_BREAKPOINT_PX", "-5")
	t.Setenv("PROMO_FREE_WEEKS", "60")
	t.Setenv("CHAT_REPLY_DELAY", "soon")
	t.Setenv("RATE_LIMIT_BURST", "0")
	cfg := Load()
	if cfg.DesktopBreakpointPx != 768 {
		t.Fatalf("expected default breakpoint for negative input, got %d", cfg.DesktopBreakpointPx)
	}
	if cfg.PromoFreeWeeks != 8 {
		t.Fatalf("expected default promo weeks for out of range input, got %d", cfg.PromoFreeWeeks)
	}
	if cfg.ChatReplyDelay != 1100*time.Millisecond {
		t.Fatalf("expected default chat delay for invalid input, got %s", cfg.ChatReplyDelay)
	}
	if cfg.RateLimitBurst != 30 {
		t.Fatalf("expected default burst, got %d", cfg.RateLimitBurst)
	}
}

func TestSecureCookiesOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("SECURE_COOKIES", "false")
	if cfg := Load(); cfg.SecureCookies {
		t.Fatalf("expected explicit override to disable secure cookies")
	}

	t.Setenv("SECURE_COOKIES", "maybe")
	if cfg := Load(); !cfg.SecureCookies {
		t.Fatalf("expected invalid bool to keep the production default")
	}
}
