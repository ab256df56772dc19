package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wolfman30/cosmo-wb-landing/internal/api/router"
	"github.com/wolfman30/cosmo-wb-landing/internal/booking"
	appconfig "github.com/wolfman30/cosmo-wb-landing/internal/config"
	"github.com/wolfman30/cosmo-wb-landing/internal/content"
	httpmiddleware "github.com/wolfman30/cosmo-wb-landing/internal/http/middleware"
	"github.com/wolfman30/cosmo-wb-landing/internal/landing"
	"github.com/wolfman30/cosmo-wb-landing/internal/observability/metrics"
	"github.com/wolfman30/cosmo-wb-landing/internal/page"
	"github.com/wolfman30/cosmo-wb-landing/internal/platform/clock"
	"github.com/wolfman30/cosmo-wb-landing/internal/revenue"
	"github.com/wolfman30/cosmo-wb-landing/internal/session"
	"github.com/wolfman30/cosmo-wb-landing/internal/webchat"
	"github.com/wolfman30/cosmo-wb-landing/pkg/logging"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting cosmo-wb-landing server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	a, err := newApp(cfg, logger, clock.System{})
	if err != nil {
		logger.Error("failed to build application", "error", err)
		os.Exit(1)
	}
	a.start()

	// Create HTTP server. Chat websockets are long lived, so only headers
	// get a read deadline.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		a.stop()
		os.Exit(1)
	}
	a.stop()

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// app bundles the HTTP handler with the background workers that must be
// started and stopped alongside the server.
type app struct {
	handler http.Handler
	store   *session.Store
	limiter *httpmiddleware.RateLimiter
	done    chan struct{}
}

func newApp(cfg *appconfig.Config, logger *logging.Logger, clk clock.Clock) (*app, error) {
	links := content.Links{Tour: cfg.TourBookingURL, Call: cfg.CallBookingURL}
	table, err := content.LoadFile(cfg.ContentPath, links)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	dispatcher := booking.NewDispatcher(booking.Destinations{
		Tour: cfg.TourBookingURL,
		Call: cfg.CallBookingURL,
	}, cfg.DesktopBreakpointPx)
	calculator := revenue.NewCalculator(cfg.PromoFreeWeeks)

	metricsHandler, landingMetrics := setupMetrics()

	store := session.NewStore(session.Options{
		TTL:      cfg.SessionTTL,
		MaxPages: cfg.SessionMaxPages,
		Clock:    clk,
		Factory: func() *page.Controller {
			return page.New(page.Options{
				Content:       table,
				Dispatcher:    dispatcher,
				Calculator:    calculator,
				Clock:         clk,
				ToastDuration: cfg.ToastDuration,
				BurstDuration: cfg.LikeBurstDuration,
				ReplyDelay:    cfg.ChatReplyDelay,
				UnreadDelay:   cfg.UnreadDelay,
			})
		},
		Metrics: landingMetrics,
		Logger:  logger,
	})

	landingHandler, err := landing.NewHandler(landing.Deps{
		Store:         store,
		Content:       table,
		Dispatcher:    dispatcher,
		Metrics:       landingMetrics,
		PublicBaseURL: cfg.PublicBaseURL,
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: cfg.SecureCookies,
	}, logger)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("landing handler: %w", err)
	}
	chatHandler := webchat.NewHandler(landing.ChatResolver{Store: store}, landingMetrics, logger)
	limiter := httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	return &app{
		handler: router.New(&router.Config{
			Logger:             logger,
			Landing:            landingHandler,
			Chat:               chatHandler,
			Metrics:            landingMetrics,
			MetricsHandler:     metricsHandler,
			RateLimiter:        limiter,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		}),
		store:   store,
		limiter: limiter,
		done:    make(chan struct{}),
	}, nil
}

func (a *app) start() {
	a.store.Start()
	go a.limiter.Run(a.done)
}

func (a *app) stop() {
	close(a.done)
	a.store.Close()
}

// setupMetrics builds a dedicated registry with the landing collectors and
// the Go runtime collectors.
func setupMetrics() (http.Handler, *metrics.LandingMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics.NewLandingMetrics(reg)
}
