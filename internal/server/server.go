// Package server wires services, handlers and middleware into the HTTP API.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carbontrack/internal/carbon"
	"carbontrack/internal/config"
	"carbontrack/internal/database"
	"carbontrack/internal/logger"
	"carbontrack/internal/metrics"
	"carbontrack/internal/middleware"
	"carbontrack/internal/notify"
	"carbontrack/internal/report"
	"carbontrack/internal/repositories"
	"carbontrack/internal/services"
)

const (
	authRatePerMinute = 10
	dispatchTimeout   = 15 * time.Second
	sweepInterval     = time.Minute
)

// App is the assembled API.
type App struct {
	Router  *gin.Engine
	Guests  *services.GuestLedgers
	Metrics *metrics.Prometheus

	authLimiter  *middleware.RateLimiter
	emailLimiter *middleware.RateLimiter
}

// NewDispatcher returns the notification dispatcher selected by
// cfg.NotifyChannel, or nil when e-mail delivery is disabled.
func NewDispatcher(cfg *config.Config) (notify.Dispatcher, error) {
	switch cfg.NotifyChannel {
	case config.NotifyNone:
		return nil, nil
	case config.NotifyLog:
		return notify.NewLogDispatcher(logger.Named("notify")), nil
	case config.NotifySMTP:
		return notify.NewSMTPDispatcher(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.NotifyFrom,
		}), nil
	case config.NotifyWebhook:
		return notify.NewWebhookDispatcher(cfg.NotifyWebhookURL), nil
	default:
		return nil, fmt.Errorf("unknown notify channel %q", cfg.NotifyChannel)
	}
}

// New builds the services and router on top of db. dispatcher may be nil.
func New(cfg *config.Config, db *gorm.DB, dispatcher notify.Dispatcher) *App {
	prom := metrics.NewPrometheus()
	guests := services.NewGuestLedgers(cfg.GuestLedgerTTL, cfg.GuestLedgerLimit, carbon.WithRegistryFactor(cfg.RecordRegistryFactor))

	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db)
	adminService := services.NewAdminService(db, auditService)
	emissionService := services.NewEmissionService(
		repositories.NewEmissionRepository(db),
		guests,
		auditService,
		prom,
		services.EmissionConfig{
			GoalKg:               cfg.GoalKg,
			RecordRegistryFactor: cfg.RecordRegistryFactor,
			PersistenceTimeout:   cfg.PersistenceTimeout,
		},
	)
	reportService := services.NewReportService(emissionService, report.NewPDFRenderer(), dispatcher, prom, dispatchTimeout)

	var pinger database.Pinger
	if sqlDB, err := db.DB(); err == nil {
		pinger = sqlDB
	}

	app := &App{
		Guests:       guests,
		Metrics:      prom,
		authLimiter:  middleware.PerMinute(authRatePerMinute),
		emailLimiter: middleware.PerMinute(cfg.EmailRatePerMinute),
	}
	app.Router = newRouter(routerDeps{
		cfg:             cfg,
		metrics:         prom,
		pinger:          pinger,
		userService:     userService,
		adminService:    adminService,
		emissionService: emissionService,
		reportService:   reportService,
		auditService:    auditService,
		authLimiter:     app.authLimiter,
		emailLimiter:    app.emailLimiter,
	})
	return app
}

// RunBackground evicts idle guest ledgers and rate limiter visitors until
// ctx is cancelled.
func (a *App) RunBackground(ctx context.Context) {
	go a.Guests.RunEviction(ctx, sweepInterval)
	go a.authLimiter.Cleanup(ctx, sweepInterval)
	go a.emailLimiter.Cleanup(ctx, sweepInterval)
}
