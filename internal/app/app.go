package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/naturalhealing/booking/internal/config"
	"github.com/naturalhealing/booking/internal/flow"
	"github.com/naturalhealing/booking/internal/handler"
	"github.com/naturalhealing/booking/internal/logger"
	"github.com/naturalhealing/booking/internal/models"
	"github.com/naturalhealing/booking/internal/service"
	"github.com/naturalhealing/booking/internal/session"
)

// App wires configuration into the booking and admin flows.
type App struct {
	config     *config.Config
	featureCfg *service.FeatureConfig
	shop       models.ShopInfo
	logger     *logger.Logger

	ledger   *service.SheetsService
	calendar *service.CalendarService
	email    *service.EmailService
	sessions *session.Store

	booking *flow.BookingFlow
	admin   *flow.AdminFlow
}

func New(cfg *config.Config, featureCfg *service.FeatureConfig, log *logger.Logger) *App {
	if log == nil {
		log = logger.New()
	}
	if featureCfg == nil {
		featureCfg = &service.FeatureConfig{}
	}
	return &App{
		config:     cfg,
		featureCfg: featureCfg,
		shop:       config.DefaultShop(),
		logger:     log,
	}
}

// Initialize builds the collaborators. Only a missing session secret is
// fatal; an unreachable ledger or calendar leaves the app serving with that
// integration disabled.
func (a *App) Initialize(ctx context.Context) error {
	sessions, err := session.NewStore(a.config.SessionSecret)
	if err != nil {
		return fmt.Errorf("failed to initialize sessions: %w", err)
	}
	a.sessions = sessions

	a.initLedger(ctx)
	a.initCalendar(ctx)
	a.initEmail()

	a.booking = &flow.BookingFlow{
		Logger: a.logger,
		Shop:   a.shop,
	}
	a.admin = &flow.AdminFlow{
		Logger:      a.logger,
		Credentials: flow.Credentials{Username: a.config.AdminUsername, Password: a.config.AdminPassword},
	}
	// Interface fields stay nil unless the concrete service exists.
	if a.ledger != nil {
		a.booking.Ledger = a.ledger
		a.admin.Ledger = a.ledger
	}
	if a.calendar != nil {
		a.booking.Calendar = a.calendar
	}
	if a.email != nil {
		a.booking.Email = a.email
	}
	return nil
}

func (a *App) initLedger(ctx context.Context) {
	ledger, err := service.NewSheetsService(ctx, a.featureCfg.Ledger, a.config.GoogleCredentials)
	if err != nil {
		a.logger.Warn("Booking ledger not available, bookings will be rejected", logger.Error(err))
		return
	}
	a.ledger = ledger

	created, err := ledger.EnsureHeader(ctx)
	switch {
	case err != nil:
		a.logger.Warn("Could not verify ledger header", logger.Error(err))
	case created:
		a.logger.Info("Ledger header written", logger.Action("startup"), logger.Count(len(models.LedgerColumns)))
	}
	a.logger.Info("Booking ledger initialized", logger.Status("ready"), logger.F("SHEET", a.featureCfg.Ledger.SheetName))
}

func (a *App) initCalendar(ctx context.Context) {
	if !a.featureCfg.CalendarEnabled() {
		a.logger.Info("Calendar mirror disabled (calendar_id not set)")
		return
	}
	calendar, err := service.NewCalendarService(ctx, a.featureCfg.Calendar, a.config.GoogleCredentials)
	if err != nil {
		a.logger.Warn("Calendar mirror not available", logger.Error(err))
		return
	}
	a.calendar = calendar
	a.logger.Info("Calendar mirror initialized", logger.Status("ready"))
}

func (a *App) initEmail() {
	if !a.config.MailConfigured() {
		a.logger.Info("Email service not configured (MAIL_USERNAME/MAIL_PASSWORD missing)")
		return
	}
	a.email = service.NewEmailService(a.config.SMTPHost, a.config.SMTPPort,
		a.config.MailUsername, a.config.MailPassword, a.config.MailFrom, a.config.TestEmailOnly)
	if a.config.TestEmailOnly != "" {
		a.logger.Info("Email service initialized (TEST MODE)", logger.Status("ready"), logger.F("TEST_EMAIL", a.config.TestEmailOnly))
	} else {
		a.logger.Info("Email service initialized", logger.Status("ready"))
	}
}

// Handler returns the routed HTTP surface. Initialize must have succeeded.
func (a *App) Handler() (http.Handler, error) {
	if a.booking == nil || a.admin == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return handler.New(a.booking, a.admin, a.sessions, a.logger).Routes(), nil
}
