package main

import (
	"fmt"
	"net/http"

	"github.com/overnightmvp/7-day/internal/app/accounts"
	"github.com/overnightmvp/7-day/internal/app/bookings"
	"github.com/overnightmvp/7-day/internal/app/experiences"
	"github.com/overnightmvp/7-day/internal/app/inquiries"
	"github.com/overnightmvp/7-day/internal/auth"
	"github.com/overnightmvp/7-day/internal/booking"
	"github.com/overnightmvp/7-day/internal/catalog"
	"github.com/overnightmvp/7-day/internal/config"
	"github.com/overnightmvp/7-day/internal/http/middleware"
	"github.com/overnightmvp/7-day/internal/httpapi"
	"github.com/overnightmvp/7-day/internal/logging"
	"github.com/overnightmvp/7-day/internal/notify"
	"github.com/overnightmvp/7-day/internal/store"
)

func newHTTPHandler(cfg *config.Config, dataStore *store.Store, logger *logging.Logger) (http.Handler, error) {
	cat := catalog.Default()
	tokens := auth.NewIssuer(cfg.Security.SessionSecret, cfg.Security.SessionTTL)

	notifier, err := notify.NewTelegramNotifier(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID, logger)
	if err != nil {
		return nil, fmt.Errorf("telegram notifier: %w", err)
	}

	experienceSvc := experiences.New(cat)
	inquirySvc := inquiries.New(dataStore, cat, booking.NewValidator(), notifier, logger)
	accountSvc := accounts.New(dataStore, accounts.NewDetector(cfg.Accounts.PersonalEmailDomains), tokens, cfg.Security.OperatorEmails, logger)
	bookingSvc := bookings.New(dataStore, cat, logger)

	api := httpapi.New(experienceSvc, inquirySvc, accountSvc, bookingSvc, tokens, logger)

	var handler http.Handler = api.Routes()
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)
	return handler, nil
}
