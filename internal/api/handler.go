package api

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/terraincognita07/cradle/internal/db"
	"github.com/terraincognita07/cradle/internal/i18n"
	"github.com/terraincognita07/cradle/internal/mail"
	"github.com/terraincognita07/cradle/internal/metrics"
	"github.com/terraincognita07/cradle/internal/services"
	"github.com/terraincognita07/cradle/internal/session"
)

type Handler struct {
	logger       *slog.Logger
	sessions     session.Store
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	templates    map[string]*template.Template

	authService      *services.AuthService
	babyService      *services.BabyService
	caregiverService *services.CaregiverService
	inviteService    *services.InviteService
	trackingService  *services.TrackingService
}

// Config carries everything NewHandler wires into the services.
type Config struct {
	Repositories *db.Repositories
	Sessions     session.Store
	I18n         *i18n.Manager
	TemplatesDir string
	Location     *time.Location
	CookieSecure bool
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	Mailer       mail.Mailer
	BaseURL      string
}

func NewHandler(cfg Config) (*Handler, error) {
	if cfg.Repositories == nil {
		return nil, errors.New("repositories are required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session store is required")
	}
	if cfg.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	handler := &Handler{
		logger:       cfg.Logger,
		sessions:     cfg.Sessions,
		location:     cfg.Location,
		cookieSecure: cfg.CookieSecure,
		i18n:         cfg.I18n,
	}

	templates, err := parsePageTemplates(cfg.TemplatesDir, handler.templateFuncMap(), pageTemplates)
	if err != nil {
		return nil, fmt.Errorf("init templates: %w", err)
	}
	handler.templates = templates

	return handler.withDependencies(cfg), nil
}
