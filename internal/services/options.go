package services

import (
	"log/slog"
	"time"

	"github.com/terraincognita07/cradle/internal/mail"
	"github.com/terraincognita07/cradle/internal/metrics"
)

type serviceOptions struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	mailer  mail.Mailer
	baseURL string
	now     func() time.Time
}

type Option func(options *serviceOptions)

func WithLogger(logger *slog.Logger) Option {
	return func(options *serviceOptions) {
		options.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(options *serviceOptions) {
		options.metrics = m
	}
}

// WithMailer sets the mailer used for invitations and the public base URL
// that invitation links point at.
func WithMailer(mailer mail.Mailer, baseURL string) Option {
	return func(options *serviceOptions) {
		options.mailer = mailer
		options.baseURL = baseURL
	}
}

func WithClock(now func() time.Time) Option {
	return func(options *serviceOptions) {
		options.now = now
	}
}

func buildServiceOptions(opts []Option) serviceOptions {
	options := serviceOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	if options.mailer == nil {
		options.mailer = mail.NewLogMailer(options.logger)
	}
	if options.now == nil {
		options.now = time.Now
	}
	return options
}
