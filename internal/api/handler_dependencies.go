package api

import (
	"github.com/terraincognita07/cradle/internal/db"
	"github.com/terraincognita07/cradle/internal/services"
)

func (handler *Handler) withDependencies(cfg Config) *Handler {
	repos := cfg.Repositories
	options := []services.Option{
		services.WithLogger(handler.logger),
		services.WithMetrics(cfg.Metrics),
	}
	if cfg.Mailer != nil {
		options = append(options, services.WithMailer(cfg.Mailer, cfg.BaseURL))
	}

	care := careRepositories(repos)
	transact := careTransactor(repos)

	handler.authService = services.NewAuthService(repos.Users, options...)
	handler.babyService = services.NewBabyService(care, transact, options...)
	handler.caregiverService = services.NewCaregiverService(care, transact, options...)
	handler.inviteService = services.NewInviteService(care, options...)
	handler.trackingService = services.NewTrackingService(repos.Tracking, options...)
	return handler
}

func careRepositories(repos *db.Repositories) services.CareRepositories {
	return services.CareRepositories{
		Users:      repos.Users,
		Babies:     repos.Babies,
		Caregivers: repos.Caregivers,
		Invites:    repos.Invites,
	}
}

func careTransactor(repos *db.Repositories) services.CareTransactor {
	return func(fn func(services.CareRepositories) error) error {
		return repos.Transact(func(tx *db.Repositories) error {
			return fn(careRepositories(tx))
		})
	}
}
