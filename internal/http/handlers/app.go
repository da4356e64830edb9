package handlers

import (
	"context"

	"github.com/rs/zerolog"

	"donation-api/internal/domain"
	"donation-api/internal/metrics"
)

// App carries the dependencies shared by every handler.
type App struct {
	Donations domain.DonationRepository
	Contacts  domain.ContactRepository
	Store     domain.Pinger
	Publisher domain.SubmissionPublisher
	Metrics   *metrics.Metrics
	Logger    zerolog.Logger
}

func NewApp(donations domain.DonationRepository, contacts domain.ContactRepository, store domain.Pinger, logger zerolog.Logger) *App {
	return &App{
		Donations: donations,
		Contacts:  contacts,
		Store:     store,
		Logger:    logger,
	}
}

// publish announces a stored submission. Publishers must not block; failures
// are logged and counted but never change the response.
func (a *App) publish(ctx context.Context, event domain.SubmissionEvent) {
	if a.Publisher == nil {
		return
	}
	if err := a.Publisher.Publish(ctx, event); err != nil {
		a.Metrics.NotifyFailed()
		a.Logger.Warn().Err(err).Str("kind", string(event.Kind)).Str("record_id", event.RecordID).Msg("publish submission")
	}
}
