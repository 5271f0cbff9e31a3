package seed

import (
	"context"

	"github.com/isdelr/storefront-seed/internal/models"
	"github.com/rs/zerolog/log"
)

// What started a seeding run.
const (
	TriggerBootstrap = "bootstrap"
	TriggerManual    = "manual"
)

// EventRecorder persists seed outcomes.
type EventRecorder interface {
	CreateEvent(ctx context.Context, event models.SeedEvent) error
}

// Record writes res to the journal. Journal failures are only logged so they
// never change the outcome seen by the caller.
func Record(ctx context.Context, journal EventRecorder, trigger string, res Result) {
	if journal == nil {
		return
	}
	event := models.SeedEvent{
		Source:   res.Source,
		Trigger:  trigger,
		Level:    res.Level(),
		Message:  res.Message(),
		Fetched:  res.Fetched,
		Inserted: res.Inserted,
		Failed:   res.Failed,
	}
	if err := journal.CreateEvent(ctx, event); err != nil {
		log.Error().Err(err).Str("source", res.Source).Msg("Failed to record seed event")
	}
}
