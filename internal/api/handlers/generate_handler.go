package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/isdelr/storefront-seed/internal/seed"
	"github.com/rs/zerolog/log"
)

// Seeding runs the two seed clients.
type Seeding interface {
	FetchRandomUsers(ctx context.Context, n int) seed.Result
	FetchAllProducts(ctx context.Context) seed.Result
}

// GenerateHandler triggers seeding on demand. The responses always report
// success; outcomes go to the log and the seed journal.
type GenerateHandler struct {
	seeder    Seeding
	journal   seed.EventRecorder
	userCount int
}

// NewGenerateHandler creates a new GenerateHandler. journal may be nil.
func NewGenerateHandler(seeder Seeding, journal seed.EventRecorder, userCount int) *GenerateHandler {
	return &GenerateHandler{seeder: seeder, journal: journal, userCount: userCount}
}

// Users fetches and stores a batch of random users.
func (h *GenerateHandler) Users(w http.ResponseWriter, r *http.Request) {
	// A client hanging up must not abort the batch halfway.
	ctx := context.WithoutCancel(r.Context())

	res := h.seeder.FetchRandomUsers(ctx, h.userCount)
	seed.Record(ctx, h.journal, seed.TriggerManual, res)
	if !res.OK() {
		log.Warn().Err(res.Err).Msg("Manual user generation did not fully succeed")
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Generated %d random users", h.userCount),
	})
}

// Products fetches and stores the whole catalog.
func (h *GenerateHandler) Products(w http.ResponseWriter, r *http.Request) {
	ctx := context.WithoutCancel(r.Context())

	res := h.seeder.FetchAllProducts(ctx)
	seed.Record(ctx, h.journal, seed.TriggerManual, res)
	if !res.OK() {
		log.Warn().Err(res.Err).Msg("Manual product generation did not fully succeed")
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("products generated"))
}
