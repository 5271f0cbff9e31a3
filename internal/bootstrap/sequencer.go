package bootstrap

import (
	"context"
	"errors"

	"github.com/isdelr/storefront-seed/internal/seed"
	"github.com/rs/zerolog/log"
)

// ProductCounter reports how many products are stored.
type ProductCounter interface {
	CountProducts(ctx context.Context) (int64, error)
}

// UserCounter reports how many users are stored.
type UserCounter interface {
	CountUsers(ctx context.Context) (int64, error)
}

// Seeding runs the two seed clients.
type Seeding interface {
	FetchRandomUsers(ctx context.Context, n int) seed.Result
	FetchAllProducts(ctx context.Context) seed.Result
}

// Report summarizes a bootstrap pass. A nil result means that table
// already had rows (or could not be counted) and was left alone.
type Report struct {
	Products *seed.Result
	Users    *seed.Result
	Err      error
}

// Sequencer populates empty tables once at process start.
type Sequencer struct {
	products  ProductCounter
	users     UserCounter
	seeder    Seeding
	journal   seed.EventRecorder
	userCount int
}

// NewSequencer creates a new Sequencer. journal may be nil.
func NewSequencer(products ProductCounter, users UserCounter, seeder Seeding, journal seed.EventRecorder, userCount int) *Sequencer {
	return &Sequencer{
		products:  products,
		users:     users,
		seeder:    seeder,
		journal:   journal,
		userCount: userCount,
	}
}

// Run checks the product table then the user table, seeding each one that
// is empty. The second check runs regardless of how the first one went.
// Report.Err only carries failures to count rows; seed failures are in the
// individual results.
func (s *Sequencer) Run(ctx context.Context) Report {
	var report Report
	var errs []error

	count, err := s.products.CountProducts(ctx)
	switch {
	case err != nil:
		log.Error().Err(err).Msg("Could not count products, skipping product seed")
		errs = append(errs, err)
	case count == 0:
		log.Info().Msg("Products table empty, seeding from catalog")
		res := s.seeder.FetchAllProducts(ctx)
		seed.Record(ctx, s.journal, seed.TriggerBootstrap, res)
		report.Products = &res
	default:
		log.Info().Int64("count", count).Msg("Products already present, skipping seed")
	}

	count, err = s.users.CountUsers(ctx)
	switch {
	case err != nil:
		log.Error().Err(err).Msg("Could not count users, skipping user seed")
		errs = append(errs, err)
	case count == 0:
		log.Info().Int("count", s.userCount).Msg("Users table empty, seeding random users")
		res := s.seeder.FetchRandomUsers(ctx, s.userCount)
		seed.Record(ctx, s.journal, seed.TriggerBootstrap, res)
		report.Users = &res
	default:
		log.Info().Int64("count", count).Msg("Users already present, skipping seed")
	}

	report.Err = errors.Join(errs...)
	return report
}
