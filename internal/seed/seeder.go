package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/isdelr/storefront-seed/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Sources of a seeding run.
const (
	SourceUsers    = "users"
	SourceProducts = "products"
)

// Result describes the outcome of one seeding run.
type Result struct {
	Source   string
	Fetched  int
	Inserted int
	Failed   int
	Duration time.Duration
	Err      error
}

// OK reports whether the run fetched its data and stored every record.
func (r Result) OK() bool {
	return r.Err == nil
}

// Level maps the outcome onto a log level name.
func (r Result) Level() string {
	switch {
	case r.Err == nil:
		return "info"
	case r.Inserted > 0:
		return "warn"
	default:
		return "error"
	}
}

// Message is a one-line human summary of the run.
func (r Result) Message() string {
	if r.Err != nil {
		return fmt.Sprintf("seeding %s: inserted %d of %d: %v", r.Source, r.Inserted, r.Fetched, r.Err)
	}
	return fmt.Sprintf("seeding %s: inserted %d of %d", r.Source, r.Inserted, r.Fetched)
}

// UserWriter is the persistence dependency for user seeding.
type UserWriter interface {
	CreateUser(ctx context.Context, username, email, password string) (models.User, error)
}

// ProductWriter is the persistence dependency for product seeding.
type ProductWriter interface {
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
}

// Seeder pulls records from the external APIs and writes them to the store.
type Seeder struct {
	users    UserSource
	catalog  CatalogSource
	userRepo UserWriter
	products ProductWriter
}

// NewSeeder creates a new Seeder.
func NewSeeder(users UserSource, catalog CatalogSource, userRepo UserWriter, products ProductWriter) *Seeder {
	return &Seeder{
		users:    users,
		catalog:  catalog,
		userRepo: userRepo,
		products: products,
	}
}

// FetchRandomUsers requests n identities concurrently. If any request fails
// the whole batch is dropped and nothing is written. Otherwise the users are
// inserted one by one; a failed insert does not stop the remaining ones.
func (s *Seeder) FetchRandomUsers(ctx context.Context, n int) Result {
	start := time.Now()
	res := Result{Source: SourceUsers}
	if n <= 0 {
		return finish(res, start)
	}

	fetched := make([]RandomUser, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			u, err := s.users.FetchUser(gctx)
			if err != nil {
				return err
			}
			fetched[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		res.Err = err
		log.Error().Err(err).Int("requested", n).Msg("Error fetching random users, batch discarded")
		return finish(res, start)
	}
	res.Fetched = len(fetched)

	var errs []error
	for _, u := range fetched {
		if _, err := s.userRepo.CreateUser(ctx, u.Login.Username, u.Email, u.Login.Password); err != nil {
			res.Failed++
			errs = append(errs, err)
			log.Warn().Err(err).Str("username", u.Login.Username).Msg("Error inserting user")
			continue
		}
		res.Inserted++
	}
	res.Err = errors.Join(errs...)

	log.Info().Int("inserted", res.Inserted).Int("failed", res.Failed).Msg("Inserted random users")
	return finish(res, start)
}

// FetchAllProducts fetches the catalog and inserts every entry in order.
func (s *Seeder) FetchAllProducts(ctx context.Context) Result {
	start := time.Now()
	res := Result{Source: SourceProducts}

	catalog, err := s.catalog.FetchProducts(ctx)
	if err != nil {
		res.Err = err
		log.Error().Err(err).Msg("Error fetching products")
		return finish(res, start)
	}
	res.Fetched = len(catalog)

	var errs []error
	for _, p := range catalog {
		if _, err := s.products.CreateProduct(ctx, toProduct(p)); err != nil {
			res.Failed++
			errs = append(errs, err)
			log.Warn().Err(err).Str("title", p.Title).Msg("Error inserting product")
			continue
		}
		res.Inserted++
	}
	res.Err = errors.Join(errs...)

	log.Info().Int("inserted", res.Inserted).Int("failed", res.Failed).Msg("Inserted catalog products")
	return finish(res, start)
}

func finish(res Result, start time.Time) Result {
	res.Duration = time.Since(start)
	return res
}

func toProduct(p CatalogProduct) models.Product {
	product := models.Product{
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
	}
	if p.Rating != nil {
		rate, count := p.Rating.Rate, p.Rating.Count
		product.RatingRate = &rate
		product.RatingCount = &count
	}
	return product
}
