package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/storefront-seed/internal/bootstrap"
	"github.com/isdelr/storefront-seed/internal/database"
	"github.com/isdelr/storefront-seed/internal/models"
	"github.com/isdelr/storefront-seed/internal/seed"
	"github.com/isdelr/storefront-seed/internal/services"
	"github.com/stretchr/testify/require"
)

type app struct {
	router   *chi.Mux
	products *services.ProductService
	users    *services.UserService
	events   *services.EventService
	seeder   *seed.Seeder
}

func newApp(t *testing.T) *app {
	t.Helper()

	catalog, err := os.ReadFile(filepath.Join("..", "seed", "testdata", "products.json"))
	require.NoError(t, err)

	var calls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		fmt.Fprintf(w, `{"results":[{"email":"u%d@example.com","login":{"username":"u%d","password":"p%d"}}]}`, n, n, n)
	})
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.Write(catalog)
	})
	upstream := httptest.NewServer(mux)
	t.Cleanup(upstream.Close)

	db, err := database.New(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })

	a := &app{
		products: services.NewProductService(db),
		users:    services.NewUserService(db),
		events:   services.NewEventService(db),
	}
	client := seed.NewHTTPClient(upstream.URL+"/api/", upstream.URL+"/products", upstream.Client())
	a.seeder = seed.NewSeeder(client, client, a.users, a.products)
	a.router = NewRouter(a.products, a.users, a.events, a.seeder, Options{
		SeedUserCount: 5,
		Ping:          func() error { return database.Ping(db) },
	})
	return a
}

func (a *app) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeProducts(t *testing.T, rec *httptest.ResponseRecorder) []models.Product {
	t.Helper()
	var out []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRoutes(t *testing.T) {
	a := newApp(t)

	var got []string
	err := chi.Walk(a.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		got = append(got, method+" "+route)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(got)

	require.Equal(t, []string{
		"GET /",
		"GET /generate-products",
		"GET /generate-users",
		"GET /healthz",
		"GET /products/",
		"GET /products/search",
		"GET /products/{id}",
		"GET /seed-events",
		"GET /users",
	}, got)
}

func TestSeedAndServe(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	report := bootstrap.NewSequencer(a.products, a.users, a.seeder, a.events, 5).Run(ctx)
	require.NoError(t, report.Err)
	require.True(t, report.Products.OK())
	require.True(t, report.Users.OK())

	userCount, err := a.users.CountUsers(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 5, userCount)

	// A second start finds both tables populated.
	report = bootstrap.NewSequencer(a.products, a.users, a.seeder, a.events, 5).Run(ctx)
	require.Nil(t, report.Products)
	require.Nil(t, report.Users)

	t.Run("list is stable across calls", func(t *testing.T) {
		first := decodeProducts(t, a.get(t, "/products"))
		second := decodeProducts(t, a.get(t, "/products"))
		require.Len(t, first, 4)
		require.Equal(t, len(first), len(second))
		for i := range first {
			require.Equal(t, first[i].ID, second[i].ID)
			require.Equal(t, first[i].Title, second[i].Title)
		}
	})

	t.Run("product one", func(t *testing.T) {
		rec := a.get(t, "/products/1")
		require.Equal(t, http.StatusOK, rec.Code)
		var p models.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		require.Equal(t, "Fjallraven - Foldsack No. 1 Backpack, Fits 15 Laptops", p.Title)
	})

	t.Run("missing product is an empty object", func(t *testing.T) {
		rec := a.get(t, "/products/4242")
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{}`, rec.Body.String())
	})

	t.Run("empty search returns everything", func(t *testing.T) {
		require.Len(t, decodeProducts(t, a.get(t, "/products/search?q=")), 4)
	})

	t.Run("search by substring", func(t *testing.T) {
		got := decodeProducts(t, a.get(t, "/products/search?q=clothing"))
		require.Len(t, got, 2)
		got = decodeProducts(t, a.get(t, "/products/search?q=Hard%20Drive"))
		require.Len(t, got, 1)
		require.EqualValues(t, 4, got[0].ID)
	})

	t.Run("users hide passwords", func(t *testing.T) {
		rec := a.get(t, "/users")
		require.Equal(t, http.StatusOK, rec.Code)
		var users []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
		require.Len(t, users, 5)
		for _, u := range users {
			require.NotContains(t, u, "password")
			require.EqualValues(t, 0, u["is_admin"])
		}
	})

	t.Run("manual generation appends rows", func(t *testing.T) {
		rec := a.get(t, "/generate-users")
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"success":true,"message":"Generated 5 random users"}`, rec.Body.String())

		rec = a.get(t, "/generate-products")
		require.Equal(t, "products generated", rec.Body.String())

		users, err := a.users.CountUsers(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 10, users)
		require.Len(t, decodeProducts(t, a.get(t, "/products")), 8)
	})

	t.Run("seed journal", func(t *testing.T) {
		rec := a.get(t, "/seed-events")
		require.Equal(t, http.StatusOK, rec.Code)
		var events []models.SeedEvent
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
		require.Len(t, events, 4)

		triggers := map[string]int{}
		for _, e := range events {
			triggers[e.Trigger]++
		}
		require.Equal(t, map[string]int{seed.TriggerBootstrap: 2, seed.TriggerManual: 2}, triggers)
	})

	t.Run("greeting and health", func(t *testing.T) {
		rec := a.get(t, "/")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Hello")

		rec = a.get(t, "/healthz")
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCORS(t *testing.T) {
	a := newApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
