package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUpstream marks a failure to fetch or decode data from an external API.
var ErrUpstream = errors.New("upstream fetch failed")

// RandomUser is the subset of a randomuser.me record that gets stored.
type RandomUser struct {
	Email string `json:"email"`
	Login struct {
		Username string `json:"username"`
		Password string `json:"password"`
	} `json:"login"`
}

type randomUserResponse struct {
	Results []RandomUser `json:"results"`
}

// CatalogProduct is one element of the fakestoreapi.com product listing.
// Absent text fields decode to nil and are stored as NULL.
type CatalogProduct struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Image       *string `json:"image"`
	Rating      *struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

// UserSource yields one random identity per call.
type UserSource interface {
	FetchUser(ctx context.Context) (RandomUser, error)
}

// CatalogSource yields the full product catalog.
type CatalogSource interface {
	FetchProducts(ctx context.Context) ([]CatalogProduct, error)
}

// HTTPClient talks to the identity and catalog APIs over plain HTTP GETs.
type HTTPClient struct {
	randomUserURL string
	catalogURL    string
	httpClient    *http.Client
}

// NewHTTPClient creates a client. A nil httpClient means http.DefaultClient.
func NewHTTPClient(randomUserURL, catalogURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		randomUserURL: strings.TrimSpace(randomUserURL),
		catalogURL:    strings.TrimSpace(catalogURL),
		httpClient:    httpClient,
	}
}

// FetchUser fetches a single random identity.
func (c *HTTPClient) FetchUser(ctx context.Context) (RandomUser, error) {
	var resp randomUserResponse
	if err := c.getJSON(ctx, c.randomUserURL, &resp); err != nil {
		return RandomUser{}, err
	}
	if len(resp.Results) == 0 {
		return RandomUser{}, fmt.Errorf("%w: %s returned no results", ErrUpstream, c.randomUserURL)
	}
	return resp.Results[0], nil
}

// FetchProducts fetches the whole catalog in one request.
func (c *HTTPClient) FetchProducts(ctx context.Context) ([]CatalogProduct, error) {
	var products []CatalogProduct
	if err := c.getJSON(ctx, c.catalogURL, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrUpstream, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: GET %s: %s", ErrUpstream, url, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUpstream, url, err)
	}
	return nil
}
