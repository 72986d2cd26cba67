// Package amadeus implements domain.FlightAPI against the Amadeus
// self-service REST API.
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fare-tracker/amadeus-fare-tracker/internal/domain"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/infrastructure/logger"
	"github.com/fare-tracker/amadeus-fare-tracker/internal/infrastructure/retry"
)

// API paths.
const (
	tokenPath       = "/v1/security/oauth2/token"
	flightDatesPath = "/v1/shopping/flight-dates"
	offersPath      = "/v2/shopping/flight-offers"
	locationsPath   = "/v1/reference-data/locations"
)

// tokenExpirySlack is subtracted from the token lifetime so a token is
// refreshed before it can expire mid-request.
const tokenExpirySlack = 10 * time.Second

// Config holds the client settings.
type Config struct {
	// Host is the API base URL (test or production environment)
	Host string

	// ClientID and ClientSecret authenticate the OAuth2 client-credentials grant
	ClientID     string
	ClientSecret string

	// Timeout bounds each HTTP request
	Timeout time.Duration

	// Retry controls per-call retrying; retry.SingleAttempt disables it
	Retry retry.Config
}

// Client is the live Amadeus API client.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *logger.Logger

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewClient creates a Client from the given configuration.
func NewClient(cfg Config, log *logger.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.WithComponent("amadeus"),
	}
}

// CheapestDates implements domain.FlightAPI.CheapestDates.
func (c *Client) CheapestDates(ctx context.Context, window domain.SearchWindow, limit int) ([]domain.CandidateDate, error) {
	q := url.Values{}
	q.Set("origin", window.Origin)
	q.Set("destination", window.Destination)
	q.Set("departureDate", window.DateRange())
	q.Set("adults", strconv.Itoa(window.Adults))
	q.Set("currencyCode", window.Currency)
	q.Set("max", strconv.Itoa(limit))

	var payload flightDatesResponse
	if err := c.get(ctx, "flight-dates", flightDatesPath, q, &payload); err != nil {
		return nil, err
	}

	dates := normalizeDates(payload.Data)
	if len(dates) > limit {
		dates = dates[:limit]
	}
	return dates, nil
}

// SearchOffers implements domain.FlightAPI.SearchOffers.
func (c *Client) SearchOffers(ctx context.Context, query domain.OfferQuery) ([]domain.Offer, error) {
	q := url.Values{}
	q.Set("originLocationCode", query.Origin)
	q.Set("destinationLocationCode", query.Destination)
	q.Set("departureDate", query.DepartureDate)
	q.Set("adults", strconv.Itoa(query.Adults))
	q.Set("currencyCode", query.Currency)
	q.Set("max", strconv.Itoa(query.MaxResults))
	// Itineraries with a layover are wanted; direct-only would hide deals.
	q.Set("nonStop", "false")
	if query.ReturnDate != "" {
		q.Set("returnDate", query.ReturnDate)
	}

	var payload offersResponse
	if err := c.get(ctx, "flight-offers", offersPath, q, &payload); err != nil {
		return nil, err
	}

	return normalizeOffers(payload.Data, query.DepartureDate), nil
}

// AirportCountry implements domain.FlightAPI.AirportCountry.
// Amadeus location IDs prefix airport IATA codes with "A".
func (c *Client) AirportCountry(ctx context.Context, airportCode string) (string, error) {
	var payload locationResponse
	path := locationsPath + "/A" + airportCode
	if err := c.get(ctx, "locations", path, nil, &payload); err != nil {
		return "", err
	}

	country := payload.Data.Address.CountryCode
	if country == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrAirportNotFound, airportCode)
	}
	return country, nil
}

// get performs an authenticated GET against the API with the configured
// retry policy and decodes the JSON response into v.
func (c *Client) get(ctx context.Context, operation, path string, query url.Values, v any) error {
	_, err := retry.DoWithResult(ctx, func() (struct{}, error) {
		return struct{}{}, c.getOnce(ctx, operation, path, query, v)
	}, c.cfg.Retry)
	return err
}

func (c *Client) getOnce(ctx context.Context, operation, path string, query url.Values, v any) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	u := c.cfg.Host + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", operation, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	c.log.Debug().Str("operation", operation).Str("url", u).Msg("Provider call")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.ProviderError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		pErr := &domain.ProviderError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
		// Client errors other than rate limiting will not heal on retry.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return retry.MarkPermanent(pErr)
		}
		return pErr
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &domain.ProviderError{Operation: operation, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// accessToken returns a cached OAuth2 token, fetching a fresh one when the
// cached token is missing or close to expiry.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.expires.Add(-tokenExpirySlack)) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Host+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.ProviderError{Operation: "token", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &domain.ProviderError{
			Operation:  "token",
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", &domain.ProviderError{Operation: "token", Err: fmt.Errorf("decode response: %w", err)}
	}

	c.token = tr.AccessToken
	c.expires = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	return c.token, nil
}

// Ensure Client implements domain.FlightAPI at compile time.
var _ domain.FlightAPI = (*Client)(nil)
