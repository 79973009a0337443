package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

var (
	ErrNoRoute   = errors.New("no route found")
	ErrNoResults = errors.New("no geocoding results")
)

// RouteSummary is the trimmed-down Directions answer the dashboard map shows.
type RouteSummary struct {
	Origin      string `json:"origen"`
	Destination string `json:"destino"`
	Distance    string `json:"distancia"`
	Duration    string `json:"duracion"`
}

// Client for the Google Maps web services (Directions and Geocoding).
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Maps API client. baseURL is overridable for tests;
// an empty value targets the real service.
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Directions asks for a driving route between two free-text locations.
func (c *Client) Directions(ctx context.Context, origin, destination string) (*RouteSummary, error) {
	endpoint := fmt.Sprintf("%s/maps/api/directions/json?origin=%s&destination=%s&mode=driving&departure_time=now&key=%s",
		c.baseURL, url.QueryEscape(origin), url.QueryEscape(destination), url.QueryEscape(c.apiKey))

	var response struct {
		Routes []struct {
			Legs []struct {
				StartAddress string `json:"start_address"`
				EndAddress   string `json:"end_address"`
				Distance     struct {
					Text string `json:"text"`
				} `json:"distance"`
				Duration struct {
					Text string `json:"text"`
				} `json:"duration"`
			} `json:"legs"`
		} `json:"routes"`
	}
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	if len(response.Routes) == 0 || len(response.Routes[0].Legs) == 0 {
		return nil, ErrNoRoute
	}

	leg := response.Routes[0].Legs[0]
	return &RouteSummary{
		Origin:      leg.StartAddress,
		Destination: leg.EndAddress,
		Distance:    leg.Distance.Text,
		Duration:    leg.Duration.Text,
	}, nil
}

// ReverseGeocode resolves coordinates to a formatted address.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	endpoint := fmt.Sprintf("%s/maps/api/geocode/json?latlng=%f,%f&key=%s",
		c.baseURL, lat, lng, url.QueryEscape(c.apiKey))

	var response struct {
		Results []struct {
			FormattedAddress string `json:"formatted_address"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return "", err
	}

	if len(response.Results) == 0 {
		return "", ErrNoResults
	}
	return response.Results[0].FormattedAddress, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Maps request failed", zap.Error(err))
		return fmt.Errorf("failed to call maps service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Maps service returned non-OK status", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("maps service returned status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode maps response: %w", err)
	}
	return nil
}
