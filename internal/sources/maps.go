package sources

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/agenthands/travelmate/internal/core/model"
)

const (
	DefaultSearchPrefix = "Most Popular places in "
	DefaultRadiusMeters = 20000
)

// MapsClient queries the Google Places text search endpoint.
type MapsClient struct {
	baseURL string
	apiKey  string
	prefix  string
	radius  int
	up      *upstream
}

func NewMapsClient(baseURL, apiKey, searchPrefix string, radiusMeters int, opts Options) *MapsClient {
	if searchPrefix == "" {
		searchPrefix = DefaultSearchPrefix
	}
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}
	return &MapsClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		prefix:  searchPrefix,
		radius:  radiusMeters,
		up:      newUpstream("google_maps", opts),
	}
}

type textSearchResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []model.Place `json:"results"`
}

// PopularPlaces returns the most popular places in destination, in the
// order the search ranks them.
func (c *MapsClient) PopularPlaces(ctx context.Context, destination string) ([]model.Place, error) {
	q := url.Values{}
	q.Set("query", c.prefix+destination)
	q.Set("radius", strconv.Itoa(c.radius))
	q.Set("key", c.apiKey)

	var resp textSearchResponse
	if err := c.up.getJSON(ctx, c.baseURL+"?"+q.Encode(), &resp); err != nil {
		return nil, err
	}

	switch resp.Status {
	case "", "OK", "ZERO_RESULTS":
		return resp.Results, nil
	default:
		return nil, fmt.Errorf("google_maps: %w: %s %s", model.ErrUpstream, resp.Status, resp.ErrorMessage)
	}
}
