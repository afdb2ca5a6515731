// Package maps wraps the external distance-matrix and geocoding service.
package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNoRoute is returned by Distance when the service responds without a
// distance figure, meaning no drivable route exists between the two places.
var ErrNoRoute = errors.New("no route between origin and destination")

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Service is the contract handlers depend on, so tests can substitute a double.
type Service interface {
	// DriveTime returns the human-readable driving duration, e.g. "25 mins".
	DriveTime(ctx context.Context, origin, destination string) (string, error)
	// Distance returns the driving distance in whole kilometers.
	Distance(ctx context.Context, origin, destination string) (int, error)
	// Geocode resolves both place names to their first match.
	Geocode(ctx context.Context, origin, destination string) (Coordinates, Coordinates, error)
}

// Client calls the mapping service over HTTP.
//
// Calls carry the request context but set no client timeout and are never
// retried; a slow upstream stalls the calling request.
type Client struct {
	session *http.Client
	apiKey  string
	baseURL string
}

// NewClient creates a mapping client for the given API key and base URL.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("maps api key is empty")
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("maps base URL is empty")
	}

	return &Client{
		session: &http.Client{},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type distanceMatrixResponse struct {
	Rows []struct {
		Elements []struct {
			Distance *struct {
				Text string `json:"text"`
			} `json:"distance"`
			Duration *struct {
				Text string `json:"text"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *Client) newRequest(ctx context.Context, endpoint string, params map[string]string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	q := req.URL.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("key", c.apiKey)
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, decoded any) error {
	resp, err := c.session.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(decoded); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) distanceMatrix(ctx context.Context, origin, destination string) (*distanceMatrixResponse, error) {
	req, err := c.newRequest(ctx, "/maps/api/distancematrix/json", map[string]string{
		"origins":      origin,
		"destinations": destination,
		"mode":         "driving",
	})
	if err != nil {
		return nil, err
	}

	var decoded distanceMatrixResponse
	if err := c.do(req, &decoded); err != nil {
		return nil, fmt.Errorf("distance matrix %q -> %q: %w", origin, destination, err)
	}
	return &decoded, nil
}

// DriveTime returns the duration text of the first matrix element.
func (c *Client) DriveTime(ctx context.Context, origin, destination string) (string, error) {
	decoded, err := c.distanceMatrix(ctx, origin, destination)
	if err != nil {
		return "", err
	}

	if len(decoded.Rows) == 0 || len(decoded.Rows[0].Elements) == 0 || decoded.Rows[0].Elements[0].Duration == nil {
		return "", fmt.Errorf("drive time %q -> %q: response missing duration", origin, destination)
	}
	return decoded.Rows[0].Elements[0].Duration.Text, nil
}

// Distance returns the driving distance in whole kilometers. A response with
// no distance field means no drivable route and yields ErrNoRoute; everything
// else (transport failure, bad JSON, unparseable text) is an ordinary error.
func (c *Client) Distance(ctx context.Context, origin, destination string) (int, error) {
	decoded, err := c.distanceMatrix(ctx, origin, destination)
	if err != nil {
		return 0, err
	}

	if len(decoded.Rows) == 0 || len(decoded.Rows[0].Elements) == 0 || decoded.Rows[0].Elements[0].Distance == nil {
		return 0, ErrNoRoute
	}

	km, err := parseDistanceText(decoded.Rows[0].Elements[0].Distance.Text)
	if err != nil {
		return 0, fmt.Errorf("distance %q -> %q: %w", origin, destination, err)
	}
	return km, nil
}

// Geocode resolves origin and destination to their first geocoding matches.
func (c *Client) Geocode(ctx context.Context, origin, destination string) (Coordinates, Coordinates, error) {
	originCoord, err := c.geocodeOne(ctx, origin)
	if err != nil {
		return Coordinates{}, Coordinates{}, err
	}

	destCoord, err := c.geocodeOne(ctx, destination)
	if err != nil {
		return Coordinates{}, Coordinates{}, err
	}

	return originCoord, destCoord, nil
}

func (c *Client) geocodeOne(ctx context.Context, place string) (Coordinates, error) {
	req, err := c.newRequest(ctx, "/maps/api/geocode/json", map[string]string{
		"address": place,
	})
	if err != nil {
		return Coordinates{}, err
	}

	var decoded geocodeResponse
	if err := c.do(req, &decoded); err != nil {
		return Coordinates{}, fmt.Errorf("geocode %q: %w", place, err)
	}

	if len(decoded.Results) == 0 {
		return Coordinates{}, fmt.Errorf("no geocode results for %q", place)
	}

	loc := decoded.Results[0].Geometry.Location
	return Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}
