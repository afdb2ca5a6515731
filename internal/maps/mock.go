package maps

import (
	"context"
	"fmt"
)

// Mock is an in-memory Service for tests, keyed by origin|destination pairs.
type Mock struct {
	routes map[string]mockRoute
	places map[string]Coordinates
}

type mockRoute struct {
	km       int
	duration string
}

func NewMock() *Mock {
	return &Mock{
		routes: make(map[string]mockRoute),
		places: make(map[string]Coordinates),
	}
}

// AddRoute registers a distance and duration for an origin/destination pair.
func (m *Mock) AddRoute(from, to string, km int, duration string) {
	m.routes[from+"|"+to] = mockRoute{km: km, duration: duration}
}

// AddPlace registers geocoding coordinates for a place name.
func (m *Mock) AddPlace(name string, lat, lng float64) {
	m.places[name] = Coordinates{Lat: lat, Lng: lng}
}

func (m *Mock) DriveTime(ctx context.Context, origin, destination string) (string, error) {
	r, ok := m.routes[origin+"|"+destination]
	if !ok {
		return "", fmt.Errorf("missing pair %q -> %q", origin, destination)
	}
	return r.duration, nil
}

func (m *Mock) Distance(ctx context.Context, origin, destination string) (int, error) {
	r, ok := m.routes[origin+"|"+destination]
	if !ok {
		return 0, ErrNoRoute
	}
	return r.km, nil
}

func (m *Mock) Geocode(ctx context.Context, origin, destination string) (Coordinates, Coordinates, error) {
	o, ok := m.places[origin]
	if !ok {
		return Coordinates{}, Coordinates{}, fmt.Errorf("no geocode results for %q", origin)
	}
	d, ok := m.places[destination]
	if !ok {
		return Coordinates{}, Coordinates{}, fmt.Errorf("no geocode results for %q", destination)
	}
	return o, d, nil
}
