package handlers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"fueltrip/internal/flash"
	"fueltrip/internal/fuel"
	"fueltrip/internal/maps"
	"fueltrip/internal/models"
)

// PlannerViewModel is the data for the home and route-display pages (both
// render the index view; the route page carries coordinates and saved
// preferences back in).
type PlannerViewModel struct {
	BasePage
	FuelOptions    []string
	EconomyOptions []fuel.EconomyOption
	FuelType       string
	Economy        string
	OriginLat      string
	OriginLng      string
	DestLat        string
	DestLng        string
	Error          string
}

// Index renders the home page with the fuel and economy option lists.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, "index.html", PlannerViewModel{
		BasePage:       h.base(w, r),
		FuelOptions:    fuel.Options(),
		EconomyOptions: fuel.EconomyOptions(),
	})
}

// Route renders the route-display page. Coordinates and the error notice come
// from query parameters; absent parameters stay empty. Saved fuel preferences
// are read from cookies for re-selection.
func (h *Handlers) Route(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fuelType, economy := h.prefs.Load(r)

	h.render(w, "index.html", PlannerViewModel{
		BasePage:       h.base(w, r),
		FuelOptions:    fuel.Options(),
		EconomyOptions: fuel.EconomyOptions(),
		FuelType:       fuelType,
		Economy:        economy,
		OriginLat:      q.Get("origin_lat"),
		OriginLng:      q.Get("origin_lng"),
		DestLat:        q.Get("dest_lat"),
		DestLng:        q.Get("dest_lng"),
		Error:          q.Get("error"),
	})
}

// Save runs the route-planning flow: distance, drive time, fuel cost,
// geocoding, then a redirect to the route page carrying the coordinates, with
// preference cookies set and the result notices queued.
func (h *Handlers) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	origin := r.FormValue("origin")
	destination := r.FormValue("destination")
	economy := r.FormValue("economy")
	fuelType := r.FormValue("fuel")

	ctx := r.Context()

	distance, err := h.maps.Distance(ctx, origin, destination)
	if errors.Is(err, maps.ErrNoRoute) {
		q := url.Values{"error": {"Could not find a valid route"}}
		http.Redirect(w, r, "/route?"+q.Encode(), http.StatusFound)
		return
	}
	if err != nil {
		log.Printf("Distance error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// A second upstream call; the distance response is not reused.
	driveTime, err := h.maps.DriveTime(ctx, origin, destination)
	if err != nil {
		log.Printf("DriveTime error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	litresPer100, err := strconv.Atoi(economy)
	if err != nil {
		http.Error(w, "Invalid economy selection", http.StatusBadRequest)
		return
	}

	price := fuel.UnitPrice(fuelType)
	litres, cost := fuel.ComputeCost(distance, litresPer100, price)

	originCoord, destCoord, err := h.maps.Geocode(ctx, origin, destination)
	if err != nil {
		log.Printf("Geocode error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.prefs.Save(w, fuelType, economy)
	flash.Set(w, []string{
		fmt.Sprintf("%d kilometers travelled", distance),
		fmt.Sprintf("%.0f litres used", math.Round(litres)),
		fmt.Sprintf("%.0f dollars worth of fuel", math.Round(cost)),
		fmt.Sprintf("%s total drive time", driveTime),
	})

	q := url.Values{}
	q.Set("origin_lat", formatCoord(originCoord.Lat))
	q.Set("origin_lng", formatCoord(originCoord.Lng))
	q.Set("dest_lat", formatCoord(destCoord.Lat))
	q.Set("dest_lng", formatCoord(destCoord.Lng))
	http.Redirect(w, r, "/route?"+q.Encode(), http.StatusFound)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TripsViewModel is the data for the saved-trips page.
type TripsViewModel struct {
	BasePage
	Trip  *models.SavedTrip
	Trips []models.SavedTrip
}

// SavedTrips stores the sample trip and renders all stored trips.
func (h *Handlers) SavedTrips(w http.ResponseWriter, r *http.Request) {
	trip, err := h.db.CreateTrip("Perth", "Sydney")
	if err != nil {
		log.Printf("CreateTrip error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	trips, err := h.db.ListTrips()
	if err != nil {
		log.Printf("ListTrips error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "savedtrips.html", TripsViewModel{
		BasePage: h.base(w, r),
		Trip:     trip,
		Trips:    trips,
	})
}
