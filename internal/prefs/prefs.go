// Package prefs remembers the user's last fuel choices in browser cookies.
package prefs

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// Cookie names. The combined cookie duplicates the two discrete ones and is
// kept for compatibility with existing clients.
const (
	FuelTypeCookie = "fuel_type"
	EconomyCookie  = "economy"
	CombinedCookie = "testing"
)

type combined struct {
	FuelType string `json:"fueltype"`
	Economy  string `json:"fueleconomy"`
}

// Store reads and writes fuel preference cookies. Values round-trip as-is:
// nothing is validated against the option lists, so a stricter variant can be
// swapped in here without touching handlers.
type Store struct{}

// Save sets the fuel type and economy cookies plus the combined JSON cookie.
// Session-lifetime cookies with browser-default flags.
func (Store) Save(w http.ResponseWriter, fuelType, economy string) {
	http.SetCookie(w, &http.Cookie{
		Name:  FuelTypeCookie,
		Value: url.QueryEscape(fuelType),
		Path:  "/",
	})
	http.SetCookie(w, &http.Cookie{
		Name:  EconomyCookie,
		Value: url.QueryEscape(economy),
		Path:  "/",
	})

	blob, err := json.Marshal(combined{FuelType: fuelType, Economy: economy})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:  CombinedCookie,
		Value: url.QueryEscape(string(blob)),
		Path:  "/",
	})
}

// Load returns the saved fuel type and economy, empty when never set.
func (Store) Load(r *http.Request) (fuelType, economy string) {
	if c, err := r.Cookie(FuelTypeCookie); err == nil {
		if v, err := url.QueryUnescape(c.Value); err == nil {
			fuelType = v
		}
	}
	if c, err := r.Cookie(EconomyCookie); err == nil {
		if v, err := url.QueryUnescape(c.Value); err == nil {
			economy = v
		}
	}
	return fuelType, economy
}
