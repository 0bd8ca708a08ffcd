// Package narrative derives the short human-readable location string used in
// prompts and fallback descriptions from a structured geocoding address.
package narrative

import (
	"fmt"
	"strings"

	"github.com/datakota/usaha-assistant/internal/core/domain"
)

const coordinatePrefix = "sekitar koordinat"

// Summary assembles the compact locality string from the address, keeping a
// fixed component priority order: one of neighbourhood/suburb/village, one of
// city_district/town/city, then county, then state. Empty components are
// skipped. The order is a compatibility contract with existing callers.
func Summary(addr *domain.Address) string {
	if addr == nil {
		return ""
	}
	parts := []string{
		firstNonEmpty(addr.Neighbourhood, addr.Suburb, addr.Village),
		firstNonEmpty(addr.CityDistrict, addr.Town, addr.City),
		addr.County,
		addr.State,
	}
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// Build returns the location narrative for an address, falling back layer by
// layer: road + summary, summary alone, the provider display name, and
// finally the raw coordinates.
func Build(addr *domain.Address, lat, lon float64) string {
	summary := Summary(addr)
	road := ""
	display := ""
	if addr != nil {
		road = addr.Road
		display = strings.TrimSpace(addr.DisplayName)
	}

	switch {
	case road != "" && summary != "":
		return road + ", " + summary
	case summary != "":
		return summary
	case display != "":
		return display
	default:
		return CoordinateFallback(lat, lon)
	}
}

// CoordinateFallback renders the narrative used when no address data is
// available. Exactly six decimal places, by contract.
func CoordinateFallback(lat, lon float64) string {
	return fmt.Sprintf("%s %.6f, %.6f", coordinatePrefix, lat, lon)
}

// IsCoordinateFallback reports whether a narrative is the raw-coordinate
// form, which selects the shorter fallback description template.
func IsCoordinateFallback(s string) bool {
	return strings.HasPrefix(s, coordinatePrefix)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
