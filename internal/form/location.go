package form

import (
	"strings"

	"github.com/volunteerin/partner-gateway/internal/maplink"
)

// minPublishAddressLen is the shortest address accepted when publishing.
const minPublishAddressLen = 10

// LocationSection owns where the event happens.  Coordinates can be typed
// manually or derived from a pasted maps URL; a parsable URL always wins
// over manual entry.
type LocationSection struct {
	Province  string `json:"province"`
	Regency   string `json:"regency"`
	Address   string `json:"address"`
	Gmaps     string `json:"gmaps"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

func (s *LocationSection) Name() string { return SectionLocation }

// Normalize trims the fields and resolves the pasted map link.  A URL that
// matches neither known pattern leaves the coordinates as they are.
func (s *LocationSection) Normalize() {
	s.Province = strings.TrimSpace(s.Province)
	s.Regency = strings.TrimSpace(s.Regency)
	s.Address = strings.TrimSpace(s.Address)
	s.Gmaps = strings.TrimSpace(s.Gmaps)
	s.Latitude = strings.TrimSpace(s.Latitude)
	s.Longitude = strings.TrimSpace(s.Longitude)
	if s.Gmaps != "" {
		if lat, lng, ok := maplink.Extract(s.Gmaps); ok {
			s.Latitude = lat
			s.Longitude = lng
		}
	}
}

func (s *LocationSection) Validate() []string {
	var errs []string
	if s.Province == "" {
		errs = append(errs, "province is required")
	}
	if s.Regency == "" {
		errs = append(errs, "regency is required")
	}
	if s.Address == "" {
		errs = append(errs, "address is required")
	}
	return errs
}

func (s *LocationSection) ValidateForPublish() []string {
	errs := s.Validate()
	if s.Address != "" && len(s.Address) < minPublishAddressLen {
		errs = append(errs, "address must be at least 10 characters to publish")
	}
	if s.Latitude == "" || s.Longitude == "" {
		errs = append(errs, "coordinates are required to publish")
	}
	return errs
}

func (s *LocationSection) Data() map[string]any {
	return map[string]any{
		"province":  s.Province,
		"regency":   s.Regency,
		"address":   s.Address,
		"gmaps":     s.Gmaps,
		"latitude":  s.Latitude,
		"longitude": s.Longitude,
	}
}
