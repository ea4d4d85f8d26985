package domain

import (
	"fmt"
	"math"
)

// Location represents a geographic location
type Location struct {
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Region    string  `json:"region,omitempty"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Elevation float64 `json:"elevation,omitempty"` // In meters above sea level
}

// NewLocation creates a new Location
func NewLocation(name, city, country string, lat, lon float64, timezone string) *Location {
	return &Location{
		Name:      name,
		City:      city,
		Country:   country,
		Latitude:  lat,
		Longitude: lon,
		Timezone:  timezone,
	}
}

// IsValidCoordinates checks if the coordinates are valid
func (l Location) IsValidCoordinates() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

// FormatLatitude formats latitude for display with direction
func (l Location) FormatLatitude() string {
	direction := "N"
	lat := l.Latitude
	if lat < 0 {
		direction = "S"
		lat = -lat
	}

	degrees := int(lat)
	minutes := (lat - float64(degrees)) * 60

	return fmt.Sprintf("%d°%02.0f'%s", degrees, minutes, direction)
}

// FormatLongitude formats longitude for display with direction
func (l Location) FormatLongitude() string {
	direction := "E"
	lon := l.Longitude
	if lon < 0 {
		direction = "W"
		lon = -lon
	}

	degrees := int(lon)
	minutes := (lon - float64(degrees)) * 60

	return fmt.Sprintf("%d°%02.0f'%s", degrees, minutes, direction)
}

// FormatCoordinates formats both latitude and longitude
func (l Location) FormatCoordinates() string {
	return fmt.Sprintf("%s, %s", l.FormatLatitude(), l.FormatLongitude())
}

// Validate checks if the location data is valid
func (l Location) Validate() error {
	if l.City == "" {
		return fmt.Errorf("city name is required")
	}

	if l.Country == "" {
		return fmt.Errorf("country is required")
	}

	if !l.IsValidCoordinates() {
		return fmt.Errorf("invalid coordinates: latitude must be between -90 and 90, longitude between -180 and 180")
	}

	if l.Timezone == "" {
		return fmt.Errorf("timezone is required")
	}

	return nil
}

// String returns a string representation of the location
func (l Location) String() string {
	if l.Region != "" {
		return fmt.Sprintf("%s, %s, %s (%s)", l.City, l.Region, l.Country, l.FormatCoordinates())
	}
	return fmt.Sprintf("%s, %s (%s)", l.City, l.Country, l.FormatCoordinates())
}

// Equals checks if two locations are approximately equal
func (l Location) Equals(other Location) bool {
	const tolerance = 0.001 // ~100 meters

	return math.Abs(l.Latitude-other.Latitude) < tolerance &&
		math.Abs(l.Longitude-other.Longitude) < tolerance
}

// GetDisplayName returns the most appropriate display name for the location
func (l Location) GetDisplayName() string {
	if l.Name != "" {
		return l.Name
	}
	if l.City != "" {
		return l.City
	}
	return l.String()
}
