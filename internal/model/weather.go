package model

import "math"

// GeoLocation is a resolved point on the globe
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether both coordinates are finite real numbers
func (l GeoLocation) Valid() bool {
	return !math.IsNaN(l.Latitude) && !math.IsInf(l.Latitude, 0) &&
		!math.IsNaN(l.Longitude) && !math.IsInf(l.Longitude, 0)
}

// WeatherSnapshot holds the current conditions at a location
type WeatherSnapshot struct {
	Timezone       string  `json:"timezone"`
	UTCOffsetHours float64 `json:"offset"`
	Summary        string  `json:"summary"`

	TemperatureC             float64 `json:"temperature"`
	DewPointC                float64 `json:"dewPoint"`
	Humidity                 float64 `json:"humidity"` // fraction in [0,1]
	PrecipIntensityMmPerHour float64 `json:"precipIntensity"`
	PrecipProbability        float64 `json:"precipProbability"` // fraction in [0,1]
	WindSpeedMph             float64 `json:"windSpeed"`
	VisibilityMiles          float64 `json:"visibility"` // capped at 10
	CloudCover               float64 `json:"cloudCover"` // fraction in [0,1]
	PressureMillibars        float64 `json:"pressure"`
	OzoneDobsonUnits         float64 `json:"ozone"`
}
