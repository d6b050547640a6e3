package weather

import "fmt"

// User-facing failure texts, one per pipeline stage
const (
	GeocodeFailureMessage  = "Failed getting address info."
	ForecastFailureMessage = "Failed getting weather forecast info."
)

// GeocodeError reports that the address could not be resolved
type GeocodeError struct {
	Address string
	Err     error
}

func (e *GeocodeError) Error() string {
	return fmt.Sprintf("geocode %q: %v", e.Address, e.Err)
}

func (e *GeocodeError) Unwrap() error { return e.Err }

// UserMessage is the text shown in the channel
func (e *GeocodeError) UserMessage() string { return GeocodeFailureMessage }

// ForecastError reports that the forecast lookup failed
type ForecastError struct {
	Latitude  float64
	Longitude float64
	Err       error
}

func (e *ForecastError) Error() string {
	return fmt.Sprintf("forecast (%f, %f): %v", e.Latitude, e.Longitude, e.Err)
}

func (e *ForecastError) Unwrap() error { return e.Err }

func (e *ForecastError) UserMessage() string { return ForecastFailureMessage }
