package weather

import (
	"fmt"
	"strconv"
	"time"

	"slack_weather/internal/model"

	"github.com/slack-go/slack"
)

const (
	attachmentColor = "#36a64f"
	fallbackPrefix  = "Summary of the weather forecast for "
)

// Format builds the Slack message for a snapshot. It is pure: the same
// snapshot, query and time always give the same message.
func Format(snapshot model.WeatherSnapshot, query string, at time.Time) model.ChatResponse {
	return model.ChatResponse{
		ResponseType: slack.ResponseTypeInChannel,
		Text:         snapshot.Summary,
		Timestamp:    at.UnixMilli(),
		Attachments: []slack.Attachment{
			{
				Fallback: fallbackPrefix + query,
				Color:    attachmentColor,
				Fields:   Fields(snapshot),
			},
		},
	}
}

// Fields returns the fixed, ordered field list shown for a snapshot
func Fields(s model.WeatherSnapshot) []slack.AttachmentField {
	return []slack.AttachmentField{
		field("Timezone", s.Timezone),
		field("Offset", number(s.UTCOffsetHours)),
		field("Precipitation intensity", withUnit(s.PrecipIntensityMmPerHour, "millimeters per hour")),
		field("Precipitation probability", percent(s.PrecipProbability)),
		field("Temperature", withUnit(s.TemperatureC, "Degrees Celsius")),
		field("Dew point", withUnit(s.DewPointC, "Degrees Celsius")),
		field("Humidity", percent(s.Humidity)),
		field("Wind speed", withUnit(s.WindSpeedMph, "miles per hour")),
		field("Visibility", withUnit(s.VisibilityMiles, "miles")),
		field("Cloud cover", percent(s.CloudCover)),
		field("Pressure", withUnit(s.PressureMillibars, "millibars")),
		field("Ozone", withUnit(s.OzoneDobsonUnits, "Dobson units")),
	}
}

func field(title, value string) slack.AttachmentField {
	return slack.AttachmentField{Title: title, Value: value, Short: true}
}

// percent renders a [0,1] fraction as "D.DD%"
func percent(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}

func withUnit(v float64, unit string) string {
	return number(v) + " (" + unit + ")"
}

// number renders the shortest decimal that round-trips, e.g. 18, 0.42, 1015.3
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
