package weather

import "encoding/json"

// Coordinates is a latitude/longitude pair in decimal degrees
type Coordinates struct {
	Lat float64
	Lon float64
}

// Feels is the subjective "feels like" category for an air temperature
type Feels string

const (
	FeelsHot      Feels = "Hot"
	FeelsWarm     Feels = "Warm"
	FeelsModerate Feels = "Moderate"
	FeelsCool     Feels = "Cool"
	FeelsCold     Feels = "Cold"
)

// noAlerts is what the Alerts field reads when the upstream sent no alerts key.
const noAlerts = "None"

// OneCallResponse is the subset of the one call response we consume
type OneCallResponse struct {
	Current *struct {
		Weather []struct {
			Description *string `json:"description"`
		} `json:"weather"`
		FeelsLike *float64 `json:"feels_like"`
	} `json:"current"`
	// Alerts stays empty when the key is absent, which is distinct from [].
	Alerts json.RawMessage `json:"alerts"`
}

// Alert is a single upstream alert with an inclusive validity window
type Alert struct {
	Start int64  `json:"start"`
	End   int64  `json:"end"`
	Event string `json:"event"`
}

// upstreamAlert is the wire form of Alert; nil fields were absent.
type upstreamAlert struct {
	Start *int64  `json:"start"`
	End   *int64  `json:"end"`
	Event *string `json:"event"`
}

// AlertSet holds alert event names split by whether they are in effect now
type AlertSet struct {
	Active     []string `json:"active"`
	Forecasted []string `json:"forecasted"`
}

// Summary is the payload returned by /current
type Summary struct {
	CurrentConditions string
	Feels             Feels
	// Alerts is nil when the upstream response carried no alerts at all.
	Alerts *AlertSet
}

// MarshalJSON renders a nil Alerts as the literal "None".
func (s Summary) MarshalJSON() ([]byte, error) {
	var alerts any = noAlerts
	if s.Alerts != nil {
		alerts = s.Alerts
	}
	return json.Marshal(struct {
		CurrentConditions string
		Feels             Feels
		Alerts            any
	}{s.CurrentConditions, s.Feels, alerts})
}
