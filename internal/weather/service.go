package weather

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Upstream fetches raw one call bodies. *Client is the production implementation.
type Upstream interface {
	FetchOneCall(c Coordinates) ([]byte, error)
}

// Service turns coordinates into a Summary
type Service struct {
	upstream Upstream
	now      func() time.Time
}

// NewService creates a new weather service backed by upstream
func NewService(upstream Upstream) *Service {
	return &Service{
		upstream: upstream,
		now:      time.Now,
	}
}

// Current validates the coordinates, makes exactly one upstream call and
// summarizes the result. Invalid coordinates never reach the upstream.
func (s *Service) Current(lat, lon float64) (*Summary, error) {
	if !ValidCoordinates(lat, lon) {
		return nil, newError(KindValidation, "Bad Lat/Long Values", nil)
	}

	body, err := s.upstream.FetchOneCall(Coordinates{Lat: lat, Lon: lon})
	if err != nil {
		return nil, newError(KindUpstream, "failed to fetch weather", err)
	}

	return ParseSummary(body, s.now().Unix())
}

// ValidCoordinates reports whether lat is within [-90, 90] and lon within [-180, 180]
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ClassifyFeels maps a Fahrenheit temperature to a Feels category.
// Every band is closed at its lower bound except Hot, so 85 is Warm.
func ClassifyFeels(temp float64) Feels {
	switch {
	case temp > 85:
		return FeelsHot
	case temp >= 70:
		return FeelsWarm
	case temp >= 55:
		return FeelsModerate
	case temp >= 45:
		return FeelsCool
	default:
		return FeelsCold
	}
}

// PartitionAlerts splits alert events into those in effect at now and the
// rest. Expired alerts count as forecasted.
func PartitionAlerts(now int64, alerts []Alert) *AlertSet {
	set := &AlertSet{
		Active:     make([]string, 0),
		Forecasted: make([]string, 0),
	}
	for _, a := range alerts {
		if now >= a.Start && now <= a.End {
			set.Active = append(set.Active, a.Event)
		} else {
			set.Forecasted = append(set.Forecasted, a.Event)
		}
	}
	return set
}

// ParseSummary builds a Summary from a raw one call body, using now (epoch
// seconds) to decide which alerts are active.
func ParseSummary(body []byte, now int64) (*Summary, error) {
	var resp OneCallResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, newError(KindParse, "invalid upstream response", err)
	}

	if resp.Current == nil {
		return nil, newError(KindParse, "invalid upstream response", errors.New("missing current"))
	}
	if resp.Current.FeelsLike == nil {
		return nil, newError(KindParse, "invalid upstream response", errors.New("missing current.feels_like"))
	}
	conditions := resp.Current.Weather
	if len(conditions) == 0 {
		return nil, newError(KindParse, "invalid upstream response", errors.New("missing current.weather"))
	}

	// The last entry is used as the description. OpenWeather lists the
	// primary condition first, so this may not be the intended one, but it
	// is what clients of this endpoint have always received.
	description := conditions[len(conditions)-1].Description
	if description == nil {
		return nil, newError(KindParse, "invalid upstream response", errors.New("missing current.weather description"))
	}

	summary := &Summary{
		CurrentConditions: *description,
		Feels:             ClassifyFeels(*resp.Current.FeelsLike),
	}

	if len(resp.Alerts) > 0 {
		alerts, err := decodeAlerts(resp.Alerts)
		if err != nil {
			return nil, newError(KindParse, "invalid upstream alerts", err)
		}
		summary.Alerts = PartitionAlerts(now, alerts)
	}

	return summary, nil
}

// decodeAlerts requires start, end and event on every entry. A null list
// decodes to no alerts.
func decodeAlerts(raw json.RawMessage) ([]Alert, error) {
	var wire []upstreamAlert
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}

	alerts := make([]Alert, 0, len(wire))
	for i, a := range wire {
		switch {
		case a.Start == nil:
			return nil, fmt.Errorf("alerts[%d]: missing start", i)
		case a.End == nil:
			return nil, fmt.Errorf("alerts[%d]: missing end", i)
		case a.Event == nil:
			return nil, fmt.Errorf("alerts[%d]: missing event", i)
		}
		alerts = append(alerts, Alert{Start: *a.Start, End: *a.End, Event: *a.Event})
	}
	return alerts, nil
}
