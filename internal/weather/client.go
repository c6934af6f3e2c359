package weather

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the OpenWeather 2.5 API root
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5/"

	endpointOneCall = "onecall"
	defaultAgent    = "wthr-current/1.0"

	// maxBodySize caps how much of a successful response is read
	maxBodySize = 4 << 20
)

// Client handles OpenWeather API interactions
type Client struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	HTTPClient *http.Client
}

// NewClient creates a new OpenWeather client. A zero timeout leaves the
// http.Client default in place.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		UserAgent:  defaultAgent,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// BuildQuery returns the one call parameters for c. Units are always imperial
// and only the current block and alerts are requested.
func BuildQuery(c Coordinates, apiKey string) url.Values {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(c.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(c.Lon, 'f', -1, 64))
	q.Set("units", "imperial")
	q.Set("exclude", "minutely,hourly,daily")
	q.Set("appid", apiKey)
	return q
}

func (c *Client) get(endpoint string, params url.Values) ([]byte, error) {
	target := strings.TrimRight(c.BaseURL, "/") + "/" + endpoint + "?" + params.Encode()
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return nil, withoutURL(endpoint, err)
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, withoutURL(endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// keep a little of the body, OpenWeather puts the reason there
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("OpenWeather API error: %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, withoutURL(endpoint, err)
	}
	if len(data) > maxBodySize {
		return nil, fmt.Errorf("OpenWeather API response exceeds %d bytes", maxBodySize)
	}
	return data, nil
}

// withoutURL drops the request URL from a *url.Error. The query carries
// the API key and these errors end up in responses and logs.
func withoutURL(endpoint string, err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s %s: %w", uerr.Op, endpoint, uerr.Err)
	}
	return err
}

// FetchOneCall fetches the raw one call response body for c
func (c *Client) FetchOneCall(coords Coordinates) ([]byte, error) {
	return c.get(endpointOneCall, BuildQuery(coords, c.APIKey))
}
