package weather

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// mockRoundTripper is a custom RoundTripper for testing
type mockRoundTripper struct {
	handler http.Handler
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := httptest.NewRecorder()
	m.handler.ServeHTTP(rec, req)
	resp := rec.Result()
	return resp, nil
}

// failingRoundTripper simulates a transport failure such as a timeout
type failingRoundTripper struct {
	err error
}

func (f *failingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return nil, f.err
}

func newTestClient(handler http.Handler) *Client {
	return &Client{
		BaseURL:   "https://owm.test/data/2.5/",
		APIKey:    "test-key",
		UserAgent: "test-agent",
		HTTPClient: &http.Client{
			Transport: &mockRoundTripper{handler: handler},
		},
	}
}

func TestBuildQuery(t *testing.T) {
	q := BuildQuery(Coordinates{Lat: 37.7749, Lon: -122.4194}, "secret")

	expected := map[string]string{
		"lat":     "37.7749",
		"lon":     "-122.4194",
		"units":   "imperial",
		"exclude": "minutely,hourly,daily",
		"appid":   "secret",
	}
	if len(q) != len(expected) {
		t.Errorf("expected %d params, got %d: %v", len(expected), len(q), q)
	}
	for k, v := range expected {
		if got := q.Get(k); got != v {
			t.Errorf("expected %s=%s, got %s", k, v, got)
		}
	}
}

func TestFetchOneCall_Success(t *testing.T) {
	body := `{"current":{"weather":[{"description":"clear sky"}],"feels_like":72}}`

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/data/2.5/onecall" {
			t.Errorf("expected path /data/2.5/onecall, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("appid") != "test-key" {
			t.Errorf("expected appid=test-key, got %s", r.URL.Query().Get("appid"))
		}
		if r.URL.Query().Get("lat") != "40.5" {
			t.Errorf("expected lat=40.5, got %s", r.URL.Query().Get("lat"))
		}
		if r.URL.Query().Get("lon") != "-74" {
			t.Errorf("expected lon=-74, got %s", r.URL.Query().Get("lon"))
		}
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("expected User-Agent test-agent, got %s", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})

	data, err := newTestClient(handler).FetchOneCall(Coordinates{Lat: 40.5, Lon: -74})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != body {
		t.Errorf("expected body %q, got %q", body, string(data))
	}
}

func TestFetchOneCall_BaseURLWithoutSlash(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/onecall" {
			t.Errorf("expected path /data/2.5/onecall, got %s", r.URL.Path)
		}
		w.Write([]byte(`{}`))
	})

	client := newTestClient(handler)
	client.BaseURL = "https://owm.test/data/2.5"
	if _, err := client.FetchOneCall(Coordinates{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchOneCall_NonOKStatus(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	})

	_, err := newTestClient(handler).FetchOneCall(Coordinates{Lat: 1, Lon: 1})
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid API key") {
		t.Errorf("expected upstream message in error, got %v", err)
	}
}

func TestFetchOneCall_TransportError(t *testing.T) {
	injected := errors.New("i/o timeout")
	client := &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Transport: &failingRoundTripper{err: injected}},
	}

	_, err := client.FetchOneCall(Coordinates{Lat: 1, Lon: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, injected) {
		t.Errorf("expected wrapped transport error, got %v", err)
	}
}

func TestFetchOneCall_TransportErrorHidesAPIKey(t *testing.T) {
	client := &Client{
		BaseURL:    DefaultBaseURL,
		APIKey:     "SUPERSECRETKEY",
		HTTPClient: &http.Client{Transport: &failingRoundTripper{err: errors.New("connection refused")}},
	}

	_, err := client.FetchOneCall(Coordinates{Lat: 1, Lon: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), "SUPERSECRETKEY") || strings.Contains(err.Error(), "appid") {
		t.Errorf("error leaks the request query: %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected underlying cause in error, got %v", err)
	}
}

func TestFetchOneCall_BodyTooLarge(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte(" "), maxBodySize+1))
	})

	_, err := newTestClient(handler).FetchOneCall(Coordinates{Lat: 1, Lon: 1})
	if err == nil {
		t.Fatal("expected error for oversized body")
	}
	if !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", "k", 0)
	if c.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base URL, got %s", c.BaseURL)
	}
	if c.HTTPClient.Timeout != 0 {
		t.Errorf("expected no client timeout, got %s", c.HTTPClient.Timeout)
	}
	if c.UserAgent == "" {
		t.Error("expected a default User-Agent")
	}
}
