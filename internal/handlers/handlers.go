package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/swelljoe/wthr-current/internal/weather"
)

// Summarizer defines the weather operation needed by handlers
type Summarizer interface {
	Current(lat, lon float64) (*weather.Summary, error)
}

// Handlers holds dependencies for HTTP handlers
type Handlers struct {
	weather    Summarizer
	configured bool
	logger     *log.Logger
}

// New creates a new Handlers instance. configured reports whether an
// upstream API key is set and only affects /health.
func New(wService Summarizer, configured bool, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.Default()
	}
	return &Handlers{
		weather:    wService,
		configured: configured,
		logger:     logger,
	}
}

// Register adds the routes to mux
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.HandleIndex)
	mux.HandleFunc("/current", h.HandleCurrent)
	mux.HandleFunc("/health", h.HandleHealth)
}

// HandleIndex returns a usage hint pointing at this server's /current
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	base := baseURL(r)
	h.logger.Println(base)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "Check the current weather conditions at %s/current?lat=LATITUDE&long=LONGITUDE", base)
}

// HandleCurrent returns the weather summary for ?lat=&long=
func (h *Handlers) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("long"), 64)
	if errLat != nil || errLon != nil {
		http.Error(w, "Bad Lat/Long Values", http.StatusBadRequest)
		return
	}

	summary, err := h.weather.Current(lat, lon)
	if err != nil {
		if weather.IsValidation(err) {
			http.Error(w, "Bad Lat/Long Values", http.StatusBadRequest)
			return
		}
		h.logger.Printf("err: %v", err)
		http.Error(w, fmt.Sprintf("Server Error. Exception: %v", err), http.StatusInternalServerError)
		return
	}

	data, err := json.Marshal(summary)
	if err != nil {
		h.logger.Printf("JSON encode error: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		h.logger.Printf("Response write error: %v", err)
	}
}

// HandleHealth handles health check endpoint
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "ok"
	if !h.configured {
		status = "no_api_key"
	}

	w.Write([]byte(`{"status":"` + status + `"}`))
}

// Logging logs method, path and duration of every request
func Logging(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger.Printf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
		logger.Printf("%s %s done in %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
