package api

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coldwatch/coldwatch/internal/ingest"
	"github.com/coldwatch/coldwatch/internal/models"
	"github.com/coldwatch/coldwatch/internal/report"
)

//go:embed templates/*
var templateFS embed.FS

// errBadYear marks a malformed ?year= query parameter.
var errBadYear = errors.New("invalid year parameter")

// Config carries the dashboard options: the acceptable range and the
// selected year (0 = all years). Both can be overridden per request.
type Config struct {
	Range        report.Range
	SelectedYear int
}

type Server struct {
	loader *ingest.Loader
	cfg    Config
	port   string
	tmpl   *template.Template
}

func NewServer(loader *ingest.Loader, cfg Config, port string) *Server {
	funcs := template.FuncMap{
		"pct": func(f float64) string {
			return fmt.Sprintf("%.1f%%", f*100)
		},
	}
	tmpl := template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))

	return &Server{
		loader: loader,
		cfg:    cfg,
		port:   port,
		tmpl:   tmpl,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/channels", s.handleAPIChannels)
	mux.HandleFunc("/api/years", s.handleAPIYears)
	mux.HandleFunc("/api/compliance", s.handleAPICompliance)
	mux.HandleFunc("/api/summary", s.handleAPISummary)
	mux.HandleFunc("/api/today", s.handleAPIToday)
	mux.HandleFunc("/api/weekly", s.handleAPIWeekly)
	mux.HandleFunc("/api/monthly", s.handleAPIMonthly)
	mux.HandleFunc("/api/peak-hours", s.handleAPIPeakHours)
	mux.HandleFunc("/api/alerts", s.handleAPIAlerts)
	mux.HandleFunc("/api/reload", s.handleAPIReload)
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// datasets loads the normalized channels and applies the effective year
// filter: the request's ?year= when present, otherwise the configured
// selected year. The returned year is the one actually applied.
func (s *Server) datasets(r *http.Request) (map[string]models.ChannelDataset, int, error) {
	year := s.cfg.SelectedYear
	if q := r.URL.Query().Get("year"); q != "" {
		y, err := strconv.Atoi(q)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %q", errBadYear, q)
		}
		year = y
	}

	channels, err := s.loader.Load(r.Context())
	if err != nil {
		return nil, 0, err
	}
	return report.FilterYearAll(channels, year), year, nil
}
