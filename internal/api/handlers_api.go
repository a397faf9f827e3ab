package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coldwatch/coldwatch/internal/models"
	"github.com/coldwatch/coldwatch/internal/report"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeDataError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBadYear) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (s *Server) handleAPIChannels(w http.ResponseWriter, r *http.Request) {
	channels, _, err := s.datasets(r)
	if err != nil {
		writeDataError(w, err)
		return
	}
	writeJSON(w, report.ChannelNames(channels))
}

func (s *Server) handleAPIYears(w http.ResponseWriter, r *http.Request) {
	// Years are always listed from the unfiltered data so the year picker
	// can move off an empty selection.
	channels, err := s.loader.Load(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, report.Years(channels))
}

func (s *Server) handleAPICompliance(w http.ResponseWriter, r *http.Request) {
	channels, _, err := s.datasets(r)
	if err != nil {
		writeDataError(w, err)
		return
	}
	writeJSON(w, report.ComplianceAll(channels, s.cfg.Range))
}

func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	channels, _, err := s.datasets(r)
	if err != nil {
		writeDataError(w, err)
		return
	}
	writeJSON(w, report.SummaryAll(channels))
}

type todayResponse struct {
	Channel string            `json:"channel"`
	HasData bool              `json:"has_data"`
	Note    string            `json:"note,omitempty"`
	Series  *report.DaySeries `json:"series,omitempty"`
	Range   report.Range      `json:"range"`
}

func (s *Server) handleAPIToday(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		http.Error(w, "channel parameter required", http.StatusBadRequest)
		return
	}

	channels, year, err := s.datasets(r)
	if err != nil {
		writeDataError(w, err)
		return
	}

	resp := todayResponse{Channel: channel, Range: s.cfg.Range}

	// The today panel only makes sense for the current year; for a past
	// year there is no "today" to show. The clock is read here, at the
	// request boundary, never inside the aggregation functions.
	if year != 0 && year != time.Now().UTC().Year() {
		resp.Note = "only available for the current year"
		writeJSON(w, resp)
		return
	}

	if series, ok := report.LatestDay(channels[channel]); ok {
		resp.HasData = true
		resp.Series = &series
	}
	writeJSON(w, resp)
}

type seriesResponse struct {
	Channel string                 `json:"channel"`
	Points  []report.PeriodAverage `json:"points"`
	Range   report.Range           `json:"range"`
}

func (s *Server) handleAPIWeekly(w http.ResponseWriter, r *http.Request) {
	s.handleSeries(w, r, report.WeeklyAverages)
}

func (s *Server) handleAPIMonthly(w http.ResponseWriter, r *http.Request) {
	s.handleSeries(w, r, report.MonthlyAverages)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request, agg func(d models.ChannelDataset) []report.PeriodAverage) {
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		http.Error(w, "channel parameter required", http.StatusBadRequest)
		return
	}

	channels, _, err := s.datasets(r)
	if err != nil {
		writeDataError(w, err)
		return
	}

	writeJSON(w, seriesResponse{
		Channel: channel,
		Points:  agg(channels[channel]),
		Range:   s.cfg.Range,
	})
}

type peakHoursResponse struct {
	Channel string              `json:"channel"`
	Month   string              `json:"month,omitempty"`
	HasData bool                `json:"has_data"`
	Buckets []report.HourBucket `json:"buckets,omitempty"`
}

func (s *Server) handleAPIPeakHours(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		http.Error(w, "channel parameter required", http.StatusBadRequest)
		return
	}

	channels, _, err := s.datasets(r)
	if err != nil {
		writeDataError(w, err)
		return
	}

	resp := peakHoursResponse{Channel: channel}
	month, ok := report.LatestMonth(channels)
	if !ok {
		writeJSON(w, resp)
		return
	}

	resp.Month = month
	resp.Buckets = report.OutOfRangeHistogram(channels[channel], month, s.cfg.Range)
	resp.HasData = len(resp.Buckets) > 0
	writeJSON(w, resp)
}

type alertsResponse struct {
	HasData   bool           `json:"has_data"`
	LatestDay string         `json:"latest_day,omitempty"`
	AllClear  bool           `json:"all_clear"`
	Alerts    []report.Alert `json:"alerts"`
}

func (s *Server) handleAPIAlerts(w http.ResponseWriter, r *http.Request) {
	channels, _, err := s.datasets(r)
	if err != nil {
		writeDataError(w, err)
		return
	}

	resp := alertsResponse{Alerts: []report.Alert{}}
	if day, ok := report.LatestRealDay(channels); ok {
		resp.HasData = true
		resp.LatestDay = day.Format("2006-01-02")
		resp.Alerts = report.LatestDayAlerts(channels, s.cfg.Range)
		if resp.Alerts == nil {
			resp.Alerts = []report.Alert{}
		}
		resp.AllClear = len(resp.Alerts) == 0
	}
	writeJSON(w, resp)
}

func (s *Server) handleAPIReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	channels, err := s.loader.Reload(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"reloaded": true,
		"channels": len(channels),
	})
}
