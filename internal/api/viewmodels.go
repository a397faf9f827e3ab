package api

import (
	"net/http"

	"github.com/coldwatch/coldwatch/internal/report"
)

// IndexData is everything the dashboard index page renders: compliance
// donut data, summary table, and the latest-day alert list.
type IndexData struct {
	SelectedYear int
	Years        []int
	Range        report.Range
	Compliance   []report.ComplianceKPI
	Summary      []report.ChannelSummary
	LatestMonth  string
	HasData      bool
	LatestDay    string
	AllClear     bool
	Alerts       []report.Alert
}

func (s *Server) getIndexData(r *http.Request) (IndexData, error) {
	all, err := s.loader.Load(r.Context())
	if err != nil {
		return IndexData{}, err
	}

	channels, year, err := s.datasets(r)
	if err != nil {
		return IndexData{}, err
	}

	data := IndexData{
		SelectedYear: year,
		Years:        report.Years(all),
		Range:        s.cfg.Range,
		Compliance:   report.ComplianceAll(channels, s.cfg.Range),
		Summary:      report.SummaryAll(channels),
	}

	if month, ok := report.LatestMonth(channels); ok {
		data.LatestMonth = month
	}

	if day, ok := report.LatestRealDay(channels); ok {
		data.HasData = true
		data.LatestDay = day.Format("2006-01-02")
		data.Alerts = report.LatestDayAlerts(channels, s.cfg.Range)
		data.AllClear = len(data.Alerts) == 0
	}
	return data, nil
}
