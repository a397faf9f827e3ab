package report

import "github.com/coldwatch/coldwatch/internal/models"

// ComplianceKPI summarizes how many of a channel's readings sit inside the
// acceptable range.
type ComplianceKPI struct {
	Channel    string  `json:"channel"`
	SafeCount  int     `json:"safe_count"`
	OutCount   int     `json:"out_count"`
	TotalCount int     `json:"total_count"`
	Ratio      float64 `json:"ratio"`
}

// Compliance computes the per-channel compliance KPI. An empty dataset
// yields ratio 0, never a division error.
func Compliance(d models.ChannelDataset, rng Range) ComplianceKPI {
	kpi := ComplianceKPI{Channel: d.Channel}
	for _, r := range d.Readings {
		kpi.TotalCount++
		if rng.Contains(r.Temperature) {
			kpi.SafeCount++
		}
	}
	kpi.OutCount = kpi.TotalCount - kpi.SafeCount
	if kpi.TotalCount > 0 {
		kpi.Ratio = float64(kpi.SafeCount) / float64(kpi.TotalCount)
	}
	return kpi
}

// ComplianceAll computes compliance for every channel, sorted by name.
func ComplianceAll(channels map[string]models.ChannelDataset, rng Range) []ComplianceKPI {
	names := ChannelNames(channels)
	out := make([]ComplianceKPI, 0, len(names))
	for _, name := range names {
		out = append(out, Compliance(channels[name], rng))
	}
	return out
}

// ChannelSummary holds the min/avg/max temperatures of one channel.
type ChannelSummary struct {
	Channel string  `json:"channel"`
	AvgTemp float64 `json:"avg_temp"`
	MinTemp float64 `json:"min_temp"`
	MaxTemp float64 `json:"max_temp"`
}

// Summary computes avg/min/max over a channel's readings. ok is false for
// an empty dataset: the summary is absent, not zero.
func Summary(d models.ChannelDataset) (ChannelSummary, bool) {
	if d.Empty() {
		return ChannelSummary{}, false
	}
	s := ChannelSummary{
		Channel: d.Channel,
		MinTemp: d.Readings[0].Temperature,
		MaxTemp: d.Readings[0].Temperature,
	}
	var sum float64
	for _, r := range d.Readings {
		sum += r.Temperature
		if r.Temperature < s.MinTemp {
			s.MinTemp = r.Temperature
		}
		if r.Temperature > s.MaxTemp {
			s.MaxTemp = r.Temperature
		}
	}
	s.AvgTemp = sum / float64(len(d.Readings))
	return s, true
}

// SummaryAll summarizes every non-empty channel, sorted by name. Channels
// without readings are omitted entirely.
func SummaryAll(channels map[string]models.ChannelDataset) []ChannelSummary {
	names := ChannelNames(channels)
	out := make([]ChannelSummary, 0, len(names))
	for _, name := range names {
		if s, ok := Summary(channels[name]); ok {
			out = append(out, s)
		}
	}
	return out
}
