package report

import (
	"sort"
	"time"

	"github.com/coldwatch/coldwatch/internal/models"
)

// LatestMonth returns the maximum MonthPeriod present across all channels.
// ok is false when no channel has any readings.
func LatestMonth(channels map[string]models.ChannelDataset) (string, bool) {
	latest := ""
	for _, d := range channels {
		for _, r := range d.Readings {
			if r.MonthPeriod > latest {
				latest = r.MonthPeriod
			}
		}
	}
	return latest, latest != ""
}

// HourBucket is the out-of-range count for one display hour.
type HourBucket struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// OutOfRangeHistogram buckets one channel's readings in the given month by
// the hour of their timestamp (hour 0 displayed as 24) and counts readings
// outside the acceptable range. Every hour with readings in the month gets
// a bucket, including hours whose out-of-range count is zero.
func OutOfRangeHistogram(d models.ChannelDataset, month string, rng Range) []HourBucket {
	counts := make(map[int]int)
	present := make(map[int]bool)
	for _, r := range d.Readings {
		if r.MonthPeriod != month {
			continue
		}
		h := displayHour(r.Timestamp.Hour())
		present[h] = true
		if !rng.Contains(r.Temperature) {
			counts[h]++
		}
	}

	hours := make([]int, 0, len(present))
	for h := range present {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	out := make([]HourBucket, 0, len(hours))
	for _, h := range hours {
		out = append(out, HourBucket{Hour: h, Count: counts[h]})
	}
	return out
}

// LatestRealDay is the maximum BaseDate across every channel combined. It
// anchors the alert list: alerting always looks at the single most recent
// day present anywhere in the data.
func LatestRealDay(channels map[string]models.ChannelDataset) (time.Time, bool) {
	var latest time.Time
	for _, d := range channels {
		for _, r := range d.Readings {
			if r.BaseDate.After(latest) {
				latest = r.BaseDate
			}
		}
	}
	return latest, !latest.IsZero()
}

// Alert is one out-of-range reading on the latest real day.
type Alert struct {
	SlNo        int     `json:"sl_no"`
	Channel     string  `json:"channel"`
	Timestamp   string  `json:"timestamp"` // "2006-01-02 15:04"
	Temperature float64 `json:"temperature"`
}

// LatestDayAlerts lists every out-of-range reading on the latest real day,
// channels in name order, numbered from 1. An empty list is a valid
// all-clear result, not an error. A channel with no readings on that day
// simply contributes nothing.
func LatestDayAlerts(channels map[string]models.ChannelDataset, rng Range) []Alert {
	day, ok := LatestRealDay(channels)
	if !ok {
		return nil
	}

	var alerts []Alert
	for _, name := range ChannelNames(channels) {
		for _, r := range channels[name].Readings {
			if !r.BaseDate.Equal(day) || rng.Contains(r.Temperature) {
				continue
			}
			alerts = append(alerts, Alert{
				SlNo:        len(alerts) + 1,
				Channel:     name,
				Timestamp:   r.Timestamp.Format("2006-01-02 15:04"),
				Temperature: r.Temperature,
			})
		}
	}
	return alerts
}
