package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/coldwatch/coldwatch/internal/models"
)

// HourlyPoint is one reading positioned on the 1..24 display axis.
type HourlyPoint struct {
	Hour        int       `json:"hour"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
}

// DaySeries is the hourly series of a single calendar day.
type DaySeries struct {
	Date   time.Time     `json:"date"`
	Points []HourlyPoint `json:"points"`
}

// LatestDay returns the hourly series of the most recent BaseDate in the
// dataset, ordered by display hour (hour 0 shown as 24). ok is false when
// the dataset is empty.
func LatestDay(d models.ChannelDataset) (DaySeries, bool) {
	if d.Empty() {
		return DaySeries{}, false
	}

	var latest time.Time
	for _, r := range d.Readings {
		if r.BaseDate.After(latest) {
			latest = r.BaseDate
		}
	}

	series := DaySeries{Date: latest}
	for _, r := range d.Readings {
		if !r.BaseDate.Equal(latest) {
			continue
		}
		series.Points = append(series.Points, HourlyPoint{
			Hour:        displayHour(r.HourOfDay),
			Timestamp:   r.Timestamp,
			Temperature: r.Temperature,
		})
	}
	sort.SliceStable(series.Points, func(i, j int) bool {
		return series.Points[i].Hour < series.Points[j].Hour
	})
	return series, true
}

// PeriodAverage is the mean temperature of one calendar bucket.
type PeriodAverage struct {
	Label   string  `json:"label"`
	AvgTemp float64 `json:"avg_temp"`
}

// WeeklyAverages groups readings by ISO (year, week) and returns the mean
// temperature per week in chronological order, labeled "{Year}-W{Week}".
func WeeklyAverages(d models.ChannelDataset) []PeriodAverage {
	type week struct{ year, week int }
	sums := make(map[week]float64)
	counts := make(map[week]int)
	for _, r := range d.Readings {
		k := week{r.ISOYear, r.ISOWeek}
		sums[k] += r.Temperature
		counts[k]++
	}

	keys := make([]week, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].week < keys[j].week
	})

	out := make([]PeriodAverage, 0, len(keys))
	for _, k := range keys {
		out = append(out, PeriodAverage{
			Label:   fmt.Sprintf("%d-W%d", k.year, k.week),
			AvgTemp: sums[k] / float64(counts[k]),
		})
	}
	return out
}

// MonthlyAverages groups readings by MonthPeriod and returns the mean per
// month. The zero-padded "2006-01" labels sort chronologically as strings.
func MonthlyAverages(d models.ChannelDataset) []PeriodAverage {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range d.Readings {
		sums[r.MonthPeriod] += r.Temperature
		counts[r.MonthPeriod]++
	}

	months := make([]string, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]PeriodAverage, 0, len(months))
	for _, m := range months {
		out = append(out, PeriodAverage{Label: m, AvgTemp: sums[m] / float64(counts[m])})
	}
	return out
}
