package report

import (
	"sort"

	"github.com/coldwatch/coldwatch/internal/models"
)

// Range is the closed acceptable temperature interval. Both bounds are
// inclusive: a reading exactly on a bound counts as safe.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultRange matches the monitored cold-room contract.
var DefaultRange = Range{Min: -25, Max: -10}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// FilterYear returns the subset of a dataset whose readings fall in the
// given ISO year. Year 0 means no filtering.
func FilterYear(d models.ChannelDataset, year int) models.ChannelDataset {
	if year == 0 {
		return d
	}
	out := models.ChannelDataset{Channel: d.Channel}
	for _, r := range d.Readings {
		if r.ISOYear == year {
			out.Readings = append(out.Readings, r)
		}
	}
	return out
}

// FilterYearAll applies FilterYear to every channel and drops channels left
// with no readings, so empty panels never render as real data.
func FilterYearAll(channels map[string]models.ChannelDataset, year int) map[string]models.ChannelDataset {
	if year == 0 {
		return channels
	}
	out := make(map[string]models.ChannelDataset, len(channels))
	for name, d := range channels {
		filtered := FilterYear(d, year)
		if !filtered.Empty() {
			out[name] = filtered
		}
	}
	return out
}

// Years lists every ISO year present in any channel, ascending.
func Years(channels map[string]models.ChannelDataset) []int {
	seen := make(map[int]bool)
	for _, d := range channels {
		for _, r := range d.Readings {
			seen[r.ISOYear] = true
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// ChannelNames lists channels in sorted order for deterministic iteration.
func ChannelNames(channels map[string]models.ChannelDataset) []string {
	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// displayHour maps hour 0 to 24 for charting; all other hours unchanged.
func displayHour(h int) int {
	if h == 0 {
		return 24
	}
	return h
}
