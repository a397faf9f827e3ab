package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/coldwatch/coldwatch/internal/models"
)

// headerOffset is the number of preamble rows before the header row in every
// sheet. This layout is a contract with the upstream workbook producer.
const headerOffset = 3

// hourDigitsRe matches the first run of digits in an hour column label,
// e.g. "24 hrs" -> "24", " 7" -> "7".
var hourDigitsRe = regexp.MustCompile(`\d+`)

// dateLayouts are tried in order when parsing the Date column. Workbooks
// exported from shared spreadsheets format dates inconsistently depending on
// the locale of whoever last touched them.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/2006",
	"1/2/06",
	"2006/01/02",
	"02 Jan 2006",
}

// DropStats counts raw records discarded while normalizing one sheet.
type DropStats struct {
	BadDate int
	BadHour int
	BadTemp int
}

// NormalizeWorkbook converts every sheet into a per-channel dataset keyed by
// the trimmed sheet name. Sheets whose names trim to the same channel
// overwrite each other in workbook order, last one wins.
func NormalizeWorkbook(wb *Workbook) (map[string]models.ChannelDataset, map[string]DropStats) {
	channels := make(map[string]models.ChannelDataset, len(wb.Sheets))
	drops := make(map[string]DropStats, len(wb.Sheets))

	for _, sheet := range wb.Sheets {
		channel := strings.TrimSpace(sheet.Name)
		dataset, stats := normalizeSheet(channel, sheet.Rows)
		channels[channel] = dataset
		drops[channel] = stats
	}
	return channels, drops
}

// normalizeSheet melts one wide hour-by-date sheet into a flat sequence of
// readings. Malformed rows are dropped silently; an entirely malformed sheet
// yields an empty dataset, never an error.
func normalizeSheet(channel string, rows [][]string) (models.ChannelDataset, DropStats) {
	dataset := models.ChannelDataset{Channel: channel}
	var stats DropStats

	if len(rows) <= headerOffset {
		return dataset, stats
	}

	header := rows[headerOffset]
	dateCol := -1
	for i, label := range header {
		if strings.TrimSpace(label) == "Date" {
			dateCol = i
			break
		}
	}
	if dateCol == -1 {
		return dataset, stats
	}

	for _, row := range rows[headerOffset+1:] {
		baseDate, ok := parseDate(cell(row, dateCol))
		if !ok {
			stats.BadDate++
			continue
		}

		for col, label := range header {
			if col == dateCol {
				continue
			}
			raw := strings.TrimSpace(cell(row, col))
			if raw == "" {
				continue // no reading for this hour, not an error
			}

			hour, ok := extractHour(label)
			if !ok {
				stats.BadHour++
				continue
			}

			temp, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				stats.BadTemp++
				continue
			}

			dataset.Readings = append(dataset.Readings, newReading(channel, baseDate, hour, temp))
		}
	}
	return dataset, stats
}

// newReading builds a fully derived reading from parsed row values.
func newReading(channel string, baseDate time.Time, hour int, temp float64) models.Reading {
	ts := buildTimestamp(baseDate, hour)
	isoYear, isoWeek := ts.ISOWeek()
	return models.Reading{
		Channel:      channel,
		BaseDate:     baseDate,
		HourOfDay:    hour,
		Timestamp:    ts,
		Temperature:  temp,
		CalendarDate: time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC),
		MonthPeriod:  ts.Format("2006-01"),
		ISOYear:      isoYear,
		ISOWeek:      isoWeek,
	}
}

// buildTimestamp combines a base date with an hour-of-day. Hour 24 is an
// end-of-day sentinel and maps to 23:59 of the same date, never midnight of
// the next day.
func buildTimestamp(base time.Time, hour int) time.Time {
	if hour == 24 {
		return time.Date(base.Year(), base.Month(), base.Day(), 23, 59, 0, 0, time.UTC)
	}
	return time.Date(base.Year(), base.Month(), base.Day(), hour, 0, 0, 0, time.UTC)
}

// extractHour pulls the first run of digits out of a column label and
// requires it to land in 1..24. Labels with no digits are dropped.
func extractHour(label string) (int, bool) {
	digits := hourDigitsRe.FindString(label)
	if digits == "" {
		return 0, false
	}
	hour, err := strconv.Atoi(digits)
	if err != nil || hour < 1 || hour > 24 {
		return 0, false
	}
	return hour, true
}

// parseDate parses a Date cell into a midnight-UTC calendar date. It tries
// the known textual layouts first, then falls back to Excel serial numbers
// for cells that came through unformatted.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil && t.Year() >= 2000 {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// cell returns a cell value, tolerating the short rows the XLSX reader
// produces when trailing cells are blank.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
