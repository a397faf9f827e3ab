package report

import (
	"time"

	"github.com/coldwatch/coldwatch/internal/models"
)

// reading builds a fully derived test reading the way normalization would.
func reading(channel, day string, hour int, temp float64) models.Reading {
	base, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	base = base.UTC()

	var ts time.Time
	if hour == 24 {
		ts = time.Date(base.Year(), base.Month(), base.Day(), 23, 59, 0, 0, time.UTC)
	} else {
		ts = time.Date(base.Year(), base.Month(), base.Day(), hour, 0, 0, 0, time.UTC)
	}

	isoYear, isoWeek := ts.ISOWeek()
	return models.Reading{
		Channel:      channel,
		BaseDate:     base,
		HourOfDay:    hour,
		Timestamp:    ts,
		Temperature:  temp,
		CalendarDate: time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC),
		MonthPeriod:  ts.Format("2006-01"),
		ISOYear:      isoYear,
		ISOWeek:      isoWeek,
	}
}

func dataset(channel string, readings ...models.Reading) models.ChannelDataset {
	return models.ChannelDataset{Channel: channel, Readings: readings}
}
