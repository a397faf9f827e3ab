package models

import "time"

// Reading is one (channel, date, hour) temperature observation after
// normalization. All fields are fully parsed at creation; downstream code
// never touches raw spreadsheet cells.
type Reading struct {
	Channel     string
	BaseDate    time.Time // calendar date of the sheet row, midnight UTC
	HourOfDay   int       // 1..24, where 24 means end of day
	Timestamp   time.Time // BaseDate plus hour; hour 24 maps to 23:59
	Temperature float64

	// Derived once when the reading is built.
	CalendarDate time.Time
	MonthPeriod  string // "2006-01", sorts chronologically as a string
	ISOYear      int
	ISOWeek      int
}

// ChannelDataset owns the readings of a single monitored channel.
type ChannelDataset struct {
	Channel  string
	Readings []Reading
}

func (d ChannelDataset) Empty() bool {
	return len(d.Readings) == 0
}
