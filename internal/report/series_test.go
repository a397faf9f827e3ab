package report

import (
	"testing"
	"time"
)

func TestLatestDay(t *testing.T) {
	d := dataset("North",
		reading("North", "2024-01-01", 5, -20),
		reading("North", "2024-01-02", 24, -5),
		reading("North", "2024-01-02", 3, -15),
		reading("North", "2024-01-02", 1, -18),
	)

	series, ok := LatestDay(d)
	if !ok {
		t.Fatal("expected a series")
	}
	if !series.Date.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("latest day = %v, want 2024-01-02", series.Date)
	}
	if len(series.Points) != 3 {
		t.Fatalf("expected 3 points for the latest day only, got %d", len(series.Points))
	}
	for i := 1; i < len(series.Points); i++ {
		if series.Points[i-1].Hour >= series.Points[i].Hour {
			t.Errorf("points not ascending by hour: %d then %d", series.Points[i-1].Hour, series.Points[i].Hour)
		}
	}
	if last := series.Points[len(series.Points)-1]; last.Hour != 24 {
		t.Errorf("hour-24 reading should display last, got hour %d", last.Hour)
	}
}

func TestLatestDayEmptyDataset(t *testing.T) {
	if _, ok := LatestDay(dataset("Empty")); ok {
		t.Error("empty dataset must signal no data")
	}
}

func TestWeeklyAverages(t *testing.T) {
	d := dataset("North",
		// 2023-12-31 is a Sunday, ISO week 2023-W52.
		reading("North", "2023-12-31", 1, -20),
		reading("North", "2023-12-31", 2, -10),
		// 2024-01-01 is a Monday, ISO week 2024-W1.
		reading("North", "2024-01-01", 1, -30),
	)

	weeks := WeeklyAverages(d)
	if len(weeks) != 2 {
		t.Fatalf("expected 2 weekly buckets, got %d: %+v", len(weeks), weeks)
	}
	if weeks[0].Label != "2023-W52" || weeks[0].AvgTemp != -15 {
		t.Errorf("first week = %+v, want 2023-W52 avg -15", weeks[0])
	}
	if weeks[1].Label != "2024-W1" || weeks[1].AvgTemp != -30 {
		t.Errorf("second week = %+v, want 2024-W1 avg -30", weeks[1])
	}
}

func TestMonthlyAverages(t *testing.T) {
	d := dataset("North",
		reading("North", "2024-02-01", 1, -12),
		reading("North", "2023-11-01", 1, -20),
		reading("North", "2023-11-02", 2, -10),
	)

	months := MonthlyAverages(d)
	if len(months) != 2 {
		t.Fatalf("expected 2 monthly buckets, got %d", len(months))
	}
	if months[0].Label != "2023-11" || months[0].AvgTemp != -15 {
		t.Errorf("first month = %+v, want 2023-11 avg -15", months[0])
	}
	if months[1].Label != "2024-02" {
		t.Errorf("months out of order: %+v", months)
	}
}

func TestSeriesLabelsNeverDuplicate(t *testing.T) {
	d := dataset("North",
		reading("North", "2024-01-01", 1, -20),
		reading("North", "2024-01-01", 2, -20),
		reading("North", "2024-01-03", 1, -20),
		reading("North", "2024-02-01", 1, -20),
	)

	seen := make(map[string]bool)
	for _, p := range WeeklyAverages(d) {
		if seen[p.Label] {
			t.Errorf("duplicate weekly label %q", p.Label)
		}
		seen[p.Label] = true
	}

	seen = make(map[string]bool)
	for _, p := range MonthlyAverages(d) {
		if seen[p.Label] {
			t.Errorf("duplicate monthly label %q", p.Label)
		}
		seen[p.Label] = true
	}
}
