package model

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateID(t *testing.T) {
	d := date(2023, time.March, 15)
	id := DateIDFor(d)
	if id != "20230315" {
		t.Errorf("DateIDFor = %s, want 20230315", id)
	}

	back, err := id.Date()
	if err != nil {
		t.Fatalf("Date() failed: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("Date() = %v, want %v", back, d)
	}

	if _, err := DateID("2023-03-15").Date(); err == nil {
		t.Error("Expected error for dashed date_id")
	}
	if _, err := DateID("20231315").Date(); err == nil {
		t.Error("Expected error for month 13")
	}
}

func TestCalendar(t *testing.T) {
	tests := []struct {
		date      time.Time
		dayOfWeek string
		dayOfYear int
		month     int
		quarter   int
	}{
		{date(2023, time.January, 1), "Sunday", 1, 1, 1},
		{date(2023, time.March, 31), "Friday", 90, 3, 1},
		{date(2023, time.April, 1), "Saturday", 91, 4, 2},
		{date(2023, time.July, 4), "Tuesday", 185, 7, 3},
		{date(2023, time.December, 31), "Sunday", 365, 12, 4},
		{date(2024, time.December, 31), "Tuesday", 366, 12, 4}, // leap year
	}

	for _, tt := range tests {
		row := Calendar(tt.date)
		if row.DayOfWeek != tt.dayOfWeek {
			t.Errorf("%v: DayOfWeek = %s, want %s", tt.date, row.DayOfWeek, tt.dayOfWeek)
		}
		if row.DayOfYear != tt.dayOfYear {
			t.Errorf("%v: DayOfYear = %d, want %d", tt.date, row.DayOfYear, tt.dayOfYear)
		}
		if row.Month != tt.month {
			t.Errorf("%v: Month = %d, want %d", tt.date, row.Month, tt.month)
		}
		if row.Quarter != tt.quarter {
			t.Errorf("%v: Quarter = %d, want %d", tt.date, row.Quarter, tt.quarter)
		}
		if row.Year != tt.date.Year() {
			t.Errorf("%v: Year = %d, want %d", tt.date, row.Year, tt.date.Year())
		}
		if row.DayOfMonth != tt.date.Day() {
			t.Errorf("%v: DayOfMonth = %d, want %d", tt.date, row.DayOfMonth, tt.date.Day())
		}
		if row.DateID != DateIDFor(tt.date) {
			t.Errorf("%v: DateID = %s, want %s", tt.date, row.DateID, DateIDFor(tt.date))
		}
	}
}

func TestHoliday(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{date(2023, time.January, 1), "New Year's Day"},
		{date(2023, time.July, 4), "Independence Day"},
		{date(2023, time.December, 25), "Christmas"},
		{date(2023, time.November, 23), "Thanksgiving"}, // 4th Thursday 2023
		{date(2024, time.November, 28), "Thanksgiving"}, // 4th Thursday 2024
		{date(2023, time.November, 16), ""},             // 3rd Thursday
		{date(2023, time.November, 30), ""},             // 5th Thursday
		{date(2023, time.November, 24), ""},             // Friday after
		{date(2023, time.June, 15), ""},
	}

	for _, tt := range tests {
		if got := Holiday(tt.date); got != tt.want {
			t.Errorf("Holiday(%v) = %q, want %q", tt.date, got, tt.want)
		}
	}

	row := Calendar(date(2023, time.December, 25))
	if !row.IsHoliday || row.HolidayName != "Christmas" {
		t.Errorf("Calendar Dec 25: IsHoliday=%v HolidayName=%q", row.IsHoliday, row.HolidayName)
	}
}
