//-------------------------------------------------------------------------
//
// salesdw - Sales Data Warehouse Toolkit
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package model

import (
	"fmt"
	"time"
)

// DateID is a time dimension key in YYYYMMDD form.
type DateID string

// DateIDFor returns the DateID for a calendar date.
func DateIDFor(d time.Time) DateID {
	return DateID(d.Format("20060102"))
}

// Date returns the calendar date the DateID encodes.
func (id DateID) Date() (time.Time, error) {
	d, err := time.Parse("20060102", string(id))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date_id %q: %w", string(id), err)
	}
	return d, nil
}

// Holiday returns the holiday name for a date, or "" if it is not one.
// Fixed-date US holidays plus Thanksgiving (fourth Thursday of November).
func Holiday(d time.Time) string {
	switch {
	case d.Month() == time.January && d.Day() == 1:
		return "New Year's Day"
	case d.Month() == time.July && d.Day() == 4:
		return "Independence Day"
	case d.Month() == time.December && d.Day() == 25:
		return "Christmas"
	case d.Month() == time.November && d.Weekday() == time.Thursday &&
		d.Day() >= 22 && d.Day() <= 28:
		return "Thanksgiving"
	}
	return ""
}

// Calendar derives a complete time dimension row from a calendar date.
// Every field is a pure function of the date.
func Calendar(d time.Time) TimeRow {
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	_, isoWeek := d.ISOWeek()
	holiday := Holiday(d)

	return TimeRow{
		DateID:      DateIDFor(d),
		FullDate:    d,
		DayOfWeek:   d.Weekday().String(),
		DayOfMonth:  d.Day(),
		DayOfYear:   d.YearDay(),
		WeekOfYear:  isoWeek,
		Month:       int(d.Month()),
		Quarter:     (int(d.Month())-1)/3 + 1,
		Year:        d.Year(),
		IsHoliday:   holiday != "",
		HolidayName: holiday,
	}
}
