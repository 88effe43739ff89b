package pkg

import (
	"encoding/json"
	"fmt"
	"time"
)

// DayFormat is the day-first date layout used in all persisted files
// and JSON payloads. Existing data files use it, so it must not change.
const DayFormat = "02/01/2006"

// Day is a calendar day, without time of day or location.
type Day struct {
	t time.Time
}

func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DayOf(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

func Today() Day {
	return DayOf(time.Now())
}

func ParseDay(value string) (Day, error) {
	t, err := time.Parse(DayFormat, value)
	if err != nil {
		return Day{}, fmt.Errorf("parse day [%s]: %w", value, err)
	}
	return DayOf(t), nil
}

func (d Day) String() string {
	return d.t.Format(DayFormat)
}

func (d Day) Time() time.Time {
	return d.t
}

func (d Day) Year() int {
	return d.t.Year()
}

func (d Day) Month() time.Month {
	return d.t.Month()
}

func (d Day) DayOfMonth() int {
	return d.t.Day()
}

func (d Day) IsZero() bool {
	return d.t.IsZero()
}

func (d Day) Before(other Day) bool {
	return d.t.Before(other.t)
}

func (d Day) Equal(other Day) bool {
	return d.t.Equal(other.t)
}

// In reports whether the day falls in the given year and month.
func (d Day) In(year int, month time.Month) bool {
	return d.t.Year() == year && d.t.Month() == month
}

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	if value == "" {
		*d = Day{}
		return nil
	}
	day, err := ParseDay(value)
	if err != nil {
		return err
	}
	*d = day
	return nil
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
