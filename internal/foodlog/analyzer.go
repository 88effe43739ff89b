package foodlog

import (
	"sort"
	"time"

	"healthdash/pkg"
)

// Band is the three-tier net calorie classification shared by the
// summary table and the calendar cells.
type Band string

const (
	BandGood    Band = "good"
	BandCaution Band = "caution"
	BandOver    Band = "over"
)

func BandOf(netCalories int) Band {
	switch {
	case netCalories <= 2000:
		return BandGood
	case netCalories <= 2500:
		return BandCaution
	default:
		return BandOver
	}
}

type DaySummary struct {
	Date        pkg.Day `json:"date"`
	CaloriesIn  int     `json:"caloriesIn"`
	CaloriesOut int     `json:"caloriesOut"`
	NetCalories int     `json:"netCalories"`
	Band        Band    `json:"band"`
}

// DailySummary groups entries by date and sums intake and burned
// calories per day. Days without entries are absent. Result is ordered
// by date ascending.
func DailySummary(entries []Entry) []DaySummary {
	perDay := make(map[pkg.Day]*DaySummary)
	for _, entry := range entries {
		summary, ok := perDay[entry.Date]
		if !ok {
			summary = &DaySummary{Date: entry.Date}
			perDay[entry.Date] = summary
		}
		summary.CaloriesIn += entry.CaloriesIn
		summary.CaloriesOut += entry.CaloriesOut
	}

	summaries := make([]DaySummary, 0, len(perDay))
	for _, summary := range perDay {
		summary.NetCalories = summary.CaloriesIn - summary.CaloriesOut
		summary.Band = BandOf(summary.NetCalories)
		summaries = append(summaries, *summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date.Before(summaries[j].Date)
	})

	return summaries
}

// CalendarCell is one day of the monthly calories calendar. HasEntries
// tells a day without any log entries apart from a day whose entries
// sum to zero.
type CalendarCell struct {
	Day         int  `json:"day"`
	HasEntries  bool `json:"hasEntries"`
	NetCalories int  `json:"netCalories"`
	Band        Band `json:"band,omitempty"`
}

// CalendarMonth returns one cell per day of the given month.
func CalendarMonth(entries []Entry, year int, month time.Month) []CalendarCell {
	type dayTotals struct {
		in  int
		out int
	}
	perDay := make(map[int]*dayTotals)
	for _, entry := range entries {
		if !entry.Date.In(year, month) {
			continue
		}
		totals, ok := perDay[entry.Date.DayOfMonth()]
		if !ok {
			totals = &dayTotals{}
			perDay[entry.Date.DayOfMonth()] = totals
		}
		totals.in += entry.CaloriesIn
		totals.out += entry.CaloriesOut
	}

	daysInMonth := pkg.DaysInMonth(year, month)
	cells := make([]CalendarCell, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		cell := CalendarCell{Day: day}
		if totals, ok := perDay[day]; ok {
			cell.HasEntries = true
			cell.NetCalories = totals.in - totals.out
			cell.Band = BandOf(cell.NetCalories)
		}
		cells = append(cells, cell)
	}

	return cells
}
