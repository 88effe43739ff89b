package runlog

import (
	"math"
	"sort"
	"time"

	"healthdash/internal/pace"
	"healthdash/pkg"
)

// Stats are the all-time aggregates shown at the top of the run log.
type Stats struct {
	Count             int     `json:"count"`
	TotalKm           float64 `json:"totalKm"`
	TotalTimeMin      float64 `json:"totalTimeMin"`
	TotalTime         string  `json:"totalTime"`
	AvgPaceMinPerKm   float64 `json:"avgPaceMinPerKm"`
	AvgPace           string  `json:"avgPace"`
	BestPaceMinPerKm  float64 `json:"bestPaceMinPerKm"`
	BestPace          string  `json:"bestPace"`
	LongestDistanceKm float64 `json:"longestDistanceKm"`
}

// StatsOf aggregates all runs. The average pace is the plain mean of
// the per-run paces, not weighted by distance.
func StatsOf(runs []Run) Stats {
	if len(runs) == 0 {
		return Stats{}
	}

	stats := Stats{
		Count:            len(runs),
		BestPaceMinPerKm: runs[0].PaceMinPerKm,
	}
	var paceSum float64
	for _, run := range runs {
		stats.TotalKm += run.DistanceKm
		stats.TotalTimeMin += run.TimeMin
		paceSum += run.PaceMinPerKm
		if run.PaceMinPerKm < stats.BestPaceMinPerKm {
			stats.BestPaceMinPerKm = run.PaceMinPerKm
		}
		if run.DistanceKm > stats.LongestDistanceKm {
			stats.LongestDistanceKm = run.DistanceKm
		}
	}

	stats.TotalKm = round2(stats.TotalKm)
	stats.AvgPaceMinPerKm = round2(paceSum / float64(len(runs)))
	stats.TotalTime = pace.ClockFromMinutes(stats.TotalTimeMin).String()
	stats.AvgPace = pace.FormatPace(stats.AvgPaceMinPerKm)
	stats.BestPace = pace.FormatPace(stats.BestPaceMinPerKm)

	return stats
}

// MonthSummary aggregates the runs of a single month.
type MonthSummary struct {
	Year            int     `json:"year"`
	Month           int     `json:"month"`
	Count           int     `json:"count"`
	TotalKm         float64 `json:"totalKm"`
	AvgDistanceKm   float64 `json:"avgDistanceKm"`
	TotalTimeMin    float64 `json:"totalTimeMin"`
	TotalTime       string  `json:"totalTime"`
	AvgPaceMinPerKm float64 `json:"avgPaceMinPerKm"`
	AvgPace         string  `json:"avgPace"`
}

func SummaryForMonth(runs []Run, year int, month time.Month) MonthSummary {
	summary := MonthSummary{
		Year:  year,
		Month: int(month),
	}

	var paceSum float64
	for _, run := range runs {
		if !run.Date.In(year, month) {
			continue
		}
		summary.Count++
		summary.TotalKm += run.DistanceKm
		summary.TotalTimeMin += run.TimeMin
		paceSum += run.PaceMinPerKm
	}

	summary.TotalKm = round2(summary.TotalKm)
	summary.TotalTime = pace.ClockFromMinutes(summary.TotalTimeMin).String()
	if summary.Count > 0 {
		summary.AvgDistanceKm = round2(summary.TotalKm / float64(summary.Count))
		summary.AvgPaceMinPerKm = round2(paceSum / float64(summary.Count))
		summary.AvgPace = pace.FormatPace(summary.AvgPaceMinPerKm)
	}

	return summary
}

// RunsForMonth returns the month's runs ordered by date ascending.
func RunsForMonth(runs []Run, year int, month time.Month) []Run {
	var monthRuns []Run
	for _, run := range runs {
		if run.Date.In(year, month) {
			monthRuns = append(monthRuns, run)
		}
	}
	sort.SliceStable(monthRuns, func(i, j int) bool {
		return monthRuns[i].Date.Before(monthRuns[j].Date)
	})
	return monthRuns
}

// CalendarCell is one day of the monthly runs calendar. HasRuns tells a
// day without runs apart from one whose distances happen to sum low.
type CalendarCell struct {
	Day             int     `json:"day"`
	HasRuns         bool    `json:"hasRuns"`
	DistanceKm      float64 `json:"distanceKm"`
	AvgPaceMinPerKm float64 `json:"avgPaceMinPerKm,omitempty"`
}

// CalendarMonth returns one cell per day of the given month, with the
// total distance and the mean pace of that day's runs.
func CalendarMonth(runs []Run, year int, month time.Month) []CalendarCell {
	type dayTotals struct {
		distance float64
		paceSum  float64
		count    int
	}
	perDay := make(map[int]*dayTotals)
	for _, run := range runs {
		if !run.Date.In(year, month) {
			continue
		}
		totals, ok := perDay[run.Date.DayOfMonth()]
		if !ok {
			totals = &dayTotals{}
			perDay[run.Date.DayOfMonth()] = totals
		}
		totals.distance += run.DistanceKm
		totals.paceSum += run.PaceMinPerKm
		totals.count++
	}

	daysInMonth := pkg.DaysInMonth(year, month)
	cells := make([]CalendarCell, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		cell := CalendarCell{Day: day}
		if totals, ok := perDay[day]; ok {
			cell.HasRuns = true
			cell.DistanceKm = round2(totals.distance)
			cell.AvgPaceMinPerKm = round2(totals.paceSum / float64(totals.count))
		}
		cells = append(cells, cell)
	}

	return cells
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
