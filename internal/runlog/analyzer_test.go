package runlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthdash/pkg"
)

func mustRun(t *testing.T, date pkg.Day, distanceKm, timeMin float64) Run {
	t.Helper()
	run, err := NewRun(date, distanceKm, timeMin)
	require.NoError(t, err)
	return run
}

func TestNewRun(t *testing.T) {
	run, err := NewRun(pkg.NewDay(2024, time.May, 1), 10, 52.5)
	require.NoError(t, err)
	assert.Equal(t, 5.25, run.PaceMinPerKm)

	// pace rounded to two decimals
	run, err = NewRun(pkg.NewDay(2024, time.May, 1), 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 3.33, run.PaceMinPerKm)
}

func TestNewRun_invalid(t *testing.T) {
	_, err := NewRun(pkg.NewDay(2024, time.May, 1), 0, 30)
	assert.Error(t, err)
	_, err = NewRun(pkg.NewDay(2024, time.May, 1), 5, 0)
	assert.Error(t, err)
	_, err = NewRun(pkg.NewDay(2024, time.May, 1), -5, 30)
	assert.Error(t, err)
}

func TestStatsOf(t *testing.T) {
	assert.Equal(t, Stats{}, StatsOf(nil))

	day := pkg.NewDay(2024, time.May, 1)
	runs := []Run{
		mustRun(t, day, 10, 60), // pace 6.00
		mustRun(t, day, 5, 20),  // pace 4.00
	}

	stats := StatsOf(runs)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 15.0, stats.TotalKm)
	assert.Equal(t, 80.0, stats.TotalTimeMin)
	assert.Equal(t, "01:20:00", stats.TotalTime)
	assert.Equal(t, 5.0, stats.AvgPaceMinPerKm)
	assert.Equal(t, "5:00", stats.AvgPace)
	assert.Equal(t, 4.0, stats.BestPaceMinPerKm)
	assert.Equal(t, "4:00", stats.BestPace)
	assert.Equal(t, 10.0, stats.LongestDistanceKm)
}

func TestSummaryForMonth_unweightedAvgPace(t *testing.T) {
	runs := []Run{
		// 1 km at 4:00 and 9 km at 6:00 average to 5:00 even though
		// most of the distance was run at 6:00
		mustRun(t, pkg.NewDay(2024, time.May, 3), 1, 4),
		mustRun(t, pkg.NewDay(2024, time.May, 10), 9, 54),
		// other months are ignored
		mustRun(t, pkg.NewDay(2024, time.June, 1), 42.195, 240),
	}

	summary := SummaryForMonth(runs, 2024, time.May)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 10.0, summary.TotalKm)
	assert.Equal(t, 5.0, summary.AvgDistanceKm)
	assert.Equal(t, 58.0, summary.TotalTimeMin)
	assert.Equal(t, "58:00", summary.TotalTime)
	assert.Equal(t, 5.0, summary.AvgPaceMinPerKm)
	assert.Equal(t, "5:00", summary.AvgPace)
}

func TestSummaryForMonth_empty(t *testing.T) {
	summary := SummaryForMonth(nil, 2024, time.May)
	assert.Equal(t, 0, summary.Count)
	assert.Equal(t, 0.0, summary.AvgPaceMinPerKm)
	assert.Empty(t, summary.AvgPace)
}

func TestRunsForMonth_sorted(t *testing.T) {
	runs := []Run{
		mustRun(t, pkg.NewDay(2024, time.May, 20), 5, 25),
		mustRun(t, pkg.NewDay(2024, time.May, 3), 10, 60),
		mustRun(t, pkg.NewDay(2024, time.April, 30), 5, 30),
	}

	monthRuns := RunsForMonth(runs, 2024, time.May)
	require.Len(t, monthRuns, 2)
	assert.Equal(t, pkg.NewDay(2024, time.May, 3), monthRuns[0].Date)
	assert.Equal(t, pkg.NewDay(2024, time.May, 20), monthRuns[1].Date)
}

func TestCalendarMonth(t *testing.T) {
	runs := []Run{
		mustRun(t, pkg.NewDay(2024, time.February, 10), 5, 25),
		mustRun(t, pkg.NewDay(2024, time.February, 10), 3, 18),
	}

	cells := CalendarMonth(runs, 2024, time.February)
	require.Len(t, cells, 29)

	assert.True(t, cells[9].HasRuns)
	assert.Equal(t, 8.0, cells[9].DistanceKm)
	// mean of 5:00 and 6:00 paces
	assert.Equal(t, 5.5, cells[9].AvgPaceMinPerKm)

	assert.False(t, cells[0].HasRuns)
	assert.Equal(t, 0.0, cells[0].DistanceKm)
}
