package runlog

import (
	"math"

	"healthdash/internal/pace"
	"healthdash/pkg"
)

// Run is one logged run. Pace is derived from distance and time when
// the run is created and stored alongside them.
type Run struct {
	Date         pkg.Day `json:"date"`
	DistanceKm   float64 `json:"distanceKm"`
	TimeMin      float64 `json:"timeMin"`
	PaceMinPerKm float64 `json:"paceMinPerKm"`
}

// NewRun derives the pace; time and pace are stored rounded to two
// decimals.
func NewRun(date pkg.Day, distanceKm, timeMin float64) (Run, error) {
	if distanceKm <= 0 || timeMin <= 0 {
		return Run{}, pace.ErrInvalidInput
	}
	return Run{
		Date:         date,
		DistanceKm:   distanceKm,
		TimeMin:      math.Round(timeMin*100) / 100,
		PaceMinPerKm: math.Round(timeMin/distanceKm*100) / 100,
	}, nil
}
