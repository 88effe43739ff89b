package pace

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when a conversion would divide by a
// non-positive distance, pace or speed.
var ErrInvalidInput = errors.New("invalid input")

// ToMinutes converts an hours/minutes/seconds split into total minutes.
func ToMinutes(hours, minutes, seconds int) float64 {
	return float64(hours)*60 + float64(minutes) + float64(seconds)/60
}

// FromDistanceTime returns the pace in min/km for a distance covered in
// the given total time.
func FromDistanceTime(distanceKm, totalMinutes float64) (float64, error) {
	if distanceKm <= 0 {
		return 0, fmt.Errorf("%w: distance must be positive", ErrInvalidInput)
	}
	if totalMinutes < 0 {
		return 0, fmt.Errorf("%w: time must not be negative", ErrInvalidInput)
	}
	return totalMinutes / distanceKm, nil
}

// DistanceFor returns the distance in km covered at the given pace in
// the given total time.
func DistanceFor(paceMinPerKm, totalMinutes float64) (float64, error) {
	if paceMinPerKm <= 0 {
		return 0, fmt.Errorf("%w: pace must be positive", ErrInvalidInput)
	}
	if totalMinutes < 0 {
		return 0, fmt.Errorf("%w: time must not be negative", ErrInvalidInput)
	}
	return totalMinutes / paceMinPerKm, nil
}

// TimeFor returns the total time in minutes to cover the distance at
// the given pace.
func TimeFor(distanceKm, paceMinPerKm float64) (float64, error) {
	if distanceKm <= 0 || paceMinPerKm <= 0 {
		return 0, fmt.Errorf("%w: distance and pace must be positive", ErrInvalidInput)
	}
	return distanceKm * paceMinPerKm, nil
}

func SpeedFromPace(paceMinPerKm float64) (float64, error) {
	if paceMinPerKm <= 0 {
		return 0, fmt.Errorf("%w: pace must be positive", ErrInvalidInput)
	}
	return 60 / paceMinPerKm, nil
}

func PaceFromSpeed(speedKmh float64) (float64, error) {
	if speedKmh <= 0 {
		return 0, fmt.Errorf("%w: speed must be positive", ErrInvalidInput)
	}
	return 60 / speedKmh, nil
}

// Clock is a duration split into display components.
type Clock struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// ClockFromMinutes splits a duration given in minutes into hours,
// minutes and seconds. Rounding happens once, on the total seconds, so
// the seconds component never reaches 60.
func ClockFromMinutes(totalMinutes float64) Clock {
	totalSeconds := int(math.Round(totalMinutes * 60))
	return Clock{
		Hours:   totalSeconds / 3600,
		Minutes: (totalSeconds % 3600) / 60,
		Seconds: totalSeconds % 60,
	}
}

// String formats the clock as HH:MM:SS, or MM:SS when under an hour.
func (c Clock) String() string {
	if c.Hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", c.Hours, c.Minutes, c.Seconds)
	}
	return fmt.Sprintf("%02d:%02d", c.Minutes, c.Seconds)
}

// FormatPace renders a pace as M:SS with seconds rounded to nearest.
func FormatPace(paceMinPerKm float64) string {
	totalSeconds := int(math.Round(paceMinPerKm * 60))
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

type FinishTime struct {
	Label      string  `json:"label"`
	DistanceKm float64 `json:"distanceKm"`
	Time       string  `json:"time"`
}

// race distances for the estimated finish times table
var finishDistances = []struct {
	label string
	km    float64
}{
	{label: "5 km", km: 5},
	{label: "10 km", km: 10},
	{label: "Half Marathon (21.1 km)", km: 21.097},
	{label: "Full Marathon (42.2 km)", km: 42.195},
}

// FinishTimes returns the estimated finish times at the given pace for
// the four fixed race distances, in distance order.
func FinishTimes(paceMinPerKm float64) ([]FinishTime, error) {
	if paceMinPerKm <= 0 {
		return nil, fmt.Errorf("%w: pace must be positive", ErrInvalidInput)
	}

	finishTimes := make([]FinishTime, 0, len(finishDistances))
	for _, distance := range finishDistances {
		totalMinutes, err := TimeFor(distance.km, paceMinPerKm)
		if err != nil {
			return nil, err
		}
		finishTimes = append(finishTimes, FinishTime{
			Label:      distance.label,
			DistanceKm: distance.km,
			Time:       ClockFromMinutes(totalMinutes).String(),
		})
	}
	return finishTimes, nil
}
