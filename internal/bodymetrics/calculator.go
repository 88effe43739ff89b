package bodymetrics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned for non-positive weight, height or age.
var ErrInvalidInput = errors.New("invalid input")

type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

type Category string

const (
	CategoryUnderweight Category = "Underweight"
	CategoryNormal      Category = "Normal weight"
	CategoryOverweight  Category = "Overweight"
	CategoryObese       Category = "Obese"
)

// SedentaryActivityFactor is the only activity level used for the daily
// calorie estimate (little or no exercise).
const SedentaryActivityFactor = 1.2

// weight loss heuristic: fixed daily deficit for overweight/obese
const calorieDeficit = 500

func BMI(weightKg, heightCm float64) (float64, error) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, fmt.Errorf("%w: weight and height must be positive", ErrInvalidInput)
	}
	heightM := heightCm / 100
	return weightKg / (heightM * heightM), nil
}

func CategoryOf(bmi float64) Category {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// BMR uses the male formula for SexMale and the female formula for
// anything else.
func BMR(weightKg, heightCm, ageYears float64, sex Sex) (float64, error) {
	if weightKg <= 0 || heightCm <= 0 || ageYears <= 0 {
		return 0, fmt.Errorf("%w: weight, height and age must be positive", ErrInvalidInput)
	}
	if sex == SexMale {
		return 88.36 + 13.4*weightKg + 4.8*heightCm - 5.7*ageYears, nil
	}
	return 447.6 + 9.2*weightKg + 3.1*heightCm - 4.3*ageYears, nil
}

// TargetWeightRange returns the weights at BMI 18.5 and 24.9 for the
// given height.
func TargetWeightRange(heightCm float64) (minKg, maxKg float64, err error) {
	if heightCm <= 0 {
		return 0, 0, fmt.Errorf("%w: height must be positive", ErrInvalidInput)
	}
	heightM := heightCm / 100
	return 18.5 * heightM * heightM, 24.9 * heightM * heightM, nil
}

func DailyCalories(weightKg, heightCm, ageYears float64, sex Sex, activityFactor float64) (float64, error) {
	if activityFactor <= 0 {
		return 0, fmt.Errorf("%w: activity factor must be positive", ErrInvalidInput)
	}
	bmr, err := BMR(weightKg, heightCm, ageYears, sex)
	if err != nil {
		return 0, err
	}
	return bmr * activityFactor, nil
}

type Recommendation struct {
	// CalorieTarget is the suggested daily intake: maintenance calories,
	// reduced by a fixed deficit when overweight or obese.
	CalorieTarget int `json:"calorieTarget"`
	// WeightDeltaKg is the estimated kg to the nearer bound of the
	// healthy range: positive means lose, negative means gain, zero
	// means maintain.
	WeightDeltaKg float64 `json:"weightDeltaKg"`
	Message       string  `json:"message"`
}

type Analysis struct {
	BMI             float64        `json:"bmi"`
	Category        Category       `json:"category"`
	BMR             float64        `json:"bmr"`
	DailyCalories   float64        `json:"dailyCalories"`
	TargetWeightMin float64        `json:"targetWeightMin"`
	TargetWeightMax float64        `json:"targetWeightMax"`
	Recommendation  Recommendation `json:"recommendation"`
}

// Analyze computes all body metrics for the given measurements.
func Analyze(weightKg, heightCm, ageYears float64, sex Sex) (*Analysis, error) {
	bmi, err := BMI(weightKg, heightCm)
	if err != nil {
		return nil, err
	}
	bmr, err := BMR(weightKg, heightCm, ageYears, sex)
	if err != nil {
		return nil, err
	}
	minW, maxW, err := TargetWeightRange(heightCm)
	if err != nil {
		return nil, err
	}
	calories, err := DailyCalories(weightKg, heightCm, ageYears, sex, SedentaryActivityFactor)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		BMI:             bmi,
		Category:        CategoryOf(bmi),
		BMR:             bmr,
		DailyCalories:   calories,
		TargetWeightMin: minW,
		TargetWeightMax: maxW,
		Recommendation:  recommend(bmi, weightKg, minW, maxW, calories),
	}, nil
}

func recommend(bmi, weightKg, minW, maxW, calories float64) Recommendation {
	maintenance := int(calories)

	switch CategoryOf(bmi) {
	case CategoryUnderweight:
		gain := round1(minW - weightKg)
		return Recommendation{
			CalorieTarget: maintenance,
			WeightDeltaKg: -gain,
			Message:       fmt.Sprintf("Underweight! Gain ~%.1f kg. Calories/day: %d kcal", gain, maintenance),
		}
	case CategoryNormal:
		return Recommendation{
			CalorieTarget: maintenance,
			WeightDeltaKg: 0,
			Message:       fmt.Sprintf("Healthy weight! Maintain. Calories/day: %d kcal", maintenance),
		}
	case CategoryOverweight:
		lose := round1(weightKg - maxW)
		return Recommendation{
			CalorieTarget: maintenance - calorieDeficit,
			WeightDeltaKg: lose,
			Message:       fmt.Sprintf("Overweight! Lose ~%.1f kg. Calories/day: %d kcal", lose, maintenance-calorieDeficit),
		}
	default:
		lose := round1(weightKg - maxW)
		return Recommendation{
			CalorieTarget: maintenance - calorieDeficit,
			WeightDeltaKg: lose,
			Message:       fmt.Sprintf("Obese! Lose ~%.1f kg. Calories/day: %d kcal", lose, maintenance-calorieDeficit),
		}
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
