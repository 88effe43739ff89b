package foodlog

import "healthdash/pkg"

type Meal string

const (
	MealBreakfast Meal = "Breakfast"
	MealLunch     Meal = "Lunch"
	MealDinner    Meal = "Dinner"
	// MealExercise rows carry burned calories instead of food
	MealExercise Meal = "Exercise"
)

func (m Meal) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealExercise:
		return true
	default:
		return false
	}
}

// Entry is one food or exercise log row. Multiple entries for the same
// date and meal are legal and additive in the summaries.
type Entry struct {
	Date pkg.Day `json:"date"`
	Meal Meal    `json:"meal"`
	// Food is a comma-joined list of eaten items
	Food        string `json:"food"`
	CaloriesIn  int    `json:"caloriesIn"`
	Exercise    string `json:"exercise"`
	CaloriesOut int    `json:"caloriesOut"`
}
