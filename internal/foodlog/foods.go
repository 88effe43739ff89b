package foodlog

type FoodItem struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

// catalog of known foods with calories per portion, used by the UI to
// precompute the intake of a meal
var foodCatalog = []FoodItem{
	{Name: "Apple", Calories: 95},
	{Name: "Banana", Calories: 105},
	{Name: "Chicken Breast (100g)", Calories: 165},
	{Name: "Egg", Calories: 78},
	{Name: "Milk (1 cup)", Calories: 122},
	{Name: "Oatmeal", Calories: 150},
	{Name: "Pasta (1 cup)", Calories: 200},
	{Name: "Rice (1 cup)", Calories: 206},
	{Name: "Salad", Calories: 50},
	{Name: "Toast", Calories: 75},
	{Name: "Yogurt (100g)", Calories: 59},
}

// Catalog returns the built-in food list, sorted by name.
func Catalog() []FoodItem {
	items := make([]FoodItem, len(foodCatalog))
	copy(items, foodCatalog)
	return items
}
