package apistub

import (
	"fmt"

	"pantry/internal/domain"
)

// Seed item IDs referenced by the seeded recipes
const (
	itemSpaghetti = iota + 1
	itemRiceNoodles
	itemTomatoes
	itemBasil
	itemGarlic
	itemOliveOil
	itemParmesan
	itemMushrooms
	itemSpinach
	itemChickpeas
	itemLentils
	itemCoconutMilk
	itemChicken
	itemTofu
	itemBread
	itemOnion
)

var seedItems = []domain.Item{
	{ID: itemSpaghetti, Name: "Spaghetti", Price: 2.49, Calorie: 371, Vegan: true, Picture: "spaghetti.jpg", Sales: 120},
	{ID: itemRiceNoodles, Name: "Rice Noodles", Price: 3.19, Calorie: 364, Vegan: true, GlutenFree: true, Picture: "rice-noodles.jpg", Sales: 41},
	{ID: itemTomatoes, Name: "Tomatoes", Price: 1.80, Calorie: 18, Vegan: true, GlutenFree: true, Discount: 10, Picture: "tomatoes.jpg", Sales: 310},
	{ID: itemBasil, Name: "Basil", Price: 1.25, Calorie: 23, Vegan: true, GlutenFree: true, Picture: "basil.jpg", Sales: 95},
	{ID: itemGarlic, Name: "Garlic", Price: 0.60, Calorie: 149, Vegan: true, GlutenFree: true, Picture: "garlic.jpg", Sales: 280},
	{ID: itemOliveOil, Name: "Olive Oil", Price: 7.99, Calorie: 884, Vegan: true, GlutenFree: true, Discount: 25, Picture: "olive-oil.jpg", Sales: 150},
	{ID: itemParmesan, Name: "Parmesan", Price: 5.49, Calorie: 431, GlutenFree: true, Picture: "parmesan.jpg", Sales: 88},
	{ID: itemMushrooms, Name: "Mushrooms", Price: 2.99, Calorie: 22, Vegan: true, GlutenFree: true, Picture: "mushrooms.jpg", Sales: 132},
	{ID: itemSpinach, Name: "Spinach", Price: 2.29, Calorie: 23, Vegan: true, GlutenFree: true, Discount: 15, Picture: "spinach.jpg", Sales: 77},
	{ID: itemChickpeas, Name: "Chickpeas", Price: 1.39, Calorie: 164, Vegan: true, GlutenFree: true, Picture: "chickpeas.jpg", Sales: 64},
	{ID: itemLentils, Name: "Red Lentils", Price: 1.99, Calorie: 116, Vegan: true, GlutenFree: true, Picture: "lentils.jpg", Sales: 58},
	{ID: itemCoconutMilk, Name: "Coconut Milk", Price: 2.79, Calorie: 230, Vegan: true, GlutenFree: true, Picture: "coconut-milk.jpg", Sales: 49},
	{ID: itemChicken, Name: "Chicken Breast", Price: 8.49, Calorie: 165, GlutenFree: true, Picture: "chicken.jpg", Sales: 210},
	{ID: itemTofu, Name: "Tofu", Price: 2.59, Calorie: 76, Vegan: true, GlutenFree: true, Discount: 20, Picture: "tofu.jpg", Sales: 70},
	{ID: itemBread, Name: "Sourdough", Price: 4.25, Calorie: 289, Vegan: true, Picture: "sourdough.jpg", Sales: 175},
	{ID: itemOnion, Name: "Onion", Price: 0.45, Calorie: 40, Vegan: true, GlutenFree: true},
}

type seedRecipe struct {
	name        string
	vegan       bool
	glutenFree  bool
	ingredients []int
}

var pastaSauces = []string{
	"Pomodoro", "Aglio e Olio", "Primavera", "Puttanesca", "Arrabbiata",
	"Alla Norma", "Pesto", "Funghi", "Carbonara", "Alfredo",
	"Bolognese", "Amatriciana", "Cacio e Pepe", "Vodka", "Limone",
	"Spinaci", "Ceci", "Lenticchie", "Marinara", "Genovese",
	"Al Forno", "Zucca", "Pollo", "Piselli", "Tofu Crema",
}

var otherRecipes = []seedRecipe{
	{"Tomato Basil Soup", true, true, []int{itemTomatoes, itemBasil, itemGarlic, itemOnion}},
	{"Mushroom Soup", true, true, []int{itemMushrooms, itemOnion, itemGarlic, itemCoconutMilk}},
	{"Red Lentil Soup", true, true, []int{itemLentils, itemOnion, itemTomatoes}},
	{"Chicken Noodle Soup", false, false, []int{itemChicken, itemSpaghetti, itemOnion}},
	{"Chickpea Curry", true, true, []int{itemChickpeas, itemCoconutMilk, itemTomatoes, itemOnion}},
	{"Tofu Stir Fry", true, true, []int{itemTofu, itemRiceNoodles, itemGarlic, itemSpinach}},
	{"Garlic Chicken", false, true, []int{itemChicken, itemGarlic, itemOliveOil}},
	{"Spinach Salad", true, true, []int{itemSpinach, itemTomatoes, itemOliveOil}},
	{"Bruschetta", true, false, []int{itemBread, itemTomatoes, itemBasil, itemGarlic}},
	{"Mushroom Toast", true, false, []int{itemBread, itemMushrooms, itemGarlic}},
	{"Rice Noodle Salad", true, true, []int{itemRiceNoodles, itemSpinach, itemTofu}},
	{"Coconut Lentil Dal", true, true, []int{itemLentils, itemCoconutMilk, itemGarlic}},
}

// SeedCatalog returns the catalog the dev API starts with: 25 pasta dishes
// and a dozen soups, curries and salads.
func SeedCatalog() *Catalog {
	var recipes []RecipeRecord
	id := 1
	for i, sauce := range pastaSauces {
		r := RecipeRecord{
			ID:            id,
			Name:          "Pasta " + sauce,
			Description:   fmt.Sprintf("Spaghetti tossed in a %s sauce.", sauce),
			Vegan:         i < 8 || (i >= 15 && i != 22),
			IngredientIDs: []int{itemSpaghetti, itemGarlic, itemOliveOil},
		}
		switch {
		case i%3 == 0:
			r.IngredientIDs = append(r.IngredientIDs, itemTomatoes, itemBasil)
		case i%3 == 1:
			r.IngredientIDs = append(r.IngredientIDs, itemMushrooms)
		default:
			r.IngredientIDs = append(r.IngredientIDs, itemSpinach)
		}
		if !r.Vegan {
			r.IngredientIDs = append(r.IngredientIDs, itemParmesan)
		}
		if i == 22 {
			r.IngredientIDs = append(r.IngredientIDs, itemChicken)
		}
		recipes = append(recipes, r)
		id++
	}
	for _, s := range otherRecipes {
		recipes = append(recipes, RecipeRecord{
			ID:            id,
			Name:          s.name,
			Description:   "A pantry favourite.",
			Vegan:         s.vegan,
			GlutenFree:    s.glutenFree,
			IngredientIDs: s.ingredients,
		})
		id++
	}
	return NewCatalog(seedItems, recipes)
}
