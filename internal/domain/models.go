package domain

// Item is a catalog product as served by the storefront API. Recipes list
// their ingredients as items, and the cart references them by ID.
type Item struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Calorie    int     `json:"calorie"`
	Vegan      bool    `json:"vegan"`
	GlutenFree bool    `json:"glutenFree"`
	Discount   float64 `json:"discount"` // percent off, 0 when not discounted
	Picture    string  `json:"picture,omitempty"`
	Sales      int     `json:"sales"`
}

// Recipe is a meal-planning search result
type Recipe struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Vegan       bool   `json:"is_vegan"`
	GlutenFree  bool   `json:"is_gluten_free"`
	Ingredients []Item `json:"ingredients"`
}

// CartLine is one row of the signed-in user's cart
type CartLine struct {
	ID       int   `json:"id"`
	UserID   int   `json:"user_id"`
	ItemID   int   `json:"item_id"`
	Quantity int   `json:"quantity"`
	Item     *Item `json:"item"`
}

// Tokens is the credential pair returned by a successful login
type Tokens struct {
	AccessToken  string `json:"access_token" toml:"access_token"`
	RefreshToken string `json:"refresh_token" toml:"refresh_token"`
}

// RecipeSearch is one page of a recipe search as sent to the API
type RecipeSearch struct {
	Term       string
	Vegan      bool
	GlutenFree bool
	Page       int // 1-based
	PerPage    int
}
