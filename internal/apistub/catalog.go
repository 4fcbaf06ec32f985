package apistub

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"pantry/internal/domain"
)

var (
	errUnknownItem   = errors.New("item not found")
	errUnknownRecipe = errors.New("recipe not found")
	errUnknownUser   = errors.New("user not found")
	errNotInCart     = errors.New("item not in cart")
	errUserExists    = errors.New("user already exists")
)

// RecipeRecord is a stored recipe; ingredients are referenced by item ID
type RecipeRecord struct {
	ID            int
	Name          string
	Description   string
	Vegan         bool
	GlutenFree    bool
	IngredientIDs []int
}

type user struct {
	id       int
	username string
	email    string
	hash     []byte
}

// Catalog is the in-memory store behind the dev API
type Catalog struct {
	mu       sync.RWMutex
	items    map[int]domain.Item
	recipes  []RecipeRecord
	users    map[string]user
	carts    map[int][]domain.CartLine
	nextLine int
	nextUser int
}

// NewCatalog builds a catalog from items and recipes. Recipes are served in
// ID order.
func NewCatalog(items []domain.Item, recipes []RecipeRecord) *Catalog {
	c := &Catalog{
		items:    make(map[int]domain.Item, len(items)),
		recipes:  append([]RecipeRecord(nil), recipes...),
		users:    make(map[string]user),
		carts:    make(map[int][]domain.CartLine),
		nextLine: 1,
		nextUser: 1,
	}
	for _, it := range items {
		c.items[it.ID] = it
	}
	sort.Slice(c.recipes, func(i, j int) bool { return c.recipes[i].ID < c.recipes[j].ID })
	return c
}

// AddUser registers a user with a bcrypt-hashed password
func (c *Catalog) AddUser(username, password string) error {
	return c.Register(username, "", password)
}

// Register adds a user, failing with errUserExists when the username is taken
func (c *Catalog) Register(username, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.users[username]; ok {
		return errUserExists
	}
	c.users[username] = user{id: c.nextUser, username: username, email: email, hash: hash}
	c.nextUser++
	return nil
}

// Authenticate reports whether password matches the stored hash
func (c *Catalog) Authenticate(username, password string) bool {
	c.mu.RLock()
	u, ok := c.users[username]
	c.mu.RUnlock()
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(u.hash, []byte(password)) == nil
}

// RecipeQuery selects recipes the way /recipes/search does
type RecipeQuery struct {
	Term       string
	Vegan      bool
	GlutenFree bool
	Page       int
	PerPage    int
}

// Search returns one page of recipes whose name contains Term, ignoring
// case. A page past the end is empty.
func (c *Catalog) Search(q RecipeQuery) []domain.Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()

	term := strings.ToLower(q.Term)
	var matched []RecipeRecord
	for _, r := range c.recipes {
		if term != "" && !strings.Contains(strings.ToLower(r.Name), term) {
			continue
		}
		if q.Vegan && !r.Vegan {
			continue
		}
		if q.GlutenFree && !r.GlutenFree {
			continue
		}
		matched = append(matched, r)
	}

	start := (q.Page - 1) * q.PerPage
	if start >= len(matched) {
		return []domain.Recipe{}
	}
	end := start + q.PerPage
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]domain.Recipe, 0, end-start)
	for _, r := range matched[start:end] {
		out = append(out, c.serializeRecipe(r))
	}
	return out
}

// Recipes returns every recipe
func (c *Catalog) Recipes() []domain.Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Recipe, 0, len(c.recipes))
	for _, r := range c.recipes {
		out = append(out, c.serializeRecipe(r))
	}
	return out
}

// Recipe looks up one recipe by ID
func (c *Catalog) Recipe(id int) (domain.Recipe, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, r := range c.recipes {
		if r.ID == id {
			return c.serializeRecipe(r), nil
		}
	}
	return domain.Recipe{}, errUnknownRecipe
}

func (c *Catalog) serializeRecipe(r RecipeRecord) domain.Recipe {
	ingredients := make([]domain.Item, 0, len(r.IngredientIDs))
	for _, id := range r.IngredientIDs {
		if it, ok := c.items[id]; ok {
			ingredients = append(ingredients, serializeItem(it))
		}
	}
	return domain.Recipe{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Vegan:       r.Vegan,
		GlutenFree:  r.GlutenFree,
		Ingredients: ingredients,
	}
}

// serializeItem exposes the stored picture file name under /items/image/
func serializeItem(it domain.Item) domain.Item {
	if it.Picture != "" && !strings.HasPrefix(it.Picture, "/") {
		it.Picture = "/items/image/" + it.Picture
	}
	return it
}

// Cart returns the user's cart lines with their items attached
func (c *Catalog) Cart(username string) ([]domain.CartLine, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, ok := c.users[username]
	if !ok {
		return nil, errUnknownUser
	}
	lines := c.carts[u.id]
	out := make([]domain.CartLine, 0, len(lines))
	for _, l := range lines {
		if it, ok := c.items[l.ItemID]; ok {
			item := serializeItem(it)
			l.Item = &item
		}
		out = append(out, l)
	}
	return out, nil
}

// AddToCart adds quantity of an item. An item already in the cart has its
// quantity increased.
func (c *Catalog) AddToCart(username string, itemID, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, ok := c.users[username]
	if !ok {
		return errUnknownUser
	}
	if _, ok := c.items[itemID]; !ok {
		return errUnknownItem
	}
	lines := c.carts[u.id]
	for i := range lines {
		if lines[i].ItemID == itemID {
			lines[i].Quantity += quantity
			return nil
		}
	}
	c.carts[u.id] = append(lines, domain.CartLine{
		ID:       c.nextLine,
		UserID:   u.id,
		ItemID:   itemID,
		Quantity: quantity,
	})
	c.nextLine++
	return nil
}

// UpdateCartItem sets the quantity of an item already in the cart
func (c *Catalog) UpdateCartItem(username string, itemID, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, ok := c.users[username]
	if !ok {
		return errUnknownUser
	}
	lines := c.carts[u.id]
	for i := range lines {
		if lines[i].ItemID == itemID {
			lines[i].Quantity = quantity
			return nil
		}
	}
	return errNotInCart
}

// RemoveFromCart drops an item from the cart
func (c *Catalog) RemoveFromCart(username string, itemID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, ok := c.users[username]
	if !ok {
		return errUnknownUser
	}
	lines := c.carts[u.id]
	for i := range lines {
		if lines[i].ItemID == itemID {
			c.carts[u.id] = append(lines[:i:i], lines[i+1:]...)
			return nil
		}
	}
	return errNotInCart
}
