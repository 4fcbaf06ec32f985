// Package apistub is a development storefront API serving an in-memory
// catalog. It speaks the same HTTP contract as the production backend.
package apistub

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pantry/internal/domain"
)

const (
	defaultPage    = 1
	defaultPerPage = 20
	requestIDKey   = "X-Request-ID"
)

// Options configures a Server
type Options struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Logger     *zap.Logger
}

// Server holds the catalog and token settings for the dev API
type Server struct {
	catalog *Catalog
	tokens  tokenMaker
	logger  *zap.Logger
}

// NewServer creates a server over catalog. Zero TTLs default to 15 minutes
// for access tokens and 30 days for refresh tokens.
func NewServer(catalog *Catalog, opts Options) (*Server, error) {
	if opts.Secret == "" {
		return nil, errors.New("apistub: secret must not be empty")
	}
	if opts.AccessTTL == 0 {
		opts.AccessTTL = 15 * time.Minute
	}
	if opts.RefreshTTL == 0 {
		opts.RefreshTTL = 30 * 24 * time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Server{
		catalog: catalog,
		tokens: tokenMaker{
			secret:     []byte(opts.Secret),
			accessTTL:  opts.AccessTTL,
			refreshTTL: opts.RefreshTTL,
			now:        time.Now,
		},
		logger: opts.Logger.Named("apistub"),
	}, nil
}

// Router builds the gin engine with every route registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLog())

	public := router.Group("")
	{
		public.GET("/recipes", s.listRecipes)
		public.GET("/recipes/search", s.searchRecipes)
		public.GET("/recipes/:id", s.getRecipe)
		public.GET("/recipes/:id/ingredients", s.getIngredients)
		public.POST("/auth/signup", s.signup)
		public.POST("/auth/login", s.login)
	}

	cart := router.Group("/cart")
	cart.Use(s.requireAccessToken())
	{
		cart.GET("/items", s.listCart)
		cart.POST("/add", s.addToCart)
		cart.PUT("/update", s.updateCart)
		cart.DELETE("/remove/:item_id", s.removeFromCart)
	}

	return router
}

// requestLog echoes X-Request-ID and logs every request with zap
func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDKey)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDKey, id)

		c.Next()

		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.String("request_id", id),
			zap.Duration("elapsed", time.Since(start)))
	}
}

func (s *Server) listRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.Recipes())
}

func (s *Server) searchRecipes(c *gin.Context) {
	page := intQuery(c, "page", defaultPage)
	perPage := intQuery(c, "per_page", defaultPerPage)
	if page < 1 || perPage < 1 {
		c.JSON(http.StatusNotFound, gin.H{"message": "page and per_page must be positive"})
		return
	}

	c.JSON(http.StatusOK, s.catalog.Search(RecipeQuery{
		Term:       c.Query("q"),
		Vegan:      strings.EqualFold(c.Query("vegan"), "true"),
		GlutenFree: strings.EqualFold(c.Query("gluten_free"), "true"),
		Page:       page,
		PerPage:    perPage,
	}))
}

func (s *Server) getRecipe(c *gin.Context) {
	recipe, ok := s.recipeParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (s *Server) getIngredients(c *gin.Context) {
	recipe, ok := s.recipeParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, recipe.Ingredients)
}

func (s *Server) recipeParam(c *gin.Context) (domain.Recipe, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "recipe not found"})
		return domain.Recipe{}, false
	}
	recipe, err := s.catalog.Recipe(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return domain.Recipe{}, false
	}
	return recipe, true
}

// SignupCreated is the message /auth/signup answers with on success. Other
// outcomes carry their reason in the same field.
const SignupCreated = "User created successfully"

const maxUsernameLen = 16

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data"})
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.Username == "" || req.Email == "" || req.Password == "":
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username, email and password are required"})
		return
	case len(req.Username) > maxUsernameLen:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username must be 16 characters or less."})
		return
	}

	err := s.catalog.Register(req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, errUserExists):
		c.JSON(http.StatusOK, gin.H{"message": "User with username " + req.Username + " already exists"})
	case err != nil:
		s.logger.Error("failed to register user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": SignupCreated})
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login answers bad credentials with 200 and a message, like the production
// backend; clients must check for the access token.
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data"})
		return
	}
	if !s.catalog.Authenticate(req.Username, req.Password) {
		c.JSON(http.StatusOK, gin.H{"message": "Invalid credentials"})
		return
	}

	access, refresh, err := s.tokens.pair(req.Username)
	if err != nil {
		s.logger.Error("failed to sign tokens", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to sign tokens"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": access, "refresh_token": refresh})
}

type cartItemRequest struct {
	ItemID   int `json:"itemId"`
	Quantity int `json:"quantity"`
}

func (s *Server) listCart(c *gin.Context) {
	lines, err := s.catalog.Cart(c.GetString(ctxUsername))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, lines)
}

func (s *Server) addToCart(c *gin.Context) {
	req, ok := bindCartItem(c)
	if !ok {
		return
	}
	if err := s.catalog.AddToCart(c.GetString(ctxUsername), req.ItemID, req.Quantity); err != nil {
		c.JSON(statusFor(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart"})
}

func (s *Server) updateCart(c *gin.Context) {
	req, ok := bindCartItem(c)
	if !ok {
		return
	}
	if err := s.catalog.UpdateCartItem(c.GetString(ctxUsername), req.ItemID, req.Quantity); err != nil {
		c.JSON(statusFor(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart item updated"})
}

func (s *Server) removeFromCart(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
		return
	}
	if err := s.catalog.RemoveFromCart(c.GetString(ctxUsername), itemID); err != nil {
		c.JSON(statusFor(err), gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

func bindCartItem(c *gin.Context) (cartItemRequest, bool) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ItemID == 0 || req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Item ID and quantity are required"})
		return cartItemRequest{}, false
	}
	return req, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errUnknownItem), errors.Is(err, errUnknownUser),
		errors.Is(err, errNotInCart), errors.Is(err, errUnknownRecipe):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// intQuery falls back when the parameter is absent or not an integer
func intQuery(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}
