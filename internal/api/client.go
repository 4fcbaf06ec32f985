// Package api is the HTTP client for the storefront API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"pantry/internal/domain"
)

const requestIDHeader = "X-Request-ID"

// TokenSource supplies the bearer token for cart calls. An empty token means
// the user is signed out.
type TokenSource interface {
	Token() (string, error)
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client; its Timeout wins over the
// timeout passed to New.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource sets where bearer tokens come from
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger.Named("api")
		}
	}
}

// Client talks to the storefront API
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	logger  *zap.Logger
	carts   singleflight.Group
}

// New creates a client for baseURL. A zero timeout means no client-side
// timeout.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root, without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// SearchRecipes fetches one page of recipe search results. The endpoint is
// public; no token is sent.
func (c *Client) SearchRecipes(ctx context.Context, search domain.RecipeSearch, requestID string) ([]domain.Recipe, error) {
	q := url.Values{}
	q.Set("q", search.Term)
	q.Set("vegan", strconv.FormatBool(search.Vegan))
	q.Set("gluten_free", strconv.FormatBool(search.GlutenFree))
	q.Set("page", strconv.Itoa(search.Page))
	q.Set("per_page", strconv.Itoa(search.PerPage))

	var recipes []domain.Recipe
	if err := c.do(ctx, call{
		method:    http.MethodGet,
		path:      "/recipes/search",
		query:     q,
		requestID: requestID,
		out:       &recipes,
	}); err != nil {
		return nil, err
	}
	return recipes, nil
}

// Recipe fetches a single recipe
func (c *Client) Recipe(ctx context.Context, id int) (domain.Recipe, error) {
	var recipe domain.Recipe
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/recipes/" + strconv.Itoa(id),
		out:    &recipe,
	})
	return recipe, err
}

// Login exchanges credentials for tokens
func (c *Client) Login(ctx context.Context, username, password string) (domain.Tokens, error) {
	var tokens domain.Tokens
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"username": username, "password": password},
		out:    &tokens,
	})
	if err != nil {
		return domain.Tokens{}, err
	}
	if tokens.AccessToken == "" {
		return domain.Tokens{}, fmt.Errorf("login: invalid username or password")
	}
	return tokens, nil
}

// signupCreated is the API's success message; anything else is the reason
// the account was not created
const signupCreated = "User created successfully"

// Signup creates an account. The API answers every outcome with a message,
// so only the success message counts as success.
func (c *Client) Signup(ctx context.Context, username, email, password string) error {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/auth/signup",
		body:   map[string]string{"username": username, "email": email, "password": password},
		out:    &resp,
	})
	if err != nil {
		return err
	}
	if resp.Message != signupCreated {
		return fmt.Errorf("signup: %s", resp.Message)
	}
	return nil
}

type cartItemBody struct {
	ItemID   int `json:"itemId"`
	Quantity int `json:"quantity"`
}

// ListCart returns the signed-in user's cart. Concurrent calls share one
// request.
func (c *Client) ListCart(ctx context.Context) ([]domain.CartLine, error) {
	v, err, shared := c.carts.Do("list", func() (interface{}, error) {
		var lines []domain.CartLine
		err := c.do(ctx, call{
			method: http.MethodGet,
			path:   "/cart/items",
			auth:   true,
			out:    &lines,
		})
		return lines, err
	})
	if shared {
		c.logger.Debug("cart list coalesced")
	}
	if err != nil {
		return nil, err
	}
	lines := v.([]domain.CartLine)
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out, nil
}

// AddToCart adds quantity of an item to the cart
func (c *Client) AddToCart(ctx context.Context, itemID, quantity int) error {
	return c.do(ctx, call{
		method: http.MethodPost,
		path:   "/cart/add",
		auth:   true,
		body:   cartItemBody{ItemID: itemID, Quantity: quantity},
	})
}

// UpdateCartItem sets the quantity of an item already in the cart
func (c *Client) UpdateCartItem(ctx context.Context, itemID, quantity int) error {
	return c.do(ctx, call{
		method: http.MethodPut,
		path:   "/cart/update",
		auth:   true,
		body:   cartItemBody{ItemID: itemID, Quantity: quantity},
	})
}

// RemoveFromCart drops an item from the cart
func (c *Client) RemoveFromCart(ctx context.Context, itemID int) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/cart/remove/" + strconv.Itoa(itemID),
		auth:   true,
	})
}

type call struct {
	method    string
	path      string
	query     url.Values
	body      interface{}
	auth      bool
	requestID string
	out       interface{}
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, cl call) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + cl.path
	if cl.query != nil {
		u.RawQuery = cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", cl.method, cl.path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", cl.method, cl.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := cl.requestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(requestIDHeader, requestID)

	if cl.auth {
		token, err := c.token()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", cl.method, cl.path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api call",
		zap.String("method", cl.method),
		zap.String("path", cl.path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Method: cl.method, Path: cl.path, Status: resp.StatusCode}
		var eb errorBody
		if data, rerr := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); rerr == nil && json.Unmarshal(data, &eb) == nil {
			se.Message = eb.Message
			if se.Message == "" {
				se.Message = eb.Error
			}
		}
		return se
	}

	if cl.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
		return fmt.Errorf("decode %s %s: %w", cl.method, cl.path, err)
	}
	return nil
}

func (c *Client) token() (string, error) {
	if c.tokens == nil {
		return "", ErrNotLoggedIn
	}
	token, err := c.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}
