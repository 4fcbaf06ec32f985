package mealplan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pantry/internal/domain"
)

// ErrFetchFailed is the single failure kind for a page fetch. Transport
// errors, timeouts, non-2xx responses and undecodable bodies all wrap it.
var ErrFetchFailed = errors.New("fetch failed")

// FetchFailedMessage is what the user sees for any ErrFetchFailed
const FetchFailedMessage = "Failed to fetch recipes. Please try again."

// UserMessage maps an error from the pagination state to display text
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrFetchFailed) {
		return FetchFailedMessage
	}
	return err.Error()
}

// Searcher retrieves one page of recipes
type Searcher interface {
	SearchRecipes(ctx context.Context, search domain.RecipeSearch, requestID string) ([]domain.Recipe, error)
}

// PageResult is the outcome of Fetch, to be handed to Apply
type PageResult struct {
	Request PageRequest
	Items   []domain.Recipe
	Err     error
}

// Outcome says what Apply did with a result
type Outcome int

const (
	OutcomeStale     Outcome = iota // superseded request, state untouched
	OutcomeAppended                 // items appended, more may follow
	OutcomeExhausted                // empty page, no more pages for this query
	OutcomeFailed                   // fetch failed, error recorded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStale:
		return "stale"
	case OutcomeAppended:
		return "appended"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// Coordinator performs page fetches and folds their results into a State.
// It keeps no per-query state of its own.
type Coordinator struct {
	searcher Searcher
	logger   *zap.Logger
}

// NewCoordinator creates a coordinator. A nil logger disables logging.
func NewCoordinator(searcher Searcher, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		searcher: searcher,
		logger:   logger.Named("mealplan"),
	}
}

// Begin marks req as in flight: loading on, error cleared. Requests that do
// not belong to the live state are refused.
func (c *Coordinator) Begin(s *State, req PageRequest) bool {
	if !s.current(req) {
		c.logger.Debug("refusing stale request",
			zap.String("request_id", req.ID),
			zap.Int("page", req.Page),
			zap.Uint64("generation", req.Generation),
			zap.Uint64("live_generation", s.generation))
		return false
	}
	s.Pagination.Loading = true
	s.Pagination.Err = nil
	c.logger.Debug("page requested",
		zap.String("request_id", req.ID),
		zap.Stringer("query", req.Query),
		zap.Int("page", req.Page))
	return true
}

// Fetch performs the retrieval for req. It blocks and touches no State, so
// hosts run it off their event loop.
func (c *Coordinator) Fetch(ctx context.Context, req PageRequest) PageResult {
	start := time.Now()
	items, err := c.searcher.SearchRecipes(ctx, req.Search(), req.ID)
	if err != nil {
		c.logger.Warn("recipe search failed",
			zap.String("request_id", req.ID),
			zap.Stringer("query", req.Query),
			zap.Int("page", req.Page),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return PageResult{Request: req, Err: fmt.Errorf("%w: %w", ErrFetchFailed, err)}
	}
	c.logger.Debug("recipe search done",
		zap.String("request_id", req.ID),
		zap.Int("page", req.Page),
		zap.Int("items", len(items)),
		zap.Duration("elapsed", time.Since(start)))
	return PageResult{Request: req, Items: items}
}

// Apply folds a fetch result into s. A result is only applied while s is
// still waiting for exactly that request; anything else is discarded without
// touching s, including its loading flag, which belongs to the live request.
func (c *Coordinator) Apply(s *State, res PageResult) Outcome {
	req := res.Request
	if !s.Pagination.Loading || !s.current(req) {
		c.logger.Debug("discarding stale page",
			zap.String("request_id", req.ID),
			zap.Stringer("query", req.Query),
			zap.Int("page", req.Page),
			zap.Uint64("generation", req.Generation),
			zap.Uint64("live_generation", s.generation))
		return OutcomeStale
	}
	defer func() { s.Pagination.Loading = false }()

	if res.Err != nil {
		err := res.Err
		if !errors.Is(err, ErrFetchFailed) {
			err = fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}
		s.Pagination.Err = err
		return OutcomeFailed
	}

	if len(res.Items) == 0 {
		s.SetHasMore(false)
		return OutcomeExhausted
	}

	s.Results = append(s.Results, res.Items...)
	s.applied++
	s.SetHasMore(true)
	return OutcomeAppended
}

// Run is Begin, Fetch and Apply in sequence for callers without an event
// loop of their own.
func (c *Coordinator) Run(ctx context.Context, s *State, req PageRequest) Outcome {
	if !c.Begin(s, req) {
		return OutcomeStale
	}
	return c.Apply(s, c.Fetch(ctx, req))
}
