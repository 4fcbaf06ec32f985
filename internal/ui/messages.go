package ui

import (
	"pantry/internal/domain"
	"pantry/internal/eventbus"
	"pantry/internal/mealplan"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// pageMsg carries a finished page fetch back to the update loop
type pageMsg struct {
	result mealplan.PageResult
}

// recipeDetailMsg contains a freshly fetched recipe for the detail pager
type recipeDetailMsg struct {
	recipe   domain.Recipe
	fallback domain.Recipe // the row as loaded, shown when the fetch fails
	err      error
}
