// Package mealplan is the recipe search engine behind the meal-planning
// screen. It couples a mutable query (free-text term plus dietary filters) to
// a paginated result list that only ever grows for the live query.
//
// The package holds no goroutines and no locks. A host owns a *State and
// calls its operations from one event loop; the only blocking call is
// Coordinator.Fetch, which the host runs elsewhere and whose result it hands
// back to Coordinator.Apply on the event loop. Every PageRequest is fenced by
// the state's generation and page cursor, so responses for a superseded query
// or out-of-order pages are dropped at apply time.
package mealplan
