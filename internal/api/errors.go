package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotLoggedIn is returned by authenticated calls when no token is stored
var ErrNotLoggedIn = errors.New("not logged in")

// StatusError is a non-2xx response from the API
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// IsUnauthorized reports whether err means the stored credentials were
// missing or rejected
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrNotLoggedIn) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && (se.Status == http.StatusUnauthorized || se.Status == http.StatusUnprocessableEntity)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}
