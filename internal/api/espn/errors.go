package espn

import (
	"errors"
	"fmt"
)

type FetchErrorKind string

const (
	KindNetwork    FetchErrorKind = "network"
	KindHTTPStatus FetchErrorKind = "http_status"
	KindParse      FetchErrorKind = "parse"
	KindNotFound   FetchErrorKind = "not_found"
)

// FetchError is returned by every ESPN fetch. Callers above the API layer
// collapse it into empty or fallback data and only use it for logging.
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode > 0:
		return fmt.Sprintf("espn %s: status %d from %s", e.Kind, e.StatusCode, e.URL)
	case e.Err != nil:
		return fmt.Sprintf("espn %s: %s: %v", e.Kind, e.URL, e.Err)
	default:
		return fmt.Sprintf("espn %s: %s", e.Kind, e.URL)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AsFetchError unwraps err into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// ErrTeamNotFound is returned by ResolveTeam when no directory entry matches.
var ErrTeamNotFound = errors.New("team not found")
