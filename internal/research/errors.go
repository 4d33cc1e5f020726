// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import "fmt"

// InitError reports that a client could not be constructed from the supplied
// credential. No search or model call has been made when it is returned.
type InitError struct {
	// Component is "search" or "model".
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initializing %s client: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// SearchError reports that the search call failed and the run was aborted.
type SearchError struct {
	Query string
	Err   error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("searching %q: %v", e.Query, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }
