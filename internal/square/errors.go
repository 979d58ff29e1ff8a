package square

import "fmt"

// AuthError means required credentials were missing or rejected. The caller
// should degrade to an empty catalog rather than abort the process.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return "square auth: " + e.Reason
}

// TransportError means the catalog request could not complete or returned a
// non-success status. Status is zero when the request never got a response.
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("square request failed: %v", e.Err)
	}
	return fmt.Sprintf("square api error (%d): %s", e.Status, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }
