package client

import "fmt"

// NetworkError wraps a transport-level failure reaching the provider.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("unable to reach authentication servers (%s): %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-success status from the provider. There is no
// automatic retry; callers treat it as a failed attempt.
type HTTPError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s failed (%d)", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s failed (%d): %s", e.Op, e.StatusCode, e.Message)
}

// DecodeError is a malformed JSON payload from the provider.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid response from server (%s): %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
