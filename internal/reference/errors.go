package reference

import "fmt"

// DecodeError represents reference data that is not a JSON array of values.
type DecodeError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("decode error: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// CacheError represents a failure reading or writing a cache file.
type CacheError struct {
	Path    string
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error for %s: %s", e.Path, e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// UnavailableError is returned when a list could not be obtained within the
// retry budget.
type UnavailableError struct {
	Kind     Kind
	Attempts int
	// Last is the result of the final attempt.
	Last  *Result
	Cause error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s unavailable after %d attempts: %v", e.Kind, e.Attempts, e.Cause)
	}
	return fmt.Sprintf("%s unavailable after %d attempts", e.Kind, e.Attempts)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}
