package errors

import (
	"errors"
	"fmt"
)

// Common error codes surfaced to the API layer.
const (
	ErrCodeInvalidCriteria    = "INVALID_CRITERIA"
	ErrCodeNoResults          = "NO_RESULTS"
	ErrCodeAggregationFailed  = "AGGREGATION_FAILED"
	ErrCodeProviderFailed     = "PROVIDER_FAILED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// ProviderError reports a single provider call that failed (timeout,
// malformed response, transport error). It is contained by the aggregator:
// logged and excluded from the merge, never propagated to the caller.
type ProviderError struct {
	Provider string
	Cause    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Cause)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError wraps a provider failure with its source.
func NewProviderError(provider string, cause error) *ProviderError {
	return &ProviderError{Provider: provider, Cause: cause}
}

// NoResultsError is raised in strict mode when every real provider resolved
// and the merged result set is still empty. It is never silently replaced
// with synthetic data.
type NoResultsError struct {
	City string
}

func (e *NoResultsError) Error() string {
	if e.City != "" {
		return fmt.Sprintf("no listings found for %s", e.City)
	}
	return "no listings found"
}

// AggregationError reports an unexpected failure orchestrating the fan-out
// itself, as opposed to a single provider's fault. The whole search should
// be treated as failed.
type AggregationError struct {
	Cause error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation failed: %v", e.Cause)
}

func (e *AggregationError) Unwrap() error {
	return e.Cause
}

// ValidationError reports malformed search criteria.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid criteria: %s %s", e.Field, e.Reason)
}

// IsNoResults reports whether err is a NoResultsError.
func IsNoResults(err error) bool {
	var target *NoResultsError
	return errors.As(err, &target)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
