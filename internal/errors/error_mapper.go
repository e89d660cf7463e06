package errors

import (
	"errors"
	"net/http"
)

// HTTPError is the standardized error payload shape returned by handlers.
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

// MapError converts a pipeline error into an HTTP status, code and
// user-facing message. Provider-level failures never reach this mapper;
// they are contained inside the aggregator.
func MapError(err error) HTTPError {
	var (
		noResults  *NoResultsError
		validation *ValidationError
		aggregate  *AggregationError
	)

	switch {
	case errors.As(err, &validation):
		return HTTPError{
			Status:  http.StatusBadRequest,
			Code:    ErrCodeInvalidCriteria,
			Message: validation.Error(),
		}
	case errors.As(err, &noResults):
		return HTTPError{
			Status:  http.StatusNotFound,
			Code:    ErrCodeNoResults,
			Message: noResults.Error(),
		}
	case errors.As(err, &aggregate):
		return HTTPError{
			Status:  http.StatusBadGateway,
			Code:    ErrCodeAggregationFailed,
			Message: "listing search is temporarily unavailable, please try again",
		}
	default:
		return HTTPError{
			Status:  http.StatusInternalServerError,
			Code:    ErrCodeServiceUnavailable,
			Message: "something went wrong, please try again later",
		}
	}
}
