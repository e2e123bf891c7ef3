package server

import (
	"errors"
	"net/http"

	conferencedomain "github.com/adrianolorenzi02/conferencia-compra/internal/conference/domain"
	invoicedomain "github.com/adrianolorenzi02/conferencia-compra/internal/invoice/domain"
	"github.com/gin-gonic/gin"
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string { return e.Code }

var errRateLimited = &apiError{
	Status:  http.StatusTooManyRequests,
	Code:    "rate_limited",
	Message: "too many scans, slow down",
}

func invalidRequestError() *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body could not be parsed",
	}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
		Field:   field,
	}
}

// AbortWithError maps domain errors onto HTTP responses.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, conferencedomain.ErrInvalidStep),
		errors.Is(err, conferencedomain.ErrLookupInFlight),
		errors.Is(err, conferencedomain.ErrNoInvoiceLoaded):
		status = http.StatusConflict
	case errors.Is(err, conferencedomain.ErrUnknownProduct),
		errors.Is(err, invoicedomain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, conferencedomain.ErrDuplicateBarcode),
		errors.Is(err, invoicedomain.ErrInvalidAccessKey):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, conferencedomain.ErrLookupFailed):
		status = http.StatusBadGateway
	}

	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{
		"code":    err.Error(),
		"message": err.Error(),
	}})
}
