package server

import (
	"errors"
	"net/http"

	animaldomain "github.com/MegaDev007/farmheart-backend-sub000/internal/animal/domain"
	notificationdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/notification/domain"
	ownerdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/owner/domain"
	"github.com/gin-gonic/gin"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not_found")
	ErrRateLimited  = errors.New("rate_limited")
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string { return e.Code }

func newValidationError(field, code, message string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: code, Message: message, Field: field}
}

func invalidRequestError() *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "request body could not be parsed"}
}

// AbortWithError translates a domain error into an HTTP response and stops
// the handler chain.
func AbortWithError(c *gin.Context, err error) {
	var api *apiError
	if errors.As(err, &api) {
		c.AbortWithStatusJSON(api.Status, gin.H{"error": api})
		return
	}

	status := http.StatusInternalServerError
	code := "internal_error"

	switch {
	case errors.Is(err, ErrUnauthorized):
		status, code = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, ErrForbidden):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, ErrRateLimited):
		status, code = http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, ErrNotFound),
		errors.Is(err, animaldomain.ErrNotFound),
		errors.Is(err, notificationdomain.ErrNotFound),
		errors.Is(err, ownerdomain.ErrNotFound):
		status, code = http.StatusNotFound, err.Error()
	case errors.Is(err, animaldomain.ErrInvalidID),
		errors.Is(err, notificationdomain.ErrInvalidID),
		errors.Is(err, ownerdomain.ErrInvalidID):
		status, code = http.StatusBadRequest, err.Error()
	case errors.Is(err, animaldomain.ErrInvalidTransition):
		status, code = http.StatusConflict, err.Error()
	}

	message := code
	if status == http.StatusInternalServerError {
		// Do not leak storage errors to clients.
		message = "internal error"
	}

	c.AbortWithStatusJSON(status, gin.H{"error": &apiError{Status: status, Code: code, Message: message}})
}
