package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"waitlist/internal/constant"
	"waitlist/internal/response"
)

const (
	CodeMalformedRequest = "MALFORMED_REQUEST"
	CodeQueueNotFound    = "QUEUE_NOT_FOUND"
	CodePartyNotFound    = "PARTY_NOT_FOUND"
	CodeCustomerNotFound = "CUSTOMER_NOT_FOUND"
	CodeBusinessNotFound = "BUSINESS_NOT_FOUND"
	CodeQueueExists      = "QUEUE_EXISTS"
	CodeVersionConflict  = "VERSION_CONFLICT"
	CodeStoreError       = "STORE_ERROR"
)

// statusFor maps an engine error onto the HTTP status and error code.
func statusFor(err error) (int, string, string) {
	switch {
	case errors.Is(err, constant.ErrMalformedRequest):
		return http.StatusBadRequest, CodeMalformedRequest, "Malformed request"
	case errors.Is(err, constant.ErrPartyNotFound):
		return http.StatusNotFound, CodePartyNotFound, "Party not found"
	case errors.Is(err, constant.ErrCustomerNotFound):
		return http.StatusNotFound, CodeCustomerNotFound, "Customer not found"
	case errors.Is(err, constant.ErrBusinessNotFound):
		return http.StatusNotFound, CodeBusinessNotFound, "Business not found"
	case errors.Is(err, constant.ErrNotFound):
		return http.StatusNotFound, CodeQueueNotFound, "Queue not found"
	case errors.Is(err, constant.ErrAlreadyExists):
		return http.StatusConflict, CodeQueueExists, "Queue already exists"
	case errors.Is(err, constant.ErrVersionConflict):
		return http.StatusConflict, CodeVersionConflict, "Queue was modified concurrently, try again"
	default:
		return http.StatusInternalServerError, CodeStoreError, "Storage failure"
	}
}

func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	status, code, msg := statusFor(err)

	entry := logger.WithFields(logrus.Fields{
		"code":   code,
		"path":   c.FullPath(),
		"status": status,
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}

	c.JSON(status, response.ErrorResponse{
		Code:    code,
		Message: msg,
		Details: err.Error(),
	})
}

func badRequest(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{
		Code:    CodeMalformedRequest,
		Message: "Malformed request",
		Details: details,
	})
}
