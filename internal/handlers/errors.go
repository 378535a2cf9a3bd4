package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"shoe-assistant-api/internal/services"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// internalErrorText is shown for every infrastructure failure
const internalErrorText = "Internal server error"

// failure maps a service error to a status code and caller-facing text.
// Infrastructure detail is logged and never returned.
func failure(log *logrus.Entry, err error) (int, string) {
	switch kind := services.KindOf(err); kind {
	case services.KindValidation:
		log.WithError(err).Warn("Missing required field")
		return http.StatusBadRequest, "Error: " + services.MessageOf(err)
	case services.KindInvalidOperation, services.KindNotFound:
		log.WithError(err).WithField("kind", kind.String()).Warn("Request could not be completed")
		return http.StatusInternalServerError, "Error: " + services.MessageOf(err)
	default:
		log.WithError(err).Error("Unexpected error")
		return http.StatusInternalServerError, internalErrorText
	}
}
