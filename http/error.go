package http

import (
	"net/http"

	"github.com/fwojciec/skim"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error writes err as a JSON error response. Server errors are logged.
func (s *Server) Error(c *gin.Context, err error) {
	code, message := skim.ErrorCode(err), skim.ErrorMessage(err)
	status := ErrorStatusCode(err)

	if status >= http.StatusInternalServerError {
		s.Logger.Error("http error",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"code", code,
			"request_id", c.GetString("request_id"),
			"err", err,
		)
	}

	c.AbortWithStatusJSON(status, &ErrorResponse{Error: message})
}

// ErrorStatusCode returns the HTTP status for an application error.
// Upstream failures keep the upstream status when it is an error status.
func ErrorStatusCode(err error) int {
	switch skim.ErrorCode(err) {
	case skim.EINVALID, skim.EEMPTY, skim.ENOTREADABLE, skim.EEMPTYINPUT, skim.ETOOSHORT:
		return http.StatusBadRequest
	case skim.EFETCH, skim.EINFERENCEFAILED:
		if status := skim.ErrorStatus(err); status >= 400 && status <= 599 {
			return status
		}
		return http.StatusBadGateway
	case skim.ETIMEOUT:
		return http.StatusRequestTimeout
	case skim.EUNREACHABLE:
		return http.StatusServiceUnavailable
	case skim.EINFERENCEUNREACHABLE:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
