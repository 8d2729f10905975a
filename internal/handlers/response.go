package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kanishka132/StudyBuddy-AI/internal/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError maps the error through the apierr taxonomy and writes the
// error envelope.
func RespondError(c *gin.Context, err error) {
	status, code := apierr.StatusOf(err)
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
