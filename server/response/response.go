package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/ashil31/Admin-Panel/errors"
)

// JSON writes the standard response envelope.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	errMessage := ""
	if err != nil {
		errMessage = err.Error()
	}
	c.JSON(status, gin.H{
		"message": message,
		"data":    data,
		"errors":  errMessage,
		"status":  http.StatusText(status),
	})
}

// HandleErrors responds according to the error's type: *errs.Error keeps
// its embedded status, anything else becomes a generic 500.
func HandleErrors(c *gin.Context, err error) {
	if apiErr, ok := err.(*errs.Error); ok {
		JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
		return
	}
	JSON(c, "internal server error", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
}
