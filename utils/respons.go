package utils

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the JSON shape of write answers on the menu API.
type Envelope struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Envelope{
		Status:  code < 400,
		Message: message,
		Data:    data,
	})
}

// RespondError answers with err's text and stops the handler chain.
func RespondError(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, Envelope{Message: err.Error()})
}
