package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

var errInvalidID = errors.New("invalid id")

// paramID reads a positive numeric path parameter.
func paramID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}
