package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseUintParam reads a numeric path parameter, responding 400 and
// returning ok=false when it is not a positive integer.
func parseUintParam(c *gin.Context, param string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: c.Param(param),
		})
		return 0, false
	}
	return uint(value), true
}

// parseIndexParam reads a zero-based question index path parameter.
func parseIndexParam(c *gin.Context, param string) (int, bool) {
	value, err := strconv.Atoi(c.Param(param))
	if err != nil || value < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: c.Param(param),
		})
		return 0, false
	}
	return value, true
}
