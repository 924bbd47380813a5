package api

import (
	"fmt"
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
	"time"
)

func okPayload(v interface{}) gin.H {
	if v == nil {
		return gin.H{
			"status":    "ok",
			"timestamp": time.Now(),
		}
	}
	return gin.H{
		"status":    "ok",
		"timestamp": time.Now(),
		"response":  v,
	}
}

func errorPayload(message string) gin.H {
	return gin.H{
		"status":    "error",
		"message":   message,
		"timestamp": time.Now(),
	}
}

// parseEpoch parses the epoch path parameter. The request is aborted with a
// bad request status, if it couldn't be parsed.
func parseEpoch(c *gin.Context) (uint, bool) {
	epoch, err := strconv.ParseUint(c.Param("epoch"), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorPayload("epoch couldn't be parsed"))
		return 0, false
	}
	return uint(epoch), true
}

// parseQueryUint parses the query parameter with the given name, or returns
// the given default if the parameter isn't set. The request is aborted with
// a bad request status, if it couldn't be parsed.
func parseQueryUint(c *gin.Context, name string, def uint) (uint, bool) {
	param := c.Query(name)
	if param == "" {
		return def, true
	}
	val, err := strconv.ParseUint(param, 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			errorPayload(fmt.Sprintf("the given %s query parameter couldn't be parsed", name)))
		return 0, false
	}
	return uint(val), true
}
