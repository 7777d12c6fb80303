package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam reads the :id path segment as an unsigned integer.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// fieldErrors accumulates per-field validation messages for 422 bodies.
type fieldErrors map[string][]string

func (fe fieldErrors) add(field, message string) {
	fe[field] = append(fe[field], message)
}
