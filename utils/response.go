package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Responses follow one envelope: mutations carry a message plus the
// resource under its own key, reads carry the resource key alone, and
// validation failures carry a per-field errors map.

func SendError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func SendValidationErrors(c *gin.Context, errors map[string][]string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": "The given data was invalid.",
		"errors":  errors,
	})
}

func SendResource(c *gin.Context, key string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{key: data})
}

func SendCreated(c *gin.Context, message, key string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"message": message,
		key:       data,
	})
}

func SendMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// SendServerError hides the underlying error from the client; the
// handler is expected to have logged it already.
func SendServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
