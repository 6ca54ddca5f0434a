// internal/handlers/helpers.go

package handlers

import (
	"github.com/gin-gonic/gin"
)

// returnError writes the {"message": ...} body every endpoint uses for failures.
func returnError(c *gin.Context, message string, statusCode int) {
	c.JSON(statusCode, gin.H{"message": message})
}
