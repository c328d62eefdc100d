package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports liveness. It does not call the API.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "viveo admin radi"})
}
