package handlers

import (
	"net/http"

	intconfig "github.com/stevenadel/iti-events-server/internal/config"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database is not connected"})
		return
	}
	var count int
	if err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "users": count})
}
