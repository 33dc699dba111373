package handlers

import (
	"time"

	"filevault/utils"

	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
