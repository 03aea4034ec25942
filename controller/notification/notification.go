package notification

import (
	"log"
	"net/http"

	"duekeeper/deadline"

	"github.com/gin-gonic/gin"
)

func NotificationController(router *gin.Engine, scheduler *deadline.Scheduler) {
	router.POST("/notifications/run", func(c *gin.Context) {
		RunNotifications(c, scheduler)
	})
}

// RunNotifications triggers one evaluation pass outside the cron cadence.
func RunNotifications(c *gin.Context, scheduler *deadline.Scheduler) {
	result, err := scheduler.RunTick(c.Request.Context())
	if err != nil {
		log.Printf("API Error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       result.Message,
		"current_time":  result.CurrentTime,
		"total_count":   result.TotalCount,
		"success_count": result.SuccessCount,
		"error_count":   result.ErrorCount,
	})
}
