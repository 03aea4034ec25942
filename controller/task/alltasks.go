package task

import (
	"net/http"
	"strings"
	"time"

	"duekeeper/storage"

	"github.com/gin-gonic/gin"
)

func AllTasksController(router *gin.Engine, tasks *storage.TaskStore) {
	router.GET("/alltasks", func(c *gin.Context) {
		AllTasks(c, tasks)
	})
}

// AllTasks lists open tasks ordered by deadline. A q parameter switches to a
// text search, from/to to a deadline range.
func AllTasks(c *gin.Context, tasks *storage.TaskStore) {
	ctx := c.Request.Context()

	if query := strings.TrimSpace(c.Query("q")); query != "" {
		found, err := tasks.Search(ctx, query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search tasks"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tasks": found, "count": len(found)})
		return
	}

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr != "" || toStr != "" {
		if fromStr == "" || toStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Both from and to are required for a range query"})
			return
		}
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from timestamp"})
			return
		}
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to timestamp"})
			return
		}
		if to.Before(from) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Range end is before its start"})
			return
		}

		due, err := tasks.ListDueBetween(ctx, from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tasks": due, "count": len(due)})
		return
	}

	open, err := tasks.ListOpenTasks(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": open, "count": len(open)})
}
