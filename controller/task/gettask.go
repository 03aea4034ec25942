package task

import (
	"net/http"
	"strconv"

	"duekeeper/storage"

	"github.com/gin-gonic/gin"
)

func GetTask(c *gin.Context, tasks *storage.TaskStore) {
	taskID, err := strconv.Atoi(c.Param("taskid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	task, err := tasks.Get(c.Request.Context(), taskID)
	if err != nil {
		if err == storage.ErrTaskNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}
