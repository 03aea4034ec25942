package task

import (
	"net/http"
	"strconv"

	"duekeeper/deadline"
	"duekeeper/storage"
	"duekeeper/syncer"

	"github.com/gin-gonic/gin"
)

func DeleteTaskController(router *gin.Engine, tasks *storage.TaskStore, reconciler *syncer.Reconciler, scheduler *deadline.Scheduler) {
	router.DELETE("/deltask/:taskid", func(c *gin.Context) {
		DeleteTask(c, tasks, reconciler, scheduler)
	})
}

func DeleteTask(c *gin.Context, tasks *storage.TaskStore, reconciler *syncer.Reconciler, scheduler *deadline.Scheduler) {
	taskID, err := strconv.Atoi(c.Param("taskid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	// Fetch first: the remote id and image locator are needed after the row
	// is gone.
	task, err := tasks.Get(c.Request.Context(), taskID)
	if err != nil {
		if err == storage.ErrTaskNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get task data"})
		return
	}

	if err := tasks.Delete(c.Request.Context(), taskID); err != nil {
		if err == storage.ErrTaskNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task from database"})
		return
	}

	scheduler.Forget(taskID)

	outcome := reconciler.DeleteRemote(c.Request.Context(), task)
	if outcome.State == syncer.StateFailed {
		c.JSON(http.StatusPartialContent, gin.H{
			"message": "Task deleted from database but remote delete failed",
			"taskID":  taskID,
			"sync":    outcome,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"taskID":  taskID,
		"sync":    outcome,
	})
}
