package task

import (
	"net/http"
	"strconv"

	"duekeeper/deadline"
	"duekeeper/storage"
	"duekeeper/syncer"

	"github.com/gin-gonic/gin"
)

func FinishTaskController(router *gin.Engine, tasks *storage.TaskStore, reconciler *syncer.Reconciler, scheduler *deadline.Scheduler) {
	router.PATCH("/finishtask/:taskid", func(c *gin.Context) {
		FinishTask(c, tasks, reconciler, scheduler)
	})
}

func FinishTask(c *gin.Context, tasks *storage.TaskStore, reconciler *syncer.Reconciler, scheduler *deadline.Scheduler) {
	taskID, err := strconv.Atoi(c.Param("taskid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	currentTask, err := tasks.Get(c.Request.Context(), taskID)
	if err != nil {
		if err == storage.ErrTaskNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get task data"})
		return
	}

	if currentTask.IsCompleted {
		c.JSON(http.StatusOK, gin.H{"message": "Task already completed", "taskID": taskID})
		return
	}

	if err := tasks.Update(c.Request.Context(), taskID, map[string]interface{}{"is_completed": true}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete task"})
		return
	}

	// Completed tasks never alert again until they reopen.
	scheduler.Forget(taskID)

	outcome := reconciler.PushTask(c.Request.Context(), taskID)
	if outcome.State != syncer.StateSynced {
		c.JSON(http.StatusPartialContent, gin.H{
			"message": "Task completed in database but failed to sync with remote",
			"taskID":  taskID,
			"sync":    outcome,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task completed successfully",
		"taskID":  taskID,
		"sync":    outcome,
	})
}
