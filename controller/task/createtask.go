package task

import (
	"net/http"
	"strings"

	"duekeeper/dto"
	"duekeeper/model"
	"duekeeper/storage"
	"duekeeper/syncer"

	"github.com/gin-gonic/gin"
)

func CreateTaskController(router *gin.Engine, tasks *storage.TaskStore, reconciler *syncer.Reconciler) {
	router.POST("/task", func(c *gin.Context) {
		CreateTask(c, tasks, reconciler)
	})
}

func CreateTask(c *gin.Context, tasks *storage.TaskStore, reconciler *syncer.Reconciler) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	newTask := model.Tasks{
		TaskName:    strings.TrimSpace(req.TaskName),
		Description: strings.TrimSpace(req.Description),
		Deadline:    req.Deadline,
		Priority:    priority,
		Category:    strings.TrimSpace(req.Category),
	}
	if newTask.TaskName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task name is required"})
		return
	}

	if err := tasks.Upsert(c.Request.Context(), &newTask); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	// Mirror to the remote replica. A failed push is not rolled back; the
	// next sync retries it.
	outcome := reconciler.PushTask(c.Request.Context(), newTask.TaskID)
	if outcome.State != syncer.StateSynced {
		c.JSON(http.StatusPartialContent, gin.H{
			"message": "Task created in database but failed to sync with remote",
			"taskID":  newTask.TaskID,
			"sync":    outcome,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"taskID":  newTask.TaskID,
		"sync":    outcome,
	})
}
