package task

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"duekeeper/dto"
	"duekeeper/model"
	"duekeeper/storage"
	"duekeeper/syncer"

	"github.com/gin-gonic/gin"
)

func UpdateTaskController(router *gin.Engine, tasks *storage.TaskStore, reconciler *syncer.Reconciler) {
	router.PUT("/updatetask/:taskid", func(c *gin.Context) {
		AdjustTask(c, tasks, reconciler)
	})
}

func AdjustTask(c *gin.Context, tasks *storage.TaskStore, reconciler *syncer.Reconciler) {
	taskID, err := strconv.Atoi(c.Param("taskid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var req dto.AdjustTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	// Only the fields actually sent are updated.
	updates := make(map[string]interface{})

	if name := strings.TrimSpace(req.TaskName); name != "" {
		if len(name) > 255 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Task name is too long (max 255 characters)"})
			return
		}
		updates["task_name"] = name
	}

	if description := strings.TrimSpace(req.Description); description != "" {
		if len(description) > 2000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Description is too long (max 2000 characters)"})
			return
		}
		updates["description"] = description
	}

	if req.Deadline != nil {
		if req.Deadline.IsZero() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deadline"})
			return
		}
		updates["deadline"] = *req.Deadline
	}

	if priority := strings.TrimSpace(req.Priority); priority != "" {
		if !model.ValidPriority(priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Priority must be high, medium or low"})
			return
		}
		updates["priority"] = priority
	}

	if category := strings.TrimSpace(req.Category); category != "" {
		if len(category) > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category is too long (max 100 characters)"})
			return
		}
		updates["category"] = category
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := tasks.Update(c.Request.Context(), taskID, updates); err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	outcome := reconciler.PushTask(c.Request.Context(), taskID)

	updatedTask, err := tasks.Get(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "Task updated successfully",
			"taskId":  taskID,
			"sync":    outcome,
		})
		return
	}

	if outcome.State != syncer.StateSynced {
		c.JSON(http.StatusPartialContent, gin.H{
			"message": "Task updated in database but failed to sync with remote",
			"task":    updatedTask,
			"sync":    outcome,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    updatedTask,
		"sync":    outcome,
	})
}
