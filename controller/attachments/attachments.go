package attachments

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"duekeeper/syncer"

	"github.com/gin-gonic/gin"
)

// maxImageSize bounds uploads at 10 MB.
const maxImageSize = 10 << 20

func AttachmentsController(router *gin.Engine, reconciler *syncer.Reconciler) {
	routes := router.Group("/attachment")
	{
		routes.POST("/:taskid", func(c *gin.Context) {
			UploadAttachment(c, reconciler)
		})
		routes.DELETE("/:taskid", func(c *gin.Context) {
			DeleteAttachment(c, reconciler)
		})
	}
}

func UploadAttachment(c *gin.Context, reconciler *syncer.Reconciler) {
	taskID, err := strconv.Atoi(c.Param("taskid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image is too large (max 10 MB)"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	outcome := reconciler.AttachImage(c.Request.Context(), taskID, data, fileHeader.Filename)
	switch {
	case outcome.State == syncer.StateSynced:
		c.JSON(http.StatusOK, gin.H{
			"message": "Image attached successfully",
			"taskID":  taskID,
			"sync":    outcome,
		})
	case outcome.State == syncer.StateSkipped:
		c.JSON(http.StatusConflict, gin.H{"error": outcome.Reason})
	case outcome.Reason == "task not found":
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case strings.Contains(outcome.Reason, "remote"):
		// The image is attached locally; only the remote mirror lags.
		c.JSON(http.StatusPartialContent, gin.H{
			"message": "Image attached in database but failed to sync with remote",
			"taskID":  taskID,
			"sync":    outcome,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach image", "sync": outcome})
	}
}

func DeleteAttachment(c *gin.Context, reconciler *syncer.Reconciler) {
	taskID, err := strconv.Atoi(c.Param("taskid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	outcome := reconciler.DetachImage(c.Request.Context(), taskID)
	switch {
	case outcome.State == syncer.StateSynced:
		c.JSON(http.StatusOK, gin.H{
			"message": "Image detached successfully",
			"taskID":  taskID,
			"sync":    outcome,
		})
	case outcome.State == syncer.StateSkipped && outcome.Reason == "no image attached":
		c.JSON(http.StatusNotFound, gin.H{"error": "No image attached"})
	case outcome.State == syncer.StateSkipped:
		c.JSON(http.StatusConflict, gin.H{"error": outcome.Reason})
	case outcome.Reason == "task not found":
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case strings.Contains(outcome.Reason, "remote"):
		c.JSON(http.StatusPartialContent, gin.H{
			"message": "Image detached in database but failed to sync with remote",
			"taskID":  taskID,
			"sync":    outcome,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach image", "sync": outcome})
	}
}
