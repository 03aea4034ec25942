package sync

import (
	"log"
	"net/http"

	"duekeeper/syncer"

	"github.com/gin-gonic/gin"
)

func SyncController(router *gin.Engine, reconciler *syncer.Reconciler) {
	router.POST("/sync", func(c *gin.Context) {
		SyncAll(c, reconciler)
	})
	router.POST("/sync/pull", func(c *gin.Context) {
		PullTasks(c, reconciler)
	})
}

// SyncAll runs a full merge: push everything local, then pull everything
// remote. Push conflicts favor local state, pull conflicts favor remote.
func SyncAll(c *gin.Context, reconciler *syncer.Reconciler) {
	ctx := c.Request.Context()

	pushed, err := reconciler.PushAll(ctx)
	if err != nil {
		log.Printf("API Error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pulled, err := reconciler.PullAll(ctx)
	if err != nil {
		log.Printf("API Error: %v", err)
		c.JSON(http.StatusPartialContent, gin.H{
			"message":       "Push completed but pull failed",
			"error":         err.Error(),
			"push_outcomes": pushed,
		})
		return
	}

	synced, failed, skipped := countStates(append(append([]syncer.Outcome{}, pushed...), pulled...))
	c.JSON(http.StatusOK, gin.H{
		"message":       "Sync completed",
		"pushed":        len(pushed),
		"pulled":        len(pulled),
		"synced":        synced,
		"failed":        failed,
		"skipped":       skipped,
		"push_outcomes": pushed,
		"pull_outcomes": pulled,
	})
}

// PullTasks loads the remote task set into the local store, remote wins.
func PullTasks(c *gin.Context, reconciler *syncer.Reconciler) {
	pulled, err := reconciler.PullAll(c.Request.Context())
	if err != nil {
		log.Printf("API Error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	synced, failed, skipped := countStates(pulled)
	c.JSON(http.StatusOK, gin.H{
		"message":  "Pull completed",
		"pulled":   len(pulled),
		"synced":   synced,
		"failed":   failed,
		"skipped":  skipped,
		"outcomes": pulled,
	})
}

func countStates(outcomes []syncer.Outcome) (synced, failed, skipped int) {
	for _, outcome := range outcomes {
		switch outcome.State {
		case syncer.StateSynced:
			synced++
		case syncer.StateFailed:
			failed++
		case syncer.StateSkipped:
			skipped++
		}
	}
	return synced, failed, skipped
}
