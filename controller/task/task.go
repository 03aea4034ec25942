package task

import (
	"duekeeper/storage"

	"github.com/gin-gonic/gin"
)

func TaskController(router *gin.Engine, tasks *storage.TaskStore) {
	router.GET("/task/:taskid", func(c *gin.Context) {
		GetTask(c, tasks)
	})
}
