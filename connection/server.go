package connection

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"duekeeper/config"
	"duekeeper/controller/attachments"
	"duekeeper/controller/notification"
	"duekeeper/controller/quote"
	syncctl "duekeeper/controller/sync"
	"duekeeper/controller/task"
	"duekeeper/deadline"
	"duekeeper/middleware"
	"duekeeper/notify"
	"duekeeper/storage"
	"duekeeper/syncer"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func StartServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	DB, err := DBConnection(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	FB, err := FBConnection(ctx, cfg.ProjectID, cfg.CredentialsFile)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}
	defer FB.Close()

	app, err := FirebaseApp(ctx, cfg.CredentialsFile)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}

	bucket, err := StorageBucket(ctx, app, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to open storage bucket: %v", err)
	}

	sink, err := notify.NewTopicSink(ctx, app, cfg.FCMTopic)
	if err != nil {
		log.Fatalf("Failed to initialize notification sink: %v", err)
	}

	tasks := storage.NewTaskStore(DB)
	replica := storage.NewReplica(FB, cfg.RemoteCollection)
	assets := storage.NewAssetStore(bucket)

	reconciler := syncer.NewReconciler(tasks, replica, assets, cfg.SyncTimeout)
	scheduler := deadline.NewScheduler(tasks, sink, cfg.NotifyInterval)

	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.Use(cors.Default())
	router.Use(middleware.RequestID())

	task.TaskController(router, tasks)
	task.AllTasksController(router, tasks)
	task.CreateTaskController(router, tasks, reconciler)
	task.UpdateTaskController(router, tasks, reconciler)
	task.FinishTaskController(router, tasks, reconciler, scheduler)
	task.DeleteTaskController(router, tasks, reconciler, scheduler)

	attachments.AttachmentsController(router, reconciler)

	syncctl.SyncController(router, reconciler)

	notification.NotificationController(router, scheduler)

	quote.QuoteController(router, cfg.QuoteAPIURL)

	// The deadline loop outlives any request and stops only at shutdown.
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server started on port %s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := scheduler.Stop(shutdownCtx); err != nil {
		log.Printf("⚠️ Scheduler did not stop cleanly: %v", err)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
