package main

import (
	"context"
	"log"

	"timealign/config"
	"timealign/internal/database"
	"timealign/internal/handler"
	"timealign/internal/mailer"
	"timealign/internal/queue"
	"timealign/internal/realtime"
	"timealign/internal/repository"
	"timealign/internal/service"
	"timealign/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	// repositories
	eventRepo := repository.NewEventRepository(pool)
	participantRepo := repository.NewParticipantRepository(pool)
	subscriptionRepo := repository.NewPushSubscriptionRepository(pool)

	// 推播工作走 Redis Stream，重啟不掉單
	notifyQueue, err := queue.NewRedisStreamNotificationQueue(rdb, "", nil)
	if err != nil {
		log.Fatalf("Failed to initialize notification queue: %v", err)
	}
	refresh := realtime.NewRedisRefreshTrigger(rdb)

	// services
	eventService := service.NewEventService(eventRepo)
	participantService := service.NewParticipantService(participantRepo, eventRepo, refresh, notifyQueue)
	pushService := service.NewPushService(subscriptionRepo, cfg.Push)
	mail := mailer.NewMailer(cfg.Mail)

	// worker：消化推播工作隊列
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notificationWorker := worker.NewNotificationWorker(pushService, notifyQueue)
	if err := notificationWorker.Start(ctx); err != nil {
		log.Fatalf("Failed to start notification worker: %v", err)
	}

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	handler.NewEventHandler(eventService).RegisterRoutes(router)
	handler.NewParticipantHandler(participantService).RegisterRoutes(router)
	handler.NewPushHandler(pushService).RegisterRoutes(router)
	handler.NewNotifyHandler(mail).RegisterRoutes(router)
	handler.NewStreamHandler(refresh).RegisterRoutes(router)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
