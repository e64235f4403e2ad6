package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	firebaseapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"

	"freelancehub/internal/adapter/api"
	"freelancehub/internal/adapter/api/handler"
	"freelancehub/internal/adapter/api/middleware"
	"freelancehub/internal/adapter/api/router"
	"freelancehub/internal/adapter/repository"
	"freelancehub/internal/domain/service"
	"freelancehub/internal/infrastructure/firebase"
	"freelancehub/internal/infrastructure/ratelimit"
	"freelancehub/internal/infrastructure/storage"
	"freelancehub/internal/infrastructure/websocket"
	"freelancehub/internal/usecase"
	"freelancehub/pkg/config"
	"freelancehub/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	app, err := firebaseapp.NewApp(ctx, &firebaseapp.Config{ProjectID: cfg.FirebaseProject})
	if err != nil {
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize auth client: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	gcsClient, err := storage.NewGCSClient(ctx, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}
	defer gcsClient.Close()

	// Infrastructure
	firebaseAuth := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)
	wsManager := websocket.NewManager()
	wsManager.Start(ctx)
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()
	paymentGateway := service.NewStripePaymentService(cfg.StripeSecretKey)

	// Repositories
	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	gigRepo := repository.NewFirestoreGigRepository(firestoreClient)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)

	// Usecases
	notificationUsecase := usecase.NewNotificationUsecase(notificationRepo, wsManager)
	userUsecase := usecase.NewUserUsecase(userRepo, firebaseAuth)
	gigUsecase := usecase.NewGigUsecase(gigRepo)
	orderUsecase := usecase.NewOrderUsecase(orderRepo, gigRepo, userRepo, notificationUsecase, cfg.AutoCompleteDays)
	paymentUsecase := usecase.NewPaymentUsecase(orderRepo, userRepo, orderUsecase, notificationUsecase, paymentGateway, cfg.FrontendURL)
	reviewUsecase := usecase.NewReviewUsecase(reviewRepo, orderRepo, gigRepo, userRepo, notificationUsecase)
	chatUsecase := usecase.NewChatUsecase(conversationRepo, userRepo, notificationUsecase, paymentUsecase, wsManager, rateLimiter)

	handler.Setup(handler.SetupParams{
		Config:              cfg,
		UserUsecase:         userUsecase,
		GigUsecase:          gigUsecase,
		OrderUsecase:        orderUsecase,
		PaymentUsecase:      paymentUsecase,
		ReviewUsecase:       reviewUsecase,
		NotificationUsecase: notificationUsecase,
		ChatUsecase:         chatUsecase,
		FileStorage:         gcsClient,
		WSManager:           wsManager,
		AuthClient:          firebaseAuth,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()

	authMiddleware := middleware.NewAuthMiddleware(firebaseAuth)
	router.Setup(e, cfg, authMiddleware)

	go func() {
		logger.Info("Server starting on port %s (%s)", cfg.ServerPort, cfg.Environment)
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Info("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}

	logger.Info("Server exited")
}
