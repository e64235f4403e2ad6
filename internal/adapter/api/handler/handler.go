package handler

import (
	"freelancehub/internal/infrastructure/firebase"
	"freelancehub/internal/infrastructure/storage"
	"freelancehub/internal/infrastructure/websocket"
	"freelancehub/internal/usecase"
	"freelancehub/pkg/config"
)

// Handler registry, populated once by Setup during startup and read by the
// router when binding routes.
var (
	userHandler         *UserHandler
	gigHandler          *GigHandler
	orderHandler        *OrderHandler
	paymentHandler      *PaymentHandler
	reviewHandler       *ReviewHandler
	notificationHandler *NotificationHandler
	chatHandler         *ChatHandler
	fileHandler         *FileHandler
	wsHandler           *WebSocketHandler
	devTokenHandler     *DevTokenHandler
)

type SetupParams struct {
	Config              *config.Config
	UserUsecase         *usecase.UserUsecase
	GigUsecase          *usecase.GigUsecase
	OrderUsecase        *usecase.OrderUsecase
	PaymentUsecase      *usecase.PaymentUsecase
	ReviewUsecase       *usecase.ReviewUsecase
	NotificationUsecase *usecase.NotificationUsecase
	ChatUsecase         *usecase.ChatUsecase
	FileStorage         storage.FileStorage
	WSManager           *websocket.Manager
	AuthClient          *firebase.FirebaseAuthClient
}

func Setup(p SetupParams) {
	userHandler = NewUserHandler(p.UserUsecase)
	gigHandler = NewGigHandler(p.GigUsecase)
	orderHandler = NewOrderHandler(p.OrderUsecase)
	paymentHandler = NewPaymentHandler(p.PaymentUsecase, p.Config.StripeWebhookSecret)
	reviewHandler = NewReviewHandler(p.ReviewUsecase)
	notificationHandler = NewNotificationHandler(p.NotificationUsecase)
	chatHandler = NewChatHandler(p.ChatUsecase)
	fileHandler = NewFileHandler(p.FileStorage)
	wsHandler = NewWebSocketHandler(p.WSManager, p.AuthClient)
	devTokenHandler = NewDevTokenHandler(p.AuthClient)
}

func GetUserHandler() *UserHandler                 { return userHandler }
func GetGigHandler() *GigHandler                   { return gigHandler }
func GetOrderHandler() *OrderHandler               { return orderHandler }
func GetPaymentHandler() *PaymentHandler           { return paymentHandler }
func GetReviewHandler() *ReviewHandler             { return reviewHandler }
func GetNotificationHandler() *NotificationHandler { return notificationHandler }
func GetChatHandler() *ChatHandler                 { return chatHandler }
func GetFileHandler() *FileHandler                 { return fileHandler }
func GetWebSocketHandler() *WebSocketHandler       { return wsHandler }
func GetDevTokenHandler() *DevTokenHandler         { return devTokenHandler }
