package main

import (
	"database/sql"
	"log"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"blogupBack/internal/cache"
	"blogupBack/internal/config"
	"blogupBack/internal/handlers"
	"blogupBack/internal/notify"
	"blogupBack/internal/repositories"
	services "blogupBack/internal/services"
	"blogupBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	cfg      config.Config
	db       *sql.DB

	listingRepo *repositories.ListingRepository
	userRepo    *repositories.UserRepository

	dispatcher *notify.Dispatcher
	hub        *ChatHub

	responseHandler *handlers.ResponseHandler
	offerHandler    *handlers.OfferHandler
	chatHandler     *handlers.ChatHandler
}

func initializeApp(db *sql.DB, redisClient *redis.Client, fcmClient *messaging.Client, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	listingRepo := &repositories.ListingRepository{DB: db}
	responseRepo := &repositories.ResponseRepository{DB: db}
	offerRepo := &repositories.OfferRepository{DB: db}
	messageRepo := &repositories.MessageRepository{DB: db}
	chatRepo := &repositories.ChatRepository{DB: db}
	userRepo := &repositories.UserRepository{DB: db}

	// Notifications
	dispatcher := notify.NewDispatcher(userRepo, cfg.Telegram.AppURL, infoLog, errorLog)
	if cfg.Telegram.BotToken != "" {
		dispatcher.Bot = notify.NewTelegramSender(cfg.Telegram.BotToken)
	}
	if fcmClient != nil {
		dispatcher.Push = &notify.PushSender{Client: fcmClient}
	}

	// WebSocket
	tokenManager, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		errorLog.Fatal(err)
	}
	hub := NewChatHub(chatRepo, tokenManager, errorLog)

	unreadCache := cache.NewUnreadCache(redisClient)

	// Services
	policy := services.Policy{}
	responseService := &services.ResponseService{
		ResponseRepo: responseRepo,
		ListingRepo:  listingRepo,
		MessageRepo:  messageRepo,
		UserRepo:     userRepo,
		Notify:       dispatcher,
		Policy:       policy,
	}
	offerService := &services.OfferService{
		OfferRepo:   offerRepo,
		MessageRepo: messageRepo,
		UserRepo:    userRepo,
		Notify:      dispatcher,
		Policy:      policy,
	}
	messageService := &services.MessageService{
		MessageRepo: messageRepo,
		ThreadRepo:  chatRepo,
		UserRepo:    userRepo,
		Notify:      dispatcher,
		Hub:         hub,
		Unread:      unreadCache,
		Policy:      policy,
	}
	chatService := &services.ChatService{ChatRepo: chatRepo}
	hub.Messages = messageService

	// Handlers
	responseHandler := &handlers.ResponseHandler{ResponseService: responseService}
	offerHandler := &handlers.OfferHandler{OfferService: offerService}
	chatHandler := &handlers.ChatHandler{MessageService: messageService, ChatService: chatService}

	return &application{
		errorLog:        errorLog,
		infoLog:         infoLog,
		cfg:             cfg,
		db:              db,
		listingRepo:     listingRepo,
		userRepo:        userRepo,
		dispatcher:      dispatcher,
		hub:             hub,
		responseHandler: responseHandler,
		offerHandler:    offerHandler,
		chatHandler:     chatHandler,
	}
}
