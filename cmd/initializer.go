package main

import (
	"database/sql"
	"log"
	"time"

	"firebase.google.com/go/messaging"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"civicdesk/internal/config"
	"civicdesk/internal/handlers"
	"civicdesk/internal/repositories"
	"civicdesk/internal/services"
	"civicdesk/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB

	userHandler         *handlers.UserHandler
	complaintHandler    *handlers.ComplaintHandler
	attachmentHandler   *handlers.AttachmentHandler
	notificationHandler *handlers.NotificationHandler

	attachmentService *services.AttachmentService
	sessions          *repositories.SessionStore
	tokenManager      *utils.Manager
	wsManager         *WebSocketManager
	accessTTL         time.Duration
}

func initializeApp(db *sql.DB, rdb *redis.Client, fcmClient *messaging.Client, cfg config.Config, errorLog, infoLog *log.Logger) (*application, error) {
	tokenManager, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		return nil, err
	}

	accessTTL := time.Duration(cfg.Auth.AccessTTLMin) * time.Minute
	refreshTTL := time.Duration(cfg.Auth.RefreshTTLHours) * time.Hour

	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	complaintRepo := repositories.ComplaintRepository{DB: db}
	attachmentRepo := repositories.AttachmentRepository{DB: db}
	deviceTokenRepo := repositories.DeviceTokenRepository{DB: db}
	sessions := &repositories.SessionStore{Client: rdb}

	storage := utils.NewS3Storage(cfg.S3.AccessKey, cfg.S3.SecretKey, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Endpoint)

	wsManager := NewWebSocketManager()

	// Services
	userService := &services.UserService{
		UserRepo:      &userRepo,
		Sessions:      sessions,
		TokenManager:  tokenManager,
		AdminEmail:    cfg.Auth.AdminEmail,
		AdminPassword: cfg.Auth.AdminPassword,
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	}
	attachmentService := &services.AttachmentService{
		AttachmentRepo: &attachmentRepo,
		Storage:        storage,
	}
	var push services.PushSender
	if fcmClient != nil {
		push = &services.FCMSender{Client: fcmClient, Tokens: &deviceTokenRepo}
	}
	complaintService := &services.ComplaintService{
		ComplaintRepo:  &complaintRepo,
		AttachmentRepo: &attachmentRepo,
		Users:          &userRepo,
		Notifier:       wsManager,
		Push:           push,
		AdminEmail:     cfg.Auth.AdminEmail,
	}

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService}
	complaintHandler := &handlers.ComplaintHandler{Service: complaintService}
	attachmentHandler := &handlers.AttachmentHandler{Service: attachmentService}
	notificationHandler := &handlers.NotificationHandler{Tokens: &deviceTokenRepo}

	return &application{
		errorLog:            errorLog,
		infoLog:             infoLog,
		db:                  db,
		userHandler:         userHandler,
		complaintHandler:    complaintHandler,
		attachmentHandler:   attachmentHandler,
		notificationHandler: notificationHandler,
		attachmentService:   attachmentService,
		sessions:            sessions,
		tokenManager:        tokenManager,
		wsManager:           wsManager,
		accessTTL:           accessTTL,
	}, nil
}

func openDB(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}
