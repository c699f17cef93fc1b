// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/config"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/db"
	authHandler "github.com/kubilayakkiz/wawainteriorsNL/internal/handlers/auth"
	clientHandler "github.com/kubilayakkiz/wawainteriorsNL/internal/handlers/client"
	contentHandler "github.com/kubilayakkiz/wawainteriorsNL/internal/handlers/content"
	customerHandler "github.com/kubilayakkiz/wawainteriorsNL/internal/handlers/customer"
	jobHandler "github.com/kubilayakkiz/wawainteriorsNL/internal/handlers/job"
	quoteHandler "github.com/kubilayakkiz/wawainteriorsNL/internal/handlers/quote"
	wsHandler "github.com/kubilayakkiz/wawainteriorsNL/internal/handlers/ws"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/middleware"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/jwt"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/session"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/repository/postgres"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/service/attachment"
	contentSvc "github.com/kubilayakkiz/wawainteriorsNL/internal/service/content"
	customerSvc "github.com/kubilayakkiz/wawainteriorsNL/internal/service/customer"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/service/email"
	identitySvc "github.com/kubilayakkiz/wawainteriorsNL/internal/service/identity"
	jobSvc "github.com/kubilayakkiz/wawainteriorsNL/internal/service/job"
	quoteSvc "github.com/kubilayakkiz/wawainteriorsNL/internal/service/quote"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/snapshot"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/storage"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	// Recovery and logging are registered in Start via the zap middleware,
	// gin's built-ins would double up.
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("[REDIS] ✅ Connected successfully")

	// ----- JWT + Sessions -----
	jwtManager, err := jwt.NewManager(jwt.Config{
		Secret: s.cfg.JWTSecret,
		Issuer: s.cfg.JWTIssuer,
		TTL:    s.cfg.JWTTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to build JWT manager: %w", err)
	}
	sessionManager := session.NewManager(redisClient)

	// ----- Attachment storage -----
	blobStore, err := storage.NewS3Store(ctx, storage.S3Config{
		Region:        s.cfg.S3Region,
		Bucket:        s.cfg.S3Bucket,
		Endpoint:      s.cfg.S3Endpoint,
		AccessKey:     s.cfg.S3AccessKey,
		SecretKey:     s.cfg.S3SecretKey,
		PublicBaseURL: s.cfg.S3PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to init attachment storage: %w", err)
	}

	// ----- Email -----
	emailSender := email.NewEmailSender(
		s.cfg.SMTPHost,
		s.cfg.SMTPPort,
		s.cfg.SMTPUser,
		s.cfg.SMTPPass,
		s.cfg.SMTPFromName,
		s.cfg.SMTPSecure,
	)
	notifier := email.NewQuoteNotifier(emailSender, s.cfg.QuoteRecipients, logger)

	// ----- Repositories -----
	identityRepo := postgres.NewIdentityRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	contentRepo := postgres.NewContentRepository(pool)

	snapshotStore := snapshot.NewStore(redisClient)

	// ----- Services -----
	identityService := identitySvc.NewService(identityRepo, customerRepo, jwtManager, sessionManager, logger)
	customerService := customerSvc.NewService(customerRepo, logger)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(identityService)
	go hub.Run(context.Background())

	pipeline := attachment.NewPipeline(blobStore, logger)

	quoteService := quoteSvc.NewService(
		quoteRepo,
		customerRepo,
		identityService,
		pipeline,
		notifier,
		hub,
		snapshotStore,
		s.cfg.SnapshotMirrorWrites,
		logger,
	)
	jobService := jobSvc.NewService(jobRepo, quoteRepo, snapshotStore, s.cfg.SnapshotMirrorWrites, logger)
	contentService := contentSvc.NewService(contentRepo, snapshotStore, s.cfg.SnapshotMirrorWrites, logger)

	// ----- Seed admin account -----
	if err := identityService.EnsureAdmin(ctx, s.cfg.AdminEmail, s.cfg.AdminPassword, s.cfg.AdminName); err != nil {
		logger.Error("failed to seed admin account", zap.Error(err))
		// Don't fail startup, just log the error
	}

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(identityService, logger)
	quoteHandlerInst := quoteHandler.NewQuoteHandler(quoteService, logger)
	clientHandlerInst := clientHandler.NewClientHandler(customerService, quoteService, jobService, logger)
	jobHandlerInst := jobHandler.NewJobHandler(jobService, logger)
	customerHandlerInst := customerHandler.NewCustomerHandler(customerService, logger)
	contentHandlerInst := contentHandler.NewContentHandler(contentService, logger)
	wsHandlerInst := wsHandler.NewWSHandler(hub, logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(identityService)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:     authHandlerInst,
		QuoteHandler:    quoteHandlerInst,
		ClientHandler:   clientHandlerInst,
		JobHandler:      jobHandlerInst,
		CustomerHandler: customerHandlerInst,
		ContentHandler:  contentHandlerInst,
		WSHandler:       wsHandlerInst,
		AuthMiddleware:  authMiddleware,
	}
	SetupRouter(s.engine, logger, handlers)

	// ----- Start HTTP -----
	log.Printf("🚀 Server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
