package bootstrap

import (
	"log"

	"homework-ai-be/internal/config"
	"homework-ai-be/internal/controller"
	"homework-ai-be/internal/handler"
	"homework-ai-be/internal/pkg/identity"
	"homework-ai-be/internal/pkg/logger"
	"homework-ai-be/internal/pkg/serverutils"
	"homework-ai-be/internal/repository/memory"
	"homework-ai-be/internal/service"
	"homework-ai-be/internal/websocket"
	"homework-ai-be/pkg/llm/factory"
	"homework-ai-be/pkg/ocr"

	"github.com/gofiber/fiber/v2"
)

type Container struct {
	// Controllers
	HomeworkController controller.IHomeworkController
	UploadController   controller.IUploadController

	// WebSocket chat
	ChatHandler  *handler.ChatHandler
	WebSocketHub *websocket.Hub

	// Shared middleware
	AuthMiddleware fiber.Handler

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. LLM provider
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		APIKey:        cfg.Ai.APIKey,
		BaseURL:       cfg.Ai.BaseURL,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		Timeout:       cfg.Ai.RelayTimeout,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3. Token verifier
	var verifier identity.TokenVerifier
	if cfg.Auth.Provider == "remote" {
		verifier = identity.NewRemoteVerifier(cfg.Auth.VerifyURL, cfg.Auth.APIKey, cfg.Auth.Timeout)
		log.Printf("[INFO] Using Auth Provider: REMOTE (%s)", cfg.Auth.VerifyURL)
	} else {
		verifier = identity.NewJwtVerifier(cfg.Auth.JWTSecret)
		log.Printf("[INFO] Using Auth Provider: JWT")
	}

	// 4. OCR engine provider
	ocrProvider := ocr.NewVisionProvider(cfg.Ocr.VisionAPIKey, cfg.Ocr.VisionEndpoint, cfg.Ocr.Timeout)

	// 5. In-memory repositories
	sessionRepo := memory.NewSessionRepository()
	archiveRepo := memory.NewArchiveRepository()

	// 6. Services
	homeworkService := service.NewHomeworkService(sessionRepo, archiveRepo, llmProvider, sysLogger)
	extractionService := service.NewExtractionService(
		sessionRepo, ocrProvider, sysLogger,
		cfg.Limits.WordLimit, cfg.Limits.MaxUploads,
	)

	// 7. WebSocket hub
	wsHub := websocket.NewHub(sysLogger)
	go wsHub.Run()

	return &Container{
		HomeworkController: controller.NewHomeworkController(homeworkService),
		UploadController:   controller.NewUploadController(extractionService),
		ChatHandler:        handler.NewChatHandler(homeworkService, verifier, wsHub, sysLogger, cfg.Ai.RelayTimeout),
		WebSocketHub:       wsHub,
		AuthMiddleware:     serverutils.AuthMiddleware(verifier),
		Logger:             sysLogger,
	}
}
