package service

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"homework-ai-be/internal/constant"
	"homework-ai-be/internal/dto"
	"homework-ai-be/internal/entity"
	"homework-ai-be/internal/pkg/logger"
	"homework-ai-be/internal/pkg/serverutils"
	"homework-ai-be/internal/repository/memory"
	"homework-ai-be/pkg/ocr"
	"homework-ai-be/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// maxFileBytes bounds how much of an upload is read. Matches the server
// body limit.
const maxFileBytes = 10 * 1024 * 1024

// IExtractionService turns an uploaded artifact into bounded text and
// enforces the per-session upload quota.
type IExtractionService interface {
	ExtractFromUpload(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.UploadResponse, error)
}

type extractionService struct {
	sessionRepo *memory.SessionRepository
	ocrProvider ocr.EngineProvider
	logger      logger.ILogger
	wordLimit   int
	maxUploads  int
}

func NewExtractionService(
	sessionRepo *memory.SessionRepository,
	ocrProvider ocr.EngineProvider,
	log logger.ILogger,
	wordLimit, maxUploads int,
) IExtractionService {
	return &extractionService{
		sessionRepo: sessionRepo,
		ocrProvider: ocrProvider,
		logger:      log,
		wordLimit:   wordLimit,
		maxUploads:  maxUploads,
	}
}

func (s *extractionService) ExtractFromUpload(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	// Check-and-reserve is one atomic step so concurrent uploads from the
	// same user cannot both slip past the gate; a rejected upload never
	// costs OCR work.
	if _, err := s.sessionRepo.Update(userID, func(state entity.SessionState) (entity.SessionState, error) {
		if state.UploadCount >= s.maxUploads {
			return state, serverutils.NewHttpError(fiber.StatusTooManyRequests, constant.MsgQuotaExceeded)
		}
		return state.WithUploadReserved(), nil
	}); err != nil {
		return nil, err
	}

	text, err := s.extract(ctx, file)
	if err != nil {
		s.logger.Error("ExtractionService", "Extraction failed", map[string]interface{}{
			"user_id":  userID,
			"filename": file.Filename,
			"error":    err.Error(),
		})
		// A failed extraction does not consume quota: the reserved unit
		// goes back.
		s.sessionRepo.Update(userID, func(state entity.SessionState) (entity.SessionState, error) {
			return state.WithUploadReleased(), nil
		})
		return nil, serverutils.NewHttpError(fiber.StatusUnprocessableEntity, constant.MsgExtractionFailed)
	}

	text = utils.TruncateWords(text, s.wordLimit)

	state, _ := s.sessionRepo.Update(userID, func(state entity.SessionState) (entity.SessionState, error) {
		return state.WithExtractedText(text), nil
	})

	return &dto.UploadResponse{
		Message:       "File uploaded successfully",
		Filename:      file.Filename,
		ExtractedText: text,
		UploadCount:   state.UploadCount,
	}, nil
}

func (s *extractionService) extract(ctx context.Context, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxFileBytes))
	if err != nil {
		return "", err
	}

	if isImage(file, data) {
		return s.recognize(ctx, data)
	}

	// Non-image artifacts are read as UTF-8 text.
	return string(data), nil
}

// recognize runs OCR with a scoped engine: acquired for this one call,
// released on every path.
func (s *extractionService) recognize(ctx context.Context, image []byte) (string, error) {
	engine, err := s.ocrProvider.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer engine.Close()

	return engine.Recognize(ctx, image)
}

func isImage(file *multipart.FileHeader, data []byte) bool {
	contentType := file.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return strings.HasPrefix(contentType, "image/")
}
