package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"homework-ai-be/internal/constant"
	"homework-ai-be/internal/dto"
	"homework-ai-be/internal/entity"
	"homework-ai-be/internal/pkg/logger"
	"homework-ai-be/internal/pkg/serverutils"
	"homework-ai-be/internal/repository/memory"
	"homework-ai-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

// IHomeworkService is the question/answer core: relay, session state,
// archive and recall.
type IHomeworkService interface {
	Ask(ctx context.Context, userID string, req *dto.GenerateAnswerRequest) (*dto.GenerateAnswerResponse, error)
	GetSession(userID string) entity.SessionState
	ListQuestions(userID string) []entity.QuestionRecord
	Recall(userID, id string) (entity.SessionState, error)
	RelayChat(ctx context.Context, message string) (string, error)
}

type homeworkService struct {
	sessionRepo *memory.SessionRepository
	archiveRepo *memory.ArchiveRepository
	llmProvider llm.LLMProvider
	logger      logger.ILogger

	// inflight holds one token per user with an outstanding relay call;
	// Ask is non-reentrant per session.
	inflight sync.Map
}

func NewHomeworkService(
	sessionRepo *memory.SessionRepository,
	archiveRepo *memory.ArchiveRepository,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) IHomeworkService {
	return &homeworkService{
		sessionRepo: sessionRepo,
		archiveRepo: archiveRepo,
		llmProvider: llmProvider,
		logger:      log,
	}
}

func (s *homeworkService) Ask(ctx context.Context, userID string, req *dto.GenerateAnswerRequest) (*dto.GenerateAnswerResponse, error) {
	if _, loaded := s.inflight.LoadOrStore(userID, struct{}{}); loaded {
		return nil, serverutils.NewHttpError(fiber.StatusConflict, constant.MsgSubmitInFlight)
	}
	defer s.inflight.Delete(userID)

	subject := entity.Subject(req.Subject)
	level := entity.Level(req.Level)

	s.sessionRepo.Update(userID, func(state entity.SessionState) (entity.SessionState, error) {
		return state.WithQuestion(subject, level, req.Question, req.ExtractedText), nil
	})

	prompt := fmt.Sprintf(constant.TutorPromptTemplate,
		req.Subject, req.Level, req.Question, req.ExtractedText)

	completion, err := s.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: constant.TutorSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		s.logger.Error("HomeworkService", "Relay call failed", map[string]interface{}{
			"user_id": userID,
			"subject": req.Subject,
			"error":   err.Error(),
		})
		// Re-read under the lock: an upload may have landed during the
		// relay call and its text/quota must survive this write.
		s.sessionRepo.Update(userID, func(state entity.SessionState) (entity.SessionState, error) {
			return state.WithError(constant.MsgRelayFailed), nil
		})
		return nil, serverutils.NewHttpError(fiber.StatusInternalServerError, constant.MsgRelayFailed)
	}

	answer, summary := splitSummary(completion)

	record := entity.QuestionRecord{
		Id:       s.archiveRepo.NextID(),
		Subject:  subject,
		Level:    level,
		Question: req.Question,
		Answer:   answer,
		Summary:  summary,
	}
	s.archiveRepo.Archive(userID, record)
	s.sessionRepo.Update(userID, func(state entity.SessionState) (entity.SessionState, error) {
		return state.WithAnswer(answer, summary), nil
	})

	return &dto.GenerateAnswerResponse{
		Answer:  answer,
		Summary: summary,
	}, nil
}

func (s *homeworkService) GetSession(userID string) entity.SessionState {
	return s.sessionRepo.Get(userID)
}

func (s *homeworkService) ListQuestions(userID string) []entity.QuestionRecord {
	return s.archiveRepo.List(userID)
}

func (s *homeworkService) Recall(userID, id string) (entity.SessionState, error) {
	record, found := s.archiveRepo.Recall(userID, id)
	if !found {
		return entity.SessionState{}, serverutils.NewHttpError(fiber.StatusNotFound, "Question not found")
	}

	state, _ := s.sessionRepo.Update(userID, func(state entity.SessionState) (entity.SessionState, error) {
		return state.WithRecalled(record), nil
	})
	return state, nil
}

// RelayChat forwards one free-text message to the completion API. No
// history is carried; every message stands alone.
func (s *homeworkService) RelayChat(ctx context.Context, message string) (string, error) {
	reply, err := s.llmProvider.Chat(ctx, []llm.Message{
		{Role: "user", Content: message},
	})
	if err != nil {
		s.logger.Error("HomeworkService", "Chat relay call failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "", err
	}
	return reply, nil
}

// splitSummary pulls the trailing "Summary:" line out of a completion. When
// the model ignored the instruction, the first sentence stands in.
func splitSummary(completion string) (answer, summary string) {
	marker := "Summary:"
	if idx := strings.LastIndex(completion, marker); idx >= 0 {
		answer = strings.TrimSpace(completion[:idx])
		summary = strings.TrimSpace(completion[idx+len(marker):])
		if answer != "" && summary != "" {
			return answer, summary
		}
	}

	answer = strings.TrimSpace(completion)
	summary = answer
	if idx := strings.Index(summary, ". "); idx >= 0 {
		summary = summary[:idx+1]
	}
	const maxSummary = 160
	if len(summary) > maxSummary {
		summary = summary[:maxSummary]
	}
	return answer, summary
}
