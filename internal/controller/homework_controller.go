package controller

import (
	"homework-ai-be/internal/dto"
	"homework-ai-be/internal/entity"
	"homework-ai-be/internal/pkg/serverutils"
	"homework-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHomeworkController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	GenerateAnswer(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	ListQuestions(ctx *fiber.Ctx) error
	Recall(ctx *fiber.Ctx) error
}

type homeworkController struct {
	homeworkService service.IHomeworkService
}

func NewHomeworkController(homeworkService service.IHomeworkService) IHomeworkController {
	return &homeworkController{
		homeworkService: homeworkService,
	}
}

func (c *homeworkController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/homework/v1")
	h.Use(authMiddleware)
	h.Post("generate-answer", c.GenerateAnswer)
	h.Get("session", c.GetSession)
	h.Get("questions", c.ListQuestions)
	h.Post("questions/:id/recall", c.Recall)
}

func (c *homeworkController) GenerateAnswer(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(string)

	var req dto.GenerateAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewHttpError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if !entity.Subject(req.Subject).IsValid() {
		return serverutils.NewHttpError(fiber.StatusBadRequest, "Invalid value for field 'Subject'")
	}

	res, err := c.homeworkService.Ask(ctx.Context(), userID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Answer generated", res))
}

func (c *homeworkController) GetSession(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(string)

	state := c.homeworkService.GetSession(userID)
	return ctx.JSON(serverutils.SuccessResponse("Session state", dto.SessionResponse{State: state}))
}

func (c *homeworkController) ListQuestions(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(string)

	questions := c.homeworkService.ListQuestions(userID)
	return ctx.JSON(serverutils.SuccessResponse("Past questions", dto.QuestionListResponse{Questions: questions}))
}

func (c *homeworkController) Recall(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(string)
	id := ctx.Params("id")

	state, err := c.homeworkService.Recall(userID, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Question recalled", dto.SessionResponse{State: state}))
}
