package controller

import (
	"homework-ai-be/internal/constant"
	"homework-ai-be/internal/pkg/serverutils"
	"homework-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	Upload(ctx *fiber.Ctx) error
	Capture(ctx *fiber.Ctx) error
}

type uploadController struct {
	extractionService service.IExtractionService
}

func NewUploadController(extractionService service.IExtractionService) IUploadController {
	return &uploadController{
		extractionService: extractionService,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/homework/v1")
	h.Use(authMiddleware)
	h.Post("upload", c.Upload)
	h.Post("capture", c.Capture)
}

func (c *uploadController) Upload(ctx *fiber.Ctx) error {
	userID := ctx.Locals("user_id").(string)

	file, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.NewHttpError(fiber.StatusBadRequest, constant.MsgNoFileUploaded)
	}

	res, err := c.extractionService.ExtractFromUpload(ctx.Context(), userID, file)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("File processed", res))
}

// Capture is kept as a placeholder for camera capture; the client does the
// capture and posts the frame through Upload. The envelope message is the
// whole contract, so there is no payload.
func (c *uploadController) Capture(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse[any]("Image captured successfully", nil))
}
