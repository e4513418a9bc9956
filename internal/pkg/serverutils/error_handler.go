package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// HttpError carries a status code and a user-facing message through the
// service layer. Anything else that escapes a handler becomes a generic 500;
// internal detail stays in the logs.
type HttpError struct {
	Code    int
	Message string
}

func (e *HttpError) Error() string {
	return e.Message
}

func NewHttpError(code int, message string) *HttpError {
	return &HttpError{Code: code, Message: message}
}

func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var httpErr *HttpError
		if errors.As(err, &httpErr) {
			return ctx.Status(httpErr.Code).JSON(FailureResponse(httpErr.Code, httpErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(FailureResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(FailureResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
