package serverutils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a bound request body and
// maps failures to a 400 with the offending field named.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return NewHttpError(fiber.StatusBadRequest,
				fmt.Sprintf("Invalid value for field '%s'", verrs[0].Field()))
		}
		return NewHttpError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}
