package serverutils

import (
	"strings"

	"homework-ai-be/internal/pkg/identity"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware guards protected routes. A missing token and a rejected
// token both produce 403, with distinct messages, matching the identity
// boundary contract.
func AuthMiddleware(verifier identity.TokenVerifier) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := BearerToken(ctx)
		if token == "" {
			return ctx.Status(fiber.StatusForbidden).
				JSON(FailureResponse(fiber.StatusForbidden, "No token provided"))
		}

		userID, err := verifier.Verify(ctx.Context(), token)
		if err != nil {
			return ctx.Status(fiber.StatusForbidden).
				JSON(FailureResponse(fiber.StatusForbidden, "Invalid token"))
		}

		ctx.Locals("user_id", userID)
		return ctx.Next()
	}
}

// BearerToken pulls the token out of the Authorization header. A bare token
// without the Bearer prefix is accepted too, for parity with the modeled
// provider SDKs.
func BearerToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return strings.TrimSpace(authHeader)
}
