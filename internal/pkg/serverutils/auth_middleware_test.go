package serverutils

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"homework-ai-be/internal/pkg/identity"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	userID string
}

func (v *stubVerifier) Verify(ctx context.Context, token string) (string, error) {
	if token != "good-token" {
		return "", identity.ErrInvalidToken
	}
	return v.userID, nil
}

func newAuthTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected", AuthMiddleware(&stubVerifier{userID: "user-42"}), func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", ctx.Locals("user_id")))
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "missing token",
			authHeader: "",
			wantStatus: fiber.StatusForbidden,
			wantMsg:    "No token provided",
		},
		{
			name:       "rejected token",
			authHeader: "Bearer bad-token",
			wantStatus: fiber.StatusForbidden,
			wantMsg:    "Invalid token",
		},
		{
			name:       "valid bearer token",
			authHeader: "Bearer good-token",
			wantStatus: fiber.StatusOK,
			wantMsg:    "ok",
		},
		{
			name:       "bare token without prefix",
			authHeader: "good-token",
			wantStatus: fiber.StatusOK,
			wantMsg:    "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAuthTestApp(t)
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			res, err := app.Test(req)
			require.NoError(t, err)
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatus, res.StatusCode)

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)
			var envelope BaseResponse[any]
			require.NoError(t, json.Unmarshal(body, &envelope))
			assert.Equal(t, tt.wantMsg, envelope.Message)
		})
	}
}

func TestAuthMiddlewareSetsUserID(t *testing.T) {
	app := newAuthTestApp(t)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var envelope BaseResponse[string]
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "user-42", envelope.Data)
}
