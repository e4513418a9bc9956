package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"homework-ai-be/internal/constant"
	"homework-ai-be/internal/dto"
	"homework-ai-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractionService struct {
	res          *dto.UploadResponse
	err          error
	lastFilename string
}

func (s *stubExtractionService) ExtractFromUpload(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	s.lastFilename = file.Filename
	return s.res, s.err
}

func newUploadTestApp(svc *stubExtractionService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewUploadController(svc).RegisterRoutes(api, fakeAuth)
	return app
}

func multipartUpload(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUpload(t *testing.T) {
	t.Run("file is forwarded to extraction", func(t *testing.T) {
		svc := &stubExtractionService{
			res: &dto.UploadResponse{
				Message:       "File uploaded successfully",
				Filename:      "notes.txt",
				ExtractedText: "chapter one",
				UploadCount:   1,
			},
		}
		app := newUploadTestApp(svc)

		body, contentType := multipartUpload(t, "notes.txt", []byte("chapter one"))
		req := httptest.NewRequest("POST", "/api/homework/v1/upload", body)
		req.Header.Set("Content-Type", contentType)

		res, err := app.Test(req)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, fiber.StatusOK, res.StatusCode)
		assert.Equal(t, "notes.txt", svc.lastFilename)

		raw, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		var envelope serverutils.BaseResponse[dto.UploadResponse]
		require.NoError(t, json.Unmarshal(raw, &envelope))
		assert.Equal(t, "chapter one", envelope.Data.ExtractedText)
		assert.Equal(t, 1, envelope.Data.UploadCount)
	})

	t.Run("request without a file part is a 400", func(t *testing.T) {
		svc := &stubExtractionService{}
		app := newUploadTestApp(svc)

		req := httptest.NewRequest("POST", "/api/homework/v1/upload", nil)
		res, err := app.Test(req)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

		raw, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		var envelope serverutils.BaseResponse[any]
		require.NoError(t, json.Unmarshal(raw, &envelope))
		assert.Equal(t, constant.MsgNoFileUploaded, envelope.Message)
	})

	t.Run("quota and extraction errors pass through unchanged", func(t *testing.T) {
		svc := &stubExtractionService{
			err: serverutils.NewHttpError(fiber.StatusTooManyRequests, constant.MsgQuotaExceeded),
		}
		app := newUploadTestApp(svc)

		body, contentType := multipartUpload(t, "page.png", []byte("img"))
		req := httptest.NewRequest("POST", "/api/homework/v1/upload", body)
		req.Header.Set("Content-Type", contentType)

		res, err := app.Test(req)
		require.NoError(t, err)
		defer res.Body.Close()

		assert.Equal(t, fiber.StatusTooManyRequests, res.StatusCode)

		raw, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		var envelope serverutils.BaseResponse[any]
		require.NoError(t, json.Unmarshal(raw, &envelope))
		assert.Equal(t, constant.MsgQuotaExceeded, envelope.Message)
	})
}

func TestCapture(t *testing.T) {
	app := newUploadTestApp(&stubExtractionService{})

	req := httptest.NewRequest("POST", "/api/homework/v1/capture", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var envelope serverutils.BaseResponse[any]
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, "Image captured successfully", envelope.Message)
	assert.Nil(t, envelope.Data)
}
