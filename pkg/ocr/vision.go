package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultEndpoint = "https://vision.googleapis.com/v1/images:annotate"

// VisionProvider acquires engines backed by the Google Cloud Vision REST
// API, with the recognition language fixed to English.
type VisionProvider struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

var _ EngineProvider = &VisionProvider{}

func NewVisionProvider(apiKey, endpoint string, timeout time.Duration) *VisionProvider {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &VisionProvider{
		apiKey:   apiKey,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *VisionProvider) Acquire(ctx context.Context) (Engine, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("ocr: vision API key is not configured")
	}
	return &visionEngine{provider: p}, nil
}

// visionEngine is a single-use handle over the shared Vision client.
type visionEngine struct {
	provider *VisionProvider
	closed   bool
}

type visionRequest struct {
	Requests []visionRequestItem `json:"requests"`
}

type visionRequestItem struct {
	Image        visionImage     `json:"image"`
	Features     []visionFeature `json:"features"`
	ImageContext visionContext   `json:"imageContext"`
}

type visionImage struct {
	Content string `json:"content"`
}

type visionFeature struct {
	Type       string `json:"type"`
	MaxResults int    `json:"maxResults"`
}

type visionContext struct {
	LanguageHints []string `json:"languageHints"`
}

type visionResponse struct {
	Responses []struct {
		FullTextAnnotation struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	} `json:"responses"`
}

func (e *visionEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	if e.closed {
		return "", ErrEngineClosed
	}
	if len(image) == 0 {
		return "", fmt.Errorf("ocr: image data is empty")
	}

	reqBody := visionRequest{
		Requests: []visionRequestItem{
			{
				Image: visionImage{Content: base64.StdEncoding.EncodeToString(image)},
				Features: []visionFeature{
					{Type: "DOCUMENT_TEXT_DETECTION", MaxResults: 1},
				},
				ImageContext: visionContext{LanguageHints: []string{"en"}},
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("ocr: failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", e.provider.endpoint, e.provider.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("ocr: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.provider.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr: request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ocr: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ocr: vision API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var visionResp visionResponse
	if err := json.Unmarshal(bodyBytes, &visionResp); err != nil {
		return "", fmt.Errorf("ocr: failed to decode response: %w", err)
	}

	if len(visionResp.Responses) == 0 {
		return "", ErrNoTextFound
	}
	if visionResp.Responses[0].Error.Message != "" {
		return "", fmt.Errorf("ocr: vision API returned error %d: %s",
			visionResp.Responses[0].Error.Code, visionResp.Responses[0].Error.Message)
	}

	text := visionResp.Responses[0].FullTextAnnotation.Text
	if text == "" {
		return "", ErrNoTextFound
	}

	return text, nil
}

func (e *visionEngine) Close() error {
	e.closed = true
	return nil
}
