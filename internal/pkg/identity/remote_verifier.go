package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteVerifier posts the token to an identity-provider verification
// endpoint (Firebase-style accounts lookup) and trusts its answer.
type RemoteVerifier struct {
	verifyURL string
	apiKey    string
	client    *http.Client
}

var _ TokenVerifier = &RemoteVerifier{}

func NewRemoteVerifier(verifyURL, apiKey string, timeout time.Duration) *RemoteVerifier {
	return &RemoteVerifier{
		verifyURL: verifyURL,
		apiKey:    apiKey,
		client:    &http.Client{Timeout: timeout},
	}
}

type lookupRequest struct {
	IDToken string `json:"idToken"`
}

type lookupResponse struct {
	Users []struct {
		LocalID string `json:"localId"`
	} `json:"users"`
}

func (v *RemoteVerifier) Verify(ctx context.Context, token string) (string, error) {
	jsonData, err := json.Marshal(lookupRequest{IDToken: token})
	if err != nil {
		return "", fmt.Errorf("identity: failed to marshal request: %w", err)
	}

	url := v.verifyURL
	if v.apiKey != "" {
		url = fmt.Sprintf("%s?key=%s", v.verifyURL, v.apiKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("identity: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity: verification request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: provider returned status %d", ErrInvalidToken, resp.StatusCode)
	}

	var lookup lookupResponse
	if err := json.Unmarshal(bodyBytes, &lookup); err != nil {
		return "", fmt.Errorf("identity: failed to decode response: %w", err)
	}

	if len(lookup.Users) == 0 || lookup.Users[0].LocalID == "" {
		return "", fmt.Errorf("%w: no user for token", ErrInvalidToken)
	}

	return lookup.Users[0].LocalID, nil
}
