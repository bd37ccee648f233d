package api

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/aegislabs/aegis/internal/errors"
	"github.com/aegislabs/aegis/internal/models"
)

// analyzeRequest is the body for POST /analyze/new.
type analyzeRequest struct {
	URL string `json:"url"`
}

// Analyze submits a URL for security analysis. Unlike chat, the response
// is a single JSON body that arrives once the scan has finished.
func (c *Client) Analyze(ctx context.Context, target string) (*models.AnalyzeResponse, error) {
	if strings.TrimSpace(target) == "" {
		return nil, apierrors.NewValidationError("url", "must not be empty")
	}

	endpoint := c.endpoint(PathAnalyzeNew)

	body, err := json.Marshal(analyzeRequest{URL: target})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	c.log.WithField("url", target).Debug("submitting analyze request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkError("analyze", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, "analyze request failed", readErrorBody(resp.Body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError("analyze read", endpoint, err)
	}

	return parseAnalyzeResponse(data)
}

// parseAnalyzeResponse extracts the conversation bookkeeping fields and
// keeps scanned_output opaque: its shape belongs to the backend.
func parseAnalyzeResponse(data []byte) (*models.AnalyzeResponse, error) {
	if !gjson.ValidBytes(data) {
		return nil, apierrors.NewParseError("analyze response is not valid JSON", "")
	}

	parsed := gjson.ParseBytes(data)
	scanned := parsed.Get("scanned_output")
	if !scanned.Exists() {
		return nil, apierrors.NewParseError("analyze response missing scanned_output", "scanned_output")
	}

	return &models.AnalyzeResponse{
		ConversationID: parsed.Get("conversation_id").String(),
		Title:          parsed.Get("title").String(),
		UserID:         parsed.Get("user_id").String(),
		ScannedOutput:  scanned.Raw,
	}, nil
}
