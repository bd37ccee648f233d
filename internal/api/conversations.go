package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/aegislabs/aegis/internal/errors"
	"github.com/aegislabs/aegis/internal/models"
)

// Conversations returns the caller's conversation registry, newest first
// as ordered by the backend.
func (c *Client) Conversations(ctx context.Context) ([]models.ConversationSummary, error) {
	data, err := c.postJSON(ctx, PathConversations)
	if err != nil {
		return nil, err
	}

	var summaries []models.ConversationSummary
	if err := json.Unmarshal(data, &summaries); err != nil {
		return nil, apierrors.NewParseError("failed to decode conversation list", "")
	}

	return summaries, nil
}

// ConversationHistory returns the persisted turns of one conversation.
func (c *Client) ConversationHistory(ctx context.Context, id string) ([]models.StoredMessage, error) {
	if id == "" {
		return nil, apierrors.NewValidationError("conversation id", "must not be empty")
	}

	data, err := c.postJSON(ctx, fmt.Sprintf(PathConversationHistory, url.PathEscape(id)))
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Conversation []models.StoredMessage `json:"conversation"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, apierrors.NewParseError("failed to decode conversation history", "conversation")
	}

	return wrapper.Conversation, nil
}

// RenameConversation changes a conversation's title and returns the title
// the backend recorded.
func (c *Client) RenameConversation(ctx context.Context, id, title string) (string, error) {
	if id == "" {
		return "", apierrors.NewValidationError("conversation id", "must not be empty")
	}
	if title == "" {
		return "", apierrors.NewValidationError("title", "must not be empty")
	}

	path := fmt.Sprintf(PathConversationRename, url.PathEscape(id)) + "?title=" + url.QueryEscape(title)
	data, err := c.postJSON(ctx, path)
	if err != nil {
		return "", err
	}

	var updated struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &updated); err != nil {
		return "", apierrors.NewParseError("failed to decode rename response", "title")
	}

	return updated.Title, nil
}

// postJSON performs a bodyless authenticated POST and returns the raw
// response body. The registry endpoints all share this shape.
func (c *Client) postJSON(ctx context.Context, path string) ([]byte, error) {
	endpoint := c.endpoint(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkError("request", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode == 401 {
		return nil, apierrors.NewAuthError("token rejected")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, "request failed", readErrorBody(resp.Body))
	}

	return io.ReadAll(resp.Body)
}
