package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/aegislabs/aegis/internal/errors"
	"github.com/aegislabs/aegis/internal/models"
)

// MaxScanFileSize bounds uploads to the file scanner.
const MaxScanFileSize = 50 * 1024 * 1024 // 50MB

// ScanFile uploads a file to the backend scanner and returns its report:
// antivirus verdict, mime sniffing, prompt-injection heuristics and
// content metadata.
func (c *Client) ScanFile(ctx context.Context, filePath string) (*models.FileScanReport, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if fileInfo.Size() > MaxScanFileSize {
		return nil, apierrors.NewValidationError("file", fmt.Sprintf("size exceeds maximum %d bytes", MaxScanFileSize))
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to buffer file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	endpoint := c.endpoint(PathFileScan)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c.log.WithField("file", filePath).WithField("size", fileInfo.Size()).Debug("uploading file for scan")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierrors.NewNetworkError("file scan", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, "file scan failed", readErrorBody(resp.Body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError("file scan read", endpoint, err)
	}

	var report models.FileScanReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, apierrors.NewParseError("failed to decode file scan report", "")
	}

	return &report, nil
}
