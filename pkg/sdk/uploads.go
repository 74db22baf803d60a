package sdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// maxUploadSize matches the backend's profile image limit.
const maxUploadSize = 5 << 20

// UploadProfileImage uploads an image for the authenticated subject's
// profile and returns the stored file URL. folder selects the backend
// storage folder (e.g. "logos").
func (c *Client) UploadProfileImage(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	n, err := io.Copy(part, io.LimitReader(r, maxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if n > maxUploadSize {
		return "", fmt.Errorf("image exceeds %d byte limit", maxUploadSize)
	}
	if folder != "" {
		if err := writer.WriteField("folder", folder); err != nil {
			return "", fmt.Errorf("failed to build upload form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload form: %w", err)
	}

	endpoint, err := url.JoinPath(c.baseURL, "/upload/profile-image")
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apiErrorFromResponse(resp)
	}
	var payload struct {
		FileURL string `json:"fileUrl"`
	}
	if err := decodeJSON(resp.Body, &payload); err != nil {
		return "", err
	}
	return payload.FileURL, nil
}
