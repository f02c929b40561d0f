package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/praktik-cli/praktik/pkg/apierr"
)

// SubmitApplication sends the internship application as multipart/form-data
// with an optional resume file. The Content-Type comes from the multipart
// writer, never from the JSON default. If progress is non-nil it receives a
// copy of the encoded body as it is uploaded.
func (c *Client) SubmitApplication(ctx context.Context, form ApplicationForm, progress io.Writer) (*ApplicationResult, error) {
	body, contentType, err := encodeApplicationForm(form)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/applications",
		body:        body,
		contentType: contentType,
		progress:    progress,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.New(apierr.Transport, "failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apierr.FromResponse(resp.StatusCode, respBody)
	}

	var res ApplicationResult
	if err := parseJSON(respBody, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// encodeApplicationForm builds the multipart body up front so the gateway
// can replay it once after a token refresh.
func encodeApplicationForm(form ApplicationForm) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"full_name": form.FullName,
		"email":     form.Email,
		"phone":     form.Phone,
		"direction": form.Direction,
	}
	if form.Motivation != "" {
		fields["motivation"] = form.Motivation
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if form.ResumePath != "" {
		file, err := os.Open(form.ResumePath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open resume file: %w", err)
		}
		defer file.Close()

		part, err := writer.CreateFormFile("resume", filepath.Base(form.ResumePath))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create resume form part: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return nil, "", fmt.Errorf("failed to read resume file: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}
