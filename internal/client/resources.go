// ABOUTME: Resource listing, file retrieval, upload, and deletion calls
// ABOUTME: Student calls are scoped server-side; admin calls take an explicit batch

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// StudentResources calls GET /student/resources
func (c *Client) StudentResources(ctx context.Context) ([]Resource, error) {
	var resources []Resource
	if err := c.doJSON(ctx, http.MethodGet, "/student/resources", nil, &resources, true); err != nil {
		return nil, err
	}
	return resources, nil
}

// StudentResourceFile calls GET /student/resource/{id}/file and returns the PDF bytes
func (c *Client) StudentResourceFile(ctx context.Context, id string) ([]byte, error) {
	return c.doBinary(ctx, http.MethodGet, "/student/resource/"+url.PathEscape(id)+"/file", nil)
}

// BatchResources calls GET /admin/resources?batch_id=ID
func (c *Client) BatchResources(ctx context.Context, batchID string) ([]Resource, error) {
	path := "/admin/resources?batch_id=" + url.QueryEscape(batchID)

	var resources []Resource
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resources, true); err != nil {
		return nil, err
	}
	return resources, nil
}

// UploadResource calls POST /admin/upload with a multipart form
func (c *Client) UploadResource(ctx context.Context, batchID, title, filename string, content io.Reader) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("batchId", batchID); err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := w.WriteField("title", title); err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}

	resp, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/admin/upload",
		body:        &body,
		contentType: w.FormDataContentType(),
		auth:        true,
	})
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// DeleteResource calls DELETE /admin/resource/{id}
func (c *Client) DeleteResource(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/resource/"+url.PathEscape(id), nil, nil, true)
}
