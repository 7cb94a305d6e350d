package contractpro

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// fileField is the multipart part name every backend upload route expects.
const fileField = "file"

// Upload sends scalar fields plus one file as a multipart request and
// returns the raw JSON acknowledgement. Typed wrappers decode it.
func (c *Client) Upload(ctx context.Context, endpoint string, fields map[string]string, filename string, file io.Reader) (json.RawMessage, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	part, err := w.CreateFormFile(fileField, filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read upload payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, nil, buf, w.FormDataContentType())
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	return json.RawMessage(body), nil
}

func upload[T any](ctx context.Context, c *Client, endpoint string, fields map[string]string, filename string, file io.Reader) (*T, error) {
	raw, err := c.Upload(ctx, endpoint, fields, filename, file)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return &out, nil
}

// Download streams a binary endpoint into destPath. The body is written
// to a temporary file in the destination directory and renamed into place
// only on success; the temporary file is removed on every failure path.
func (c *Client) Download(ctx context.Context, endpoint, destPath string) error {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil, nil, "")
	if err != nil {
		return err
	}
	req.Header.Del("Accept")
	resp, err := c.do(req, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%s: %w: %v", endpoint, ErrNetworkUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), destPath); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
