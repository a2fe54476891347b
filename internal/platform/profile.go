package platform

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
)

const profilePath = "/partners/me/profile"

// UpsertProfile creates (POST) or updates (PUT) the partner profile.  The
// profile travels as multipart so the logo file can ride alongside the text
// fields; logo may be nil when only text changed.
func (c *Client) UpsertProfile(ctx context.Context, token string, fields map[string]string, logo []byte, logoName string, update bool) (map[string]any, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if len(logo) > 0 {
		if logoName == "" {
			logoName = "logo.jpg"
		}
		part, err := w.CreateFormFile("logo", logoName)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(logo); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	method := http.MethodPost
	if update {
		method = http.MethodPut
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+profilePath, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	var out map[string]any
	if err := c.run(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}
