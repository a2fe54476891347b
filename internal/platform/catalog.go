package platform

import (
	"context"
	"net/http"
	"net/url"

	"github.com/volunteerin/partner-gateway/internal/model"
)

// Benefits returns the selectable benefit catalog.
func (c *Client) Benefits(ctx context.Context, token string) ([]model.Benefit, error) {
	var out []model.Benefit
	err := c.doJSON(ctx, http.MethodGet, "/benefits", token, nil, &out)
	return out, err
}

// Categories returns the category catalog filtered by type.  The dashboard
// always asks for EVENT categories.
func (c *Client) Categories(ctx context.Context, token, typ string) ([]model.Category, error) {
	path := "/categories"
	if typ != "" {
		path += "?type=" + url.QueryEscape(typ)
	}
	var out []model.Category
	err := c.doJSON(ctx, http.MethodGet, path, token, nil, &out)
	return out, err
}
