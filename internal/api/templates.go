package api

import (
	"context"

	"github.com/resend/resend-cli/pkg/types"
)

// CreateTemplate stores a new template.
func (c *Client) CreateTemplate(ctx context.Context, req *types.CreateTemplateRequest) (*types.Template, error) {
	var tmpl types.Template
	if err := c.Post(ctx, "/templates", req, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// ListTemplates returns all templates.
func (c *Client) ListTemplates(ctx context.Context) ([]types.Template, error) {
	var list types.TemplateList
	if err := c.Get(ctx, "/templates", &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// GetTemplate retrieves a single template.
func (c *Client) GetTemplate(ctx context.Context, id string) (*types.Template, error) {
	path, err := resourcePath("template", "templates", id)
	if err != nil {
		return nil, err
	}

	var tmpl types.Template
	if err := c.Get(ctx, path, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// UpdateTemplate changes the fields set in req.
func (c *Client) UpdateTemplate(ctx context.Context, id string, req *types.UpdateTemplateRequest) (*types.Template, error) {
	path, err := resourcePath("template", "templates", id)
	if err != nil {
		return nil, err
	}

	var tmpl types.Template
	if err := c.Patch(ctx, path, req, &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// DeleteTemplate removes a template.
func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	path, err := resourcePath("template", "templates", id)
	if err != nil {
		return err
	}
	return c.Delete(ctx, path)
}
