package api

import (
	"context"

	"github.com/resend/resend-cli/pkg/types"
)

// CreateAPIKey creates an API key. The token is only returned here.
func (c *Client) CreateAPIKey(ctx context.Context, req *types.CreateAPIKeyRequest) (*types.APIKey, error) {
	var key types.APIKey
	if err := c.Post(ctx, "/api-keys", req, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

// ListAPIKeys returns all API keys, without tokens.
func (c *Client) ListAPIKeys(ctx context.Context) ([]types.APIKey, error) {
	var list types.APIKeyList
	if err := c.Get(ctx, "/api-keys", &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// DeleteAPIKey revokes an API key.
func (c *Client) DeleteAPIKey(ctx context.Context, id string) error {
	path, err := resourcePath("API key", "api-keys", id)
	if err != nil {
		return err
	}
	return c.Delete(ctx, path)
}
