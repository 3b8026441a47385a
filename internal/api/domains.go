package api

import (
	"context"

	"github.com/resend/resend-cli/pkg/types"
)

// CreateDomain registers a sending domain. The response carries the DNS
// records to publish.
func (c *Client) CreateDomain(ctx context.Context, req *types.CreateDomainRequest) (*types.Domain, error) {
	var domain types.Domain
	if err := c.Post(ctx, "/domains", req, &domain); err != nil {
		return nil, err
	}
	return &domain, nil
}

// ListDomains returns all domains.
func (c *Client) ListDomains(ctx context.Context) ([]types.Domain, error) {
	var list types.DomainList
	if err := c.Get(ctx, "/domains", &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// GetDomain retrieves a single domain.
func (c *Client) GetDomain(ctx context.Context, id string) (*types.Domain, error) {
	path, err := resourcePath("domain", "domains", id)
	if err != nil {
		return nil, err
	}

	var domain types.Domain
	if err := c.Get(ctx, path, &domain); err != nil {
		return nil, err
	}
	return &domain, nil
}

// VerifyDomain starts DNS verification of a domain.
func (c *Client) VerifyDomain(ctx context.Context, id string) (*types.Domain, error) {
	path, err := resourcePath("domain", "domains", id, "verify")
	if err != nil {
		return nil, err
	}

	var domain types.Domain
	if err := c.Post(ctx, path, struct{}{}, &domain); err != nil {
		return nil, err
	}
	return &domain, nil
}

// UpdateDomain changes tracking and TLS settings.
func (c *Client) UpdateDomain(ctx context.Context, id string, req *types.UpdateDomainRequest) (*types.Domain, error) {
	path, err := resourcePath("domain", "domains", id)
	if err != nil {
		return nil, err
	}

	var domain types.Domain
	if err := c.Patch(ctx, path, req, &domain); err != nil {
		return nil, err
	}
	return &domain, nil
}

// DeleteDomain removes a domain.
func (c *Client) DeleteDomain(ctx context.Context, id string) error {
	path, err := resourcePath("domain", "domains", id)
	if err != nil {
		return err
	}
	return c.Delete(ctx, path)
}

// TestConnection checks that the credential is accepted by listing domains.
// A key restricted to sending cannot be told apart from an invalid one.
func (c *Client) TestConnection(ctx context.Context) error {
	var list types.DomainList
	return c.Get(ctx, "/domains", &list)
}
