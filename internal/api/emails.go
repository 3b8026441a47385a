package api

import (
	"context"

	"github.com/resend/resend-cli/pkg/types"
)

// SendEmail sends an email, or schedules it when ScheduledAt is set.
func (c *Client) SendEmail(ctx context.Context, req *types.SendEmailRequest) (*types.SendEmailResponse, error) {
	var resp types.SendEmailResponse
	if err := c.Post(ctx, "/emails", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetEmail retrieves a single email.
func (c *Client) GetEmail(ctx context.Context, id string) (*types.Email, error) {
	path, err := resourcePath("email", "emails", id)
	if err != nil {
		return nil, err
	}

	var email types.Email
	if err := c.Get(ctx, path, &email); err != nil {
		return nil, err
	}
	return &email, nil
}

// ListEmails returns the first page of sent emails.
func (c *Client) ListEmails(ctx context.Context) ([]types.Email, error) {
	var list types.EmailList
	if err := c.Get(ctx, "/emails", &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// CancelEmail cancels a scheduled email.
func (c *Client) CancelEmail(ctx context.Context, id string) (*types.Email, error) {
	path, err := resourcePath("email", "emails", id, "cancel")
	if err != nil {
		return nil, err
	}

	var email types.Email
	if err := c.Post(ctx, path, struct{}{}, &email); err != nil {
		return nil, err
	}
	return &email, nil
}

// UpdateEmail reschedules a scheduled email.
func (c *Client) UpdateEmail(ctx context.Context, id string, req *types.UpdateEmailRequest) (*types.Email, error) {
	path, err := resourcePath("email", "emails", id)
	if err != nil {
		return nil, err
	}

	var email types.Email
	if err := c.Patch(ctx, path, req, &email); err != nil {
		return nil, err
	}
	return &email, nil
}
