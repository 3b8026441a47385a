package types

import "fmt"

// SendEmailRequest is the body of POST /emails
type SendEmailRequest struct {
	From        string   `json:"from"`
	To          []string `json:"to"`
	Subject     string   `json:"subject"`
	HTML        string   `json:"html,omitempty"`
	Text        string   `json:"text,omitempty"`
	Cc          []string `json:"cc,omitempty"`
	Bcc         []string `json:"bcc,omitempty"`
	ReplyTo     []string `json:"reply_to,omitempty"`
	ScheduledAt string   `json:"scheduled_at,omitempty"`
}

// SendEmailResponse is returned by POST /emails
type SendEmailResponse struct {
	ID string `json:"id"`
}

// UpdateEmailRequest reschedules a scheduled email
type UpdateEmailRequest struct {
	ScheduledAt string `json:"scheduled_at"`
}

// Email represents a sent or scheduled email. Every field except ID may be
// absent from the response.
type Email struct {
	ID        string   `json:"id"`
	From      *string  `json:"from,omitempty"`
	To        []string `json:"to,omitempty"`
	Subject   *string  `json:"subject,omitempty"`
	CreatedAt *string  `json:"created_at,omitempty"`
	LastEvent *string  `json:"last_event,omitempty"`
}

// EmailList is the envelope of GET /emails
type EmailList struct {
	Data []Email `json:"data"`
}

// CreateDomainRequest is the body of POST /domains
type CreateDomainRequest struct {
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

// UpdateDomainRequest is the body of PATCH /domains/{id}. Nil fields are
// left unchanged remotely.
type UpdateDomainRequest struct {
	ClickTracking *bool  `json:"click_tracking,omitempty"`
	OpenTracking  *bool  `json:"open_tracking,omitempty"`
	TLS           string `json:"tls,omitempty"`
}

// Domain represents a sending domain
type Domain struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Status  *string     `json:"status,omitempty"`
	Region  *string     `json:"region,omitempty"`
	Records []DNSRecord `json:"records,omitempty"`
}

// DNSRecord is a record the user must publish to verify a domain
type DNSRecord struct {
	Record   string  `json:"record"`
	Name     string  `json:"name"`
	Type     *string `json:"type,omitempty"`
	TTL      *string `json:"ttl,omitempty"`
	Value    string  `json:"value"`
	Status   *string `json:"status,omitempty"`
	Priority *int    `json:"priority,omitempty"`
}

// DomainList is the envelope of GET /domains
type DomainList struct {
	Data []Domain `json:"data"`
}

// CreateAPIKeyRequest is the body of POST /api-keys
type CreateAPIKeyRequest struct {
	Name       string `json:"name"`
	Permission string `json:"permission,omitempty"`
	DomainID   string `json:"domain_id,omitempty"`
}

// APIKey represents an API key. Token is only present on creation.
type APIKey struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Token     *string `json:"token,omitempty"`
	CreatedAt *string `json:"created_at,omitempty"`
}

// APIKeyList is the envelope of GET /api-keys
type APIKeyList struct {
	Data []APIKey `json:"data"`
}

// CreateTemplateRequest is the body of POST /templates
type CreateTemplateRequest struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	HTML    string `json:"html,omitempty"`
	Text    string `json:"text,omitempty"`
}

// UpdateTemplateRequest is the body of PATCH /templates/{id}
type UpdateTemplateRequest struct {
	Name    string `json:"name,omitempty"`
	Subject string `json:"subject,omitempty"`
	HTML    string `json:"html,omitempty"`
	Text    string `json:"text,omitempty"`
}

// Template represents a stored email template
type Template struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Subject   *string `json:"subject,omitempty"`
	CreatedAt *string `json:"created_at,omitempty"`
}

// TemplateList is the envelope of GET /templates
type TemplateList struct {
	Data []Template `json:"data"`
}

// ProfileSummary describes a stored profile for display. The credential
// itself never appears here, only its masked form and fingerprint.
type ProfileSummary struct {
	Name        string `json:"name"`
	Active      bool   `json:"active"`
	MaskedKey   string `json:"api_key"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Validate reports a response missing a required field
func (r SendEmailResponse) Validate() error {
	return required("id", r.ID)
}

// Validate reports a response missing a required field
func (e Email) Validate() error {
	return required("id", e.ID)
}

// Validate reports a response missing a required field
func (d Domain) Validate() error {
	if err := required("id", d.ID); err != nil {
		return err
	}
	return required("name", d.Name)
}

// Validate reports a response missing a required field
func (k APIKey) Validate() error {
	if err := required("id", k.ID); err != nil {
		return err
	}
	return required("name", k.Name)
}

// Validate reports a response missing a required field
func (t Template) Validate() error {
	if err := required("id", t.ID); err != nil {
		return err
	}
	return required("name", t.Name)
}

// Validate reports an envelope without data or with an invalid item
func (l EmailList) Validate() error { return validateList(l.Data) }

// Validate reports an envelope without data or with an invalid item
func (l DomainList) Validate() error { return validateList(l.Data) }

// Validate reports an envelope without data or with an invalid item
func (l APIKeyList) Validate() error { return validateList(l.Data) }

// Validate reports an envelope without data or with an invalid item
func (l TemplateList) Validate() error { return validateList(l.Data) }

func required(field, value string) error {
	if value == "" {
		return fmt.Errorf("missing required field %q", field)
	}
	return nil
}

// validateList treats absent or null data as missing
func validateList[T interface{ Validate() error }](items []T) error {
	if items == nil {
		return fmt.Errorf("missing required field %q", "data")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("data[%d]: %w", i, err)
		}
	}
	return nil
}
