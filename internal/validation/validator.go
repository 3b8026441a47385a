package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

// ErrInvalidInput is wrapped by every validation failure
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Validator provides input validation for command arguments
type Validator struct {
	// Patterns for validation
	profileNamePattern *regexp.Regexp
	resourceIDPattern  *regexp.Regexp
	domainNamePattern  *regexp.Regexp

	// Patterns that break a URL path segment
	pathTraversalPatterns []*regexp.Regexp
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		// Profile name: alphanumeric with underscores, hyphens, dots (1-64 chars)
		profileNamePattern: regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`),

		// Resource IDs are UUIDs in practice; allow a little more
		resourceIDPattern: regexp.MustCompile(`^[a-zA-Z0-9._-]{1,128}$`),

		// RFC 1123 host name with at least one dot
		domainNamePattern: regexp.MustCompile(`^(?i)([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`),

		pathTraversalPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\.+$`),             // . or ..
			regexp.MustCompile(`%2e%2e|%252e%252e`), // URL encoded traversal
			regexp.MustCompile(`\x00`),              // Null bytes
		},
	}
}

// ValidateProfileName validates a profile name
func (v *Validator) ValidateProfileName(name string) error {
	if name == "" {
		return invalid("profile name cannot be empty")
	}

	if len(name) > 64 {
		return invalid("profile name too long: maximum 64 characters")
	}

	if !v.profileNamePattern.MatchString(name) {
		return invalid("invalid profile name: must contain only alphanumeric characters, dots, underscores, and hyphens")
	}

	if v.containsPathTraversal(name) {
		return invalid("invalid profile name '%s'", name)
	}

	return nil
}

// ValidateResourceID validates an email, domain, API key or template ID
// before it is placed in a request path
func (v *Validator) ValidateResourceID(kind, id string) error {
	if id == "" {
		return invalid("%s ID cannot be empty", kind)
	}

	if !v.resourceIDPattern.MatchString(id) || v.containsPathTraversal(id) {
		return invalid("invalid %s ID '%s'", kind, id)
	}

	return nil
}

// ValidateAPIKey checks that a credential can be sent in a header
func (v *Validator) ValidateAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return invalid("API key cannot be empty")
	}

	for _, r := range key {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r > unicode.MaxASCII {
			return invalid("API key contains invalid characters")
		}
	}

	return nil
}

// ValidateEmailAddress accepts "user@example.com" and "Name <user@example.com>"
func (v *Validator) ValidateEmailAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return invalid("email address cannot be empty")
	}

	if _, err := mail.ParseAddress(address); err != nil {
		return invalid("invalid email address '%s'", address)
	}

	return nil
}

// ValidateEmailAddresses validates every address in the list
func (v *Validator) ValidateEmailAddresses(field string, addresses []string) error {
	for _, address := range addresses {
		if err := v.ValidateEmailAddress(address); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
	}
	return nil
}

// ValidateDomainName validates a sending domain name
func (v *Validator) ValidateDomainName(name string) error {
	if name == "" {
		return invalid("domain name cannot be empty")
	}

	if len(name) > 253 {
		return invalid("domain name too long: maximum 253 characters")
	}

	if !v.domainNamePattern.MatchString(name) {
		return invalid("invalid domain name '%s'", name)
	}

	return nil
}

// ValidateOneOf checks that value is one of the allowed choices. An empty
// value is accepted.
func (v *Validator) ValidateOneOf(field, value string, allowed ...string) error {
	if value == "" {
		return nil
	}

	for _, a := range allowed {
		if value == a {
			return nil
		}
	}

	return invalid("%s must be one of: %s", field, strings.Join(allowed, ", "))
}

func (v *Validator) containsPathTraversal(input string) bool {
	lower := strings.ToLower(input)
	for _, pattern := range v.pathTraversalPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}
