package api

import (
	"net/url"

	"github.com/resend/resend-cli/internal/validation"
)

var validator = validation.NewValidator()

// resourcePath builds "/collection/{id}[/action]" after validating id
func resourcePath(kind, collection, id string, action ...string) (string, error) {
	if err := validator.ValidateResourceID(kind, id); err != nil {
		return "", err
	}

	path := "/" + collection + "/" + url.PathEscape(id)
	for _, a := range action {
		path += "/" + a
	}
	return path, nil
}
