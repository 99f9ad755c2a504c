package cli

import (
	"errors"

	"github.com/dmitrijs2005/mcpclient/internal/client/client"
	"github.com/dmitrijs2005/mcpclient/internal/client/services"
	"github.com/dmitrijs2005/mcpclient/internal/common"
	"github.com/dmitrijs2005/mcpclient/internal/guardrail"
)

// describe turns a command error into the line shown to the user.
func describe(err error) string {
	var (
		violation *guardrail.Violation
		provider  *services.ProviderError
	)

	switch {
	case errors.As(err, &violation):
		return violation.Error()
	case errors.As(err, &provider):
		return "Error: " + provider.Error()
	case errors.Is(err, common.ErrForbidden):
		return "Access denied: admin role required."
	case errors.Is(err, common.ErrorUnauthorized):
		return "Please log in first."
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later."
	default:
		return "Error: " + err.Error()
	}
}
