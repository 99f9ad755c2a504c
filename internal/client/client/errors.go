package client

import (
	"errors"

	"github.com/dmitrijs2005/mcpclient/internal/common"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = common.ErrorUnauthorized
)

// statusError keeps the server's message while matching a sentinel with
// errors.Is.
type statusError struct {
	msg      string
	sentinel error
}

func (e *statusError) Error() string { return e.msg }

func (e *statusError) Unwrap() error { return e.sentinel }
