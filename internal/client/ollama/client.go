// Package ollama is a minimal streaming client for the Ollama generate API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/mcpclient/internal/logging"
	"golang.org/x/time/rate"
)

// ErrorType categorizes client errors.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeStatus
	ErrTypeInvalidRequest
)

// ClientError is returned when the provider cannot be reached, answers with
// a non-2xx status or the stream breaks mid-read.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Defaults for the request limiter.
const (
	DefaultRequestsPerSecond = 2
	DefaultBurst             = 4
)

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     logging.Logger
}

// NewClient returns a client for the Ollama server at baseURL. Requests are
// paced by a token bucket; rps <= 0 selects the defaults.
func NewClient(baseURL string, rps float64, burst int, logger logging.Logger) *Client {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		logger:     logger.With("module", "ollama"),
	}
}

// Generate starts a streaming generation. The caller must Close the stream.
func (c *Client) Generate(ctx context.Context, model, prompt string) (FragmentStream, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "rate limiter", Cause: err}
	}

	body, err := json.Marshal(generateRequest{Model: model, Prompt: prompt})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidRequest, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidRequest, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to connect to Ollama", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		var apiErr struct {
			Error string `json:"error"`
		}
		msg := fmt.Sprintf("Ollama returned %s", resp.Status)
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			msg += ": " + apiErr.Error
		}
		return nil, &ClientError{Type: ErrTypeStatus, Message: msg}
	}

	return newLineStream(ctx, resp.Body, c.logger), nil
}

// IsConnection reports whether err is a provider connection failure.
func IsConnection(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeConnection
}
