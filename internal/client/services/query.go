package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mcpclient/internal/client/ollama"
	"github.com/dmitrijs2005/mcpclient/internal/client/session"
	"github.com/dmitrijs2005/mcpclient/internal/common"
	"github.com/dmitrijs2005/mcpclient/internal/guardrail"
	"github.com/dmitrijs2005/mcpclient/internal/logging"
)

// Generator produces a fragment stream for a prompt.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (ollama.FragmentStream, error)
}

// RecordAdder keeps answered exchanges.
type RecordAdder interface {
	AddRecord(ctx context.Context, content string) (int64, error)
}

type Outcome int

const (
	OutcomeAnswered Outcome = iota + 1
	OutcomeEmpty
)

// EmptyResponsePlaceholder is shown when the provider produced no text.
const EmptyResponsePlaceholder = "[Ollama returned no response for this prompt]"

type Result struct {
	Outcome Outcome
	Answer  string
}

// ProviderError reports that the generation provider could not be reached
// or broke the stream.
type ProviderError struct {
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

type QueryService struct {
	generator Generator
	records   RecordAdder
	guard     *guardrail.Guardrail
	logger    logging.Logger
}

func NewQueryService(g Generator, records RecordAdder, guard *guardrail.Guardrail, logger logging.Logger) *QueryService {
	return &QueryService{generator: g, records: records, guard: guard, logger: logger.With("module", "query")}
}

// Handle runs one question through the provider and the guardrail. Only an
// accepted answer joins the conversation. onFragment, when set, sees every
// fragment as it arrives.
func (q *QueryService) Handle(ctx context.Context, sess *session.Session, query string, onFragment func(string)) (*Result, error) {
	if !sess.IsAuthenticated() {
		return nil, common.ErrorUnauthorized
	}
	if strings.TrimSpace(query) == "" {
		return nil, &common.ValidationError{Field: "query"}
	}

	prompt := sess.BuildPrompt(query)

	answer, err := q.generate(ctx, sess.Model(), prompt, onFragment)
	if err != nil {
		return nil, err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return &Result{Outcome: OutcomeEmpty}, nil
	}

	accepted, err := q.guard.Check(answer)
	if err != nil {
		q.logger.Info(ctx, "answer rejected", "session", sess.ID(), "reason", err.Error())
		return nil, err
	}

	sess.AppendTurn(query, accepted)
	q.persist(ctx, query, accepted)

	return &Result{Outcome: OutcomeAnswered, Answer: accepted}, nil
}

func (q *QueryService) generate(ctx context.Context, model, prompt string, onFragment func(string)) (string, error) {
	stream, err := q.generator.Generate(ctx, model, prompt)
	if err != nil {
		return "", providerError(err)
	}
	defer stream.Close()

	var b strings.Builder
	for stream.Next() {
		f := stream.Fragment()
		b.WriteString(f)
		if onFragment != nil {
			onFragment(f)
		}
	}
	if err := stream.Err(); err != nil {
		return "", providerError(err)
	}
	return b.String(), nil
}

func providerError(err error) error {
	var ce *ollama.ClientError
	if errors.As(err, &ce) {
		return &ProviderError{Message: ce.Message, Cause: ce.Cause}
	}
	return &ProviderError{Message: "generation failed", Cause: err}
}

func (q *QueryService) persist(ctx context.Context, query, answer string) {
	if q.records == nil {
		return
	}
	content := fmt.Sprintf("Q: %s\nA: %s", query, answer)
	if _, err := q.records.AddRecord(ctx, content); err != nil {
		q.logger.Warn(ctx, "failed to store exchange", "error", err)
	}
}
