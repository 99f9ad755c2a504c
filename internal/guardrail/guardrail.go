// Package guardrail implements the content policy applied to generated
// answers before they are shown to the user or kept in the conversation.
package guardrail

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLength is the answer length limit in characters.
const DefaultMaxLength = 1200

// DefaultBannedTerms is checked in order; the first match is reported.
var DefaultBannedTerms = []string{"hate", "violence", "kill", "terrorist", "racist", "sexist"}

// Reason classifies a Violation.
type Reason int

const (
	ReasonNotText Reason = iota + 1
	ReasonBannedTerm
	ReasonTooLong
)

// Violation is returned by Check when the text is rejected.
type Violation struct {
	Reason    Reason
	Term      string
	MaxLength int
}

func (v *Violation) Error() string {
	switch v.Reason {
	case ReasonBannedTerm:
		return fmt.Sprintf("Guardrail: Response blocked due to inappropriate content (word: '%s').", v.Term)
	case ReasonTooLong:
		return fmt.Sprintf("Guardrail: Response too long (>%d characters).", v.MaxLength)
	default:
		return "Guardrail: Response is not text."
	}
}

type Guardrail struct {
	bannedTerms []string
	maxLength   int
}

type Option func(*Guardrail)

// WithBannedTerms replaces the default term list. Order is preserved.
func WithBannedTerms(terms ...string) Option {
	return func(g *Guardrail) {
		g.bannedTerms = append([]string(nil), terms...)
	}
}

func WithMaxLength(n int) Option {
	return func(g *Guardrail) {
		g.maxLength = n
	}
}

func New(opts ...Option) *Guardrail {
	g := &Guardrail{
		bannedTerms: DefaultBannedTerms,
		maxLength:   DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check returns v unchanged when it is a string that passes the policy.
// Banned terms are matched case-insensitively as substrings and take
// precedence over the length limit.
func (g *Guardrail) Check(v any) (string, error) {
	text, ok := v.(string)
	if !ok {
		return "", &Violation{Reason: ReasonNotText}
	}

	lower := strings.ToLower(text)
	for _, term := range g.bannedTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			return "", &Violation{Reason: ReasonBannedTerm, Term: term}
		}
	}

	if utf8.RuneCountInString(text) > g.maxLength {
		return "", &Violation{Reason: ReasonTooLong, MaxLength: g.maxLength}
	}

	return text, nil
}
