package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mcpclient/internal/client/services"
)

// Ask sends a question through the query pipeline and prints the accepted
// answer. Fragments are not echoed while streaming because the guardrail
// only sees the full answer.
func (a *App) Ask(ctx context.Context, args string) error {
	query := args
	if query == "" {
		var err error
		query, err = getSimpleText(a.in, "Ask a question", a.out)
		if err != nil {
			return err
		}
	}

	res, err := a.query.Handle(ctx, a.sess, query, nil)
	if err != nil {
		return err
	}

	if res.Outcome == services.OutcomeEmpty {
		fmt.Fprintln(a.out, services.EmptyResponsePlaceholder)
		return nil
	}

	fmt.Fprintln(a.out, res.Answer)
	return nil
}

func (a *App) History(ctx context.Context) error {
	turns := a.sess.History()
	if len(turns) == 0 {
		fmt.Fprintln(a.out, "No conversation yet.")
		return nil
	}
	for _, t := range turns {
		fmt.Fprintf(a.out, "User: %s\nAI: %s\n", t.UserText, t.AIText)
	}
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	a.sess.ClearHistory()
	fmt.Fprintln(a.out, "Conversation cleared.")
	return nil
}

// Model prints the current model, or selects a new one when args names it.
func (a *App) Model(ctx context.Context, args string) error {
	if args == "" {
		fmt.Fprintf(a.out, "Current model: %s\n", a.sess.Model())
		return nil
	}
	if err := a.settings.SelectModel(ctx, a.sess, args); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Model set to %s\n", args)
	return nil
}

func (a *App) Models(ctx context.Context) error {
	current := a.sess.Model()
	for _, m := range a.settings.Models() {
		marker := " "
		if m == current {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %s\n", marker, m)
	}
	return nil
}
