package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/mcpclient/internal/client/models"
	"github.com/dmitrijs2005/mcpclient/internal/common"
)

func parseID(arg string) (int64, error) {
	if arg == "" {
		return 0, &common.ValidationError{Field: "id"}
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: %w", arg, common.ErrValidation)
	}
	return id, nil
}

// Add stores args as a record, or prompts for multi-line content when no
// text was given on the command line.
func (a *App) Add(ctx context.Context, args string) error {
	content := args
	if content == "" {
		var err error
		content, err = GetMultiline(a.in, "Enter record text", a.out)
		if err != nil {
			return err
		}
	}

	id, err := a.records.Add(ctx, a.sess, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Record %d added.\n", id)
	return nil
}

func (a *App) Read(ctx context.Context, args string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	content, err := a.records.Read(ctx, a.sess, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, content)
	return nil
}

func (a *App) Update(ctx context.Context, args string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.in, "Enter new record text", a.out)
	if err != nil {
		return err
	}
	n, err := a.records.Update(ctx, a.sess, id, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d record(s) updated.\n", n)
	return nil
}

func (a *App) Delete(ctx context.Context, args string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	n, err := a.records.Delete(ctx, a.sess, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d record(s) deleted.\n", n)
	return nil
}

func (a *App) Search(ctx context.Context, args string) error {
	found, err := a.records.Search(ctx, a.sess, args)
	if err != nil {
		return err
	}
	a.printRecords(found)
	return nil
}

func (a *App) List(ctx context.Context) error {
	all, err := a.records.List(ctx, a.sess)
	if err != nil {
		return err
	}
	a.printRecords(all)
	return nil
}

func (a *App) printRecords(records []*models.Record) {
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No records.")
		return
	}
	for _, r := range records {
		first, _, more := strings.Cut(r.Content, "\n")
		if more {
			first += " ..."
		}
		fmt.Fprintf(a.out, "[%d] %s\n", r.ID, first)
	}
}

func (a *App) Export(ctx context.Context) error {
	res, err := a.records.Export(ctx, a.sess)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d record(s) to %s (%d bytes)\n", res.Count, res.Path, res.Bytes)
	return nil
}
