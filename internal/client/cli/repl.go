package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. args is the
// rest of the input line after the command word, trimmed.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Reset(ctx context.Context) error
	Ask(ctx context.Context, args string) error
	History(ctx context.Context) error
	Clear(ctx context.Context) error
	Model(ctx context.Context, args string) error
	Models(ctx context.Context) error
	Add(ctx context.Context, args string) error
	Read(ctx context.Context, args string) error
	Update(ctx context.Context, args string) error
	Delete(ctx context.Context, args string) error
	Search(ctx context.Context, args string) error
	List(ctx context.Context) error
	Export(ctx context.Context) error
	Users(ctx context.Context) error
	Audit(ctx context.Context, args string) error
}

const (
	helpAnonymous = "Available commands: register, login, reset, exit"
	helpUser      = "Available commands: ask <text>, history, clear, model [name], models, " +
		"add [text], read <id>, update <id>, delete <id>, search <text>, list, export, logout, exit"
	helpAdmin = "Admin commands: users, audit [username]"
)

// anonymousCommands may run without an authenticated session.
var anonymousCommands = map[string]bool{
	"help": true, "register": true, "login": true, "reset": true, "exit": true, "quit": true,
}

// runREPL reads commands from scanner until EOF or "exit"/"quit".
//
// The prompt shows the status from statusFn. Without a logged-in user only
// help, register, login, reset and exit are accepted; everything else asks
// the user to log in first. Errors from handlers are reported and the loop
// continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("mcp %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, args, _ := strings.Cut(line, " ")
		args = strings.TrimSpace(args)

		if !a.isLoggedIn() && !anonymousCommands[cmd] {
			if isKnownCommand(cmd) {
				printlnFn("Please log in first.")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpUser)
				printlnFn(helpAdmin)
			} else {
				printlnFn(helpAnonymous)
			}
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "reset":
			err = a.Reset(ctx)
		case "ask":
			err = a.Ask(ctx, args)
		case "history":
			err = a.History(ctx)
		case "clear":
			err = a.Clear(ctx)
		case "model":
			err = a.Model(ctx, args)
		case "models":
			err = a.Models(ctx)
		case "add":
			err = a.Add(ctx, args)
		case "read":
			err = a.Read(ctx, args)
		case "update":
			err = a.Update(ctx, args)
		case "delete":
			err = a.Delete(ctx, args)
		case "search":
			err = a.Search(ctx, args)
		case "l", "list":
			err = a.List(ctx)
		case "export":
			err = a.Export(ctx)
		case "users":
			err = a.Users(ctx)
		case "audit":
			err = a.Audit(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn(describe(err))
		}
	}
}

func isKnownCommand(cmd string) bool {
	switch cmd {
	case "logout", "ask", "history", "clear", "model", "models", "add", "read", "update",
		"delete", "search", "l", "list", "export", "users", "audit":
		return true
	}
	return false
}
