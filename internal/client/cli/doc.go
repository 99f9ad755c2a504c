// Package cli provides the interactive MCP client command line.
//
// The App owns one Session and drives it through the services package:
// authentication, the guarded query pipeline, record commands and model
// selection. A background watcher pings the server and reports when the
// client goes offline or comes back.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See runREPL for the command table.
package cli
