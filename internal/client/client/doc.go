// Package client talks to the MCP server and prepares local storage.
//
// # Overview
//
// The package provides:
//  1. The Client contract used by the CLI services: account operations,
//     the record store and exports.
//  2. GRPCClient, which keeps the token pair of the current login, attaches
//     the access token to outgoing calls, refreshes it once when the server
//     reports it expired, and maps gRPC status codes to sentinel errors.
//  3. InitDatabase and RunMigrations for the local SQLite preferences file.
//
// # Error Handling
//
// Login failures come back as *common.InvalidCredentialsError and
// *common.AccountLockedError. Other conditions match with errors.Is:
// ErrUnavailable, ErrUnauthorized, common.ErrForbidden, common.ErrorNotFound,
// common.ErrDuplicateUser and common.ErrValidation.
package client
