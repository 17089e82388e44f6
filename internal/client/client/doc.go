// Package client talks to the SkillSwap backend on behalf of the CLI.
//
// # Overview
//
// The package provides:
//  1. The Client contract used by the client services: directory, swap
//     request, rating, dashboard and photo operations, plus Ping.
//  2. HTTPClient, a JSON-over-HTTP implementation for the REST API. Ping goes
//     to the gRPC health endpoint instead.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     SQLite metadata store with embedded goose migrations.
//
// # Error Handling
//
// Transport failures and gateway errors become ErrUnavailable. Every other
// non-2xx response is an *APIError carrying the server's detail message;
// 404, 409 and 403 also match ErrNotFound, ErrConflict and ErrForbidden with
// errors.Is.
//
// Requests are never retried or de-duplicated.
package client
