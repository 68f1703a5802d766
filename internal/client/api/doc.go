// Package api contains the client-side gateway to the leave-request backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Gateway interface) covering
//     every backend operation: token issue/refresh, profile, logout, leave
//     submission and listing, leave status transitions, and user management.
//  2. A concrete HTTP implementation (see HTTPGateway) that attaches the
//     stored access token as a bearer credential, transparently refreshes it
//     once on an authorization failure, resends the original request exactly
//     once, and maps backend responses to sentinel errors and structured
//     validation errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: common.ErrUnauthorized, common.ErrSessionExpired,
// common.ErrUnavailable. Backend field validation failures are returned as
// common.ValidationError with the field→message mapping preserved. Other
// backend failures are reported as *APIError carrying the status code and the
// backend's detail message.
//
// Concurrency & Contexts
//
// HTTPGateway is safe for concurrent use. Concurrent requests that each hit
// an authorization failure each run their own refresh; the stored pair is
// last-writer-wins. All operations accept context.Context and honor
// cancellation/timeouts.
package api
