// Package httputil provides the HTTP plumbing shared by cfgview's API
// handlers.
//
// # Responses
//
// [WriteJSON] encodes a value with a status code. [WriteError] maps the
// error codes of pkg/errors to HTTP statuses, so a handler can return any
// pipeline error unchanged:
//
//	if err != nil {
//	    httputil.WriteError(w, r, err)
//	    return
//	}
//
// # Middleware
//
// [RequestID] tags every request with a UUID, taken from the X-Request-ID
// header when the caller sent a valid one. [Logger] logs each request and
// reports it to the observability HTTP hooks.
package httputil
