// Package httputil provides shared HTTP response/request utilities for handlers.
//
// Handlers and middleware write responses through these helpers so every
// error carries the same JSON envelope.
package httputil
