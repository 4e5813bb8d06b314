// Package http implements the HTTP transport layer of the sync service: the
// device-facing restore endpoint, the transaction intake, sync-log and
// cleanliness-flag maintenance endpoints, and the middleware stack
// (tracing, logging, compression, token authentication) in front of them.
package http
