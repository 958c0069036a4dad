// Package middlewares holds app middleware: panic recovery, request
// timeouts and request logging with chi request IDs.
package middlewares
