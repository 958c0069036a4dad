// Package app is the HTTP runtime of the server: a chi router behind a
// small Context abstraction, health endpoints, and a graceful Run loop
// with startup and shutdown hooks.
package app
