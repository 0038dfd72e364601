// Package http builds the round-tripper chain shared by the page and asset clients:
// a tuned base transport, a debug-level exchange logger and a User-Agent injector.
package http
