// Package utils provides small helpers shared across the application:
// filename sanitizing, home directory expansion, URL list files, content type checks,
// MP3 frame inspection and the User-Agent provider used by the HTTP transport.
package utils
