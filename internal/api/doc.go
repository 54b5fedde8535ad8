// Package api exposes the word prefetch service over HTTP. It translates
// requests into word provider and pool operations and maps internal errors to
// status codes and safe client messages; see MapErrorToStatusCode.
package api
