// Package service contains the application-level use cases of the word
// generation subsystem.
//
// The central type is WordProvider, the single entry point gameplay code uses to
// obtain a themed word. It coordinates three collaborators supplied through
// constructor injection:
//
//   - a word pool that serves pre-generated words per theme
//   - a refill trigger that schedules background generation when a pool runs low
//   - a backend selector that resolves the active generation backend
//
// The provider never blocks on background work. Only the bootstrap path, taken
// when a theme's pool is empty, performs a synchronous backend call; failures on
// that path surface as generation.ErrGenerationUnavailable.
package service
