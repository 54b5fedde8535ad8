// Package generation defines the boundary between the word prefetch core and the
// external services that actually produce words for a theme (LLM providers, a curated
// database). It provides the Backend interface, the Selector that resolves the single
// configured backend from a registry, and the AvailabilityCache that backends use to
// keep liveness probes off the hot path.
package generation
