// Package lmstudio implements a generation.Backend on top of a local LM Studio
// server through its OpenAI-compatible HTTP API.
package lmstudio
