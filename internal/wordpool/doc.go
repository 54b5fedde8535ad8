// Package wordpool provides an in-memory, per-theme FIFO cache of pre-generated words.
// Each theme owns its own queue and lock, so traffic for one theme never serializes
// traffic for another.
package wordpool
