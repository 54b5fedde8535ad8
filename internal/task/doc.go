// Package task provides the background execution machinery for the word service: a
// bounded in-memory task queue and a worker pool that drains it. Tasks are fire and
// forget from the submitter's point of view; failures and panics are contained by the
// pool and reported through its error handler.
package task
