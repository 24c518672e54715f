// Package batch implements the concurrent batch profile fetcher.
//
// Given a list of 1–100 usernames it fans out one fetch task per
// username across a bounded worker pool, tolerates per-username
// failures, and reassembles the results in input order. Usage:
//
//	client, _ := api.New(api.DefaultConfig())
//	fetcher := batch.NewFetcher(client, batch.DefaultConfig())
//	result, err := fetcher.Fetch(ctx, usernames)
//
// The fetcher:
//   - Validates list size before issuing any network call
//   - Tags each task with its input index (completion order is irrelevant)
//   - Converts every fetch error into an isolated Failure record
//   - Turns tasks outstanding at the batch deadline into timeout failures
//
// There is deliberately no retry or backoff: a failed username stays a
// single Failure record and never aborts its siblings.
package batch
