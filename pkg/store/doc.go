// Package store owns the lifecycle of the policy graph: build once on first
// use, publish behind an atomic pointer, and replace wholesale on reload.
//
// The core performs no internal concurrency; safety for concurrent readers
// comes from the graph being immutable after publication and from reloads
// swapping in a freshly built graph rather than mutating the live one. The
// optional file watcher (fsnotify) and refresh scheduler (cron) both funnel
// into the same atomic Reload path.
package store
