// Package scheduler owns the daemon's alarm state. A single goroutine
// serializes every mutation (create, remove, toggle), fires due alarms from
// an in-process timer with a 60-second max-sleep-cap (to survive NTP steps,
// DST transitions, and system suspend), persists the set after each change,
// and keeps the hardware wake timer armed to the earliest enabled deadline.
//
// Client-facing calls funnel requests into the loop over a channel and block
// until the loop has persisted and acknowledged them, so callers never race
// each other on shared state. Listing is served from a read-only snapshot
// published after each commit and does not enter the mutation queue.
package scheduler
