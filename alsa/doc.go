// Package alsa implements the client-side session core for a real-time MIDI input
// endpoint on top of an external sequencer service.
//
// A Session owns a single receiver port and drives everything through a strict
// lifecycle: closed -> idle (Open), idle -> running (Activate), running -> idle
// (Stop), any -> closed (Close). All public operations serialize on one session
// lock and fail with ErrBadState when invoked from a state that does not permit
// them.
//
// While running, a background connection monitor periodically reconciles the
// desired connection target against the connections the sequencer service actually
// reports. The monitor is additive-only: once any inbound connection exists it
// leaves the wiring alone. Reconciliation failures are logged and retried on the
// next tick, never surfaced to the foreground.
//
// Counterpart ports are located by a textual designation, either "name" or
// "client:port" where each side may be a number or a (normalized) name. See
// ParseDesignation and Match for the grammar and the matching precedence.
//
// Buffered events are consumed through Retrieve, which drains every event captured
// at or before a caller-given deadline and hands each decoded MIDI message to a
// callback. Retrieve is bounded by the number of already-queued events and never
// blocks on the event source.
package alsa
