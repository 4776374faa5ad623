// Package metrics derives reading-speed figures for a single subtitle cue.
//
// Calculator turns a Cue (stripped text plus start/stop in milliseconds) into
// display speed, reading speed, screen duration and an ideal duration, rates
// the reading speed through an injected classifier and renders both speeds as
// bar gauges. StatusLine joins everything into the one-line summary shown by
// status bars.
//
// Degenerate durations are not guarded: a zero duration yields an infinite
// display speed and any duration at or under the reading offset yields an
// infinite (or NaN for empty text) reading speed. FormatNumber prints those as
// Infinity and NaN.
package metrics
