// Package report turns a parsed subtitle file into per-cue reading speed
// rows plus a summary, and renders them as a terminal table, JSON, or YAML.
//
// Speeds in a report are rounded to one decimal. A cue whose duration does
// not exceed the reading offset has an infinite (or NaN) reading speed;
// these serialize as the strings "Infinity" and "NaN" and are left out of
// the summary mean and max.
package report
