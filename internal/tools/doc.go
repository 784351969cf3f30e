// Package tools provides the process-launch primitives the notarization step
// is built on.
//
// Ownership boundary:
// - launching external tools and capturing their output
//
// - live relay of child stdout/stderr to injectable sinks
//
// - reducing a child's termination to a tagged Outcome
//
// The runner never treats a non-zero exit as an error. Only a child that
// produced no exit status at all is reported as OutcomeNotRun.
package tools
