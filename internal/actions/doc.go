// Package actions reports a run back to the GitHub Actions runner.
//
// Ownership boundary:
// - workflow commands on stdout (groups, annotations, masks)
//
// - step outputs written to the $GITHUB_OUTPUT file
//
// - the failed/succeeded state of the step
//
// Nothing in this package launches processes or reads inputs.
package actions
