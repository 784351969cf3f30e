// Package notary drives Apple's command-line tools for one notarization run.
//
// Ownership boundary:
// - building ditto and notarytool argument lists
//
// - archiving a product bundle to the fixed temporary destination
//
// - submitting the archive and reducing notarytool's termination to a verdict
//
// Lifecycle order:
// - archive -> submit
//
// - submit blocks until notarytool exits; notarytool does the service polling.
//
// A clean non-zero exit is a rejected submission, not an error. Only a
// notarytool that never produced an exit status escalates as ErrNotRun.
package notary
