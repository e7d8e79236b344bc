// Package validation checks each use case end to end.
//
// A case passes when its writer Job completes and logged the marker line,
// the reader Pod mounting the same claim succeeds with the marker in its
// output, and, for static Blob cases, the written blob exists in the
// container. Cases that already failed in an earlier phase are reported
// as-is.
package validation
