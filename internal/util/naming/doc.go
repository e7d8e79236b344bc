// Package naming derives Azure and Kubernetes resource names for a run.
//
// Azure resources follow the pattern {group}-{id}-{type}. Storage accounts
// cannot contain dashes and are limited to 24 characters, so their name is
// the group and id concatenated with an "sa" suffix. Kubernetes objects for a
// use case are named {provision}-{storage}-{role}, e.g. static-blob-creator.
package naming
