package labels

import (
	"fmt"
	"maps"
)

// Azure resource tag keys.
const (
	// TagManagedBy identifies the tool that created the resource.
	TagManagedBy = "managed-by"

	// TagGroup is the --group prefix used for the run.
	TagGroup = "group"

	// TagRunID is the unique id shared by all resources of one run.
	TagRunID = "run-id"

	// TagKeyAccess is set to "disabled" when shared key access is off.
	TagKeyAccess = "KeyAccess"

	// KeyAccessDisabled is the TagKeyAccess value for keyless runs.
	KeyAccessDisabled = "disabled"

	ManagedByAKSStorage = "aks-storage"
)

// Kubernetes label keys.
const (
	KeyRunID    = "aks-storage.io/run-id"
	KeyUseCase  = "aks-storage.io/use-case"
	KeyRole     = "aks-storage.io/role"
	KeyPartOf   = "app.kubernetes.io/part-of"
	KeyManaged  = "app.kubernetes.io/managed-by"
	RoleCreator = "creator"
	RoleReader  = "reader"
)

// UseCaseTag returns the tag key recording use case n, e.g. "UseCase1".
func UseCaseTag(n int) string {
	return fmt.Sprintf("UseCase%d", n)
}

// TagBuilder builds the tag set attached to every Azure resource of a run.
type TagBuilder struct {
	tags map[string]string
}

// NewTagBuilder creates a tag builder with group, run id and manager pre-set.
func NewTagBuilder(group, runID string) *TagBuilder {
	return &TagBuilder{
		tags: map[string]string{
			TagManagedBy: ManagedByAKSStorage,
			TagGroup:     group,
			TagRunID:     runID,
		},
	}
}

// WithUseCase records use case n with its description.
func (tb *TagBuilder) WithUseCase(n int, description string) *TagBuilder {
	tb.tags[UseCaseTag(n)] = description
	return tb
}

// WithKeyAccessDisabled sets KeyAccess=disabled when disabled is true.
func (tb *TagBuilder) WithKeyAccessDisabled(disabled bool) *TagBuilder {
	if disabled {
		tb.tags[TagKeyAccess] = KeyAccessDisabled
	}
	return tb
}

// Merge adds all tags from the provided map.
func (tb *TagBuilder) Merge(extra map[string]string) *TagBuilder {
	maps.Copy(tb.tags, extra)
	return tb
}

// Build returns a copy of the tags map.
func (tb *TagBuilder) Build() map[string]string {
	return maps.Clone(tb.tags)
}

// ForObject returns the Kubernetes labels for an object of a use case.
// role may be empty for objects shared by all roles (PVC, PV, ConfigMap).
func ForObject(runID, useCase, role string) map[string]string {
	l := map[string]string{
		KeyPartOf:  ManagedByAKSStorage,
		KeyManaged: ManagedByAKSStorage,
		KeyRunID:   runID,
	}
	if useCase != "" {
		l[KeyUseCase] = useCase
	}
	if role != "" {
		l[KeyRole] = role
	}
	return l
}

// SelectorForRun returns a label selector for all objects of a run.
func SelectorForRun(runID string) string {
	return KeyRunID + "=" + runID
}
