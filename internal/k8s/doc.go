// Package k8s wraps client-go for the objects a storage test run creates.
//
// Objects are applied with typed create-or-update calls. Kinds whose spec is
// immutable once created (PersistentVolume, PersistentVolumeClaim,
// StorageClass, Job, Pod) are left untouched when they already exist, so a
// repeated run never fails on an immutable field. ServiceAccounts and
// ConfigMaps are updated in place.
//
// Waits are bounded polls built on wait.PollUntilContextTimeout.
package k8s
