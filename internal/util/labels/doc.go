// Package labels provides consistent tagging for Azure resources and
// labeling for the Kubernetes objects a run creates.
//
// Azure tags record which use cases a resource group was created for
// (UseCase1..UseCase4) and whether shared key access was disabled, next to
// the group and run id that created it. Kubernetes labels use the
// aks-storage.io prefix so objects of one run can be selected together.
package labels
