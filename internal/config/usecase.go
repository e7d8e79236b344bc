package config

import (
	"fmt"
	"strings"
)

// StorageType selects the Azure storage service backing a volume.
type StorageType string

// ProvisionType selects how the volume is provisioned.
type ProvisionType string

const (
	StorageBlob StorageType = "Blob"
	StorageFile StorageType = "File"

	// ProvisionPersistent binds a pre-created PersistentVolume to an
	// existing container or share (static provisioning).
	ProvisionPersistent ProvisionType = "Persistent"
	// ProvisionDynamic lets the CSI driver create the backing storage
	// through a StorageClass.
	ProvisionDynamic ProvisionType = "Dynamic"
)

// ParseStorageType parses a storage type case-insensitively.
// The empty string means "all storage types".
func ParseStorageType(s string) (StorageType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "blob":
		return StorageBlob, nil
	case "file", "files":
		return StorageFile, nil
	default:
		return "", fmt.Errorf("invalid storage type %q (expected Blob or File)", s)
	}
}

// ParseProvisionType parses a provision type case-insensitively.
// "static" is accepted as an alias for Persistent.
func ParseProvisionType(s string) (ProvisionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "persistent", "static":
		return ProvisionPersistent, nil
	case "dynamic":
		return ProvisionDynamic, nil
	default:
		return "", fmt.Errorf("invalid provision type %q (expected Persistent or Dynamic)", s)
	}
}

// Slug is the lowercase form used in Kubernetes object names.
func (s StorageType) Slug() string { return strings.ToLower(string(s)) }

// ServiceName is the human-readable Azure service name.
func (s StorageType) ServiceName() string {
	if s == StorageFile {
		return "Azure Files"
	}
	return "Blob Storage"
}

// Slug is "static" or "dynamic", used in Kubernetes object names.
func (p ProvisionType) Slug() string {
	if p == ProvisionPersistent {
		return "static"
	}
	return "dynamic"
}

// UseCase is one storage/provision combination under test.
type UseCase struct {
	Number    int
	Storage   StorageType
	Provision ProvisionType
}

// AllUseCases returns the four use cases in their canonical order.
func AllUseCases() []UseCase {
	return []UseCase{
		{Number: 1, Storage: StorageBlob, Provision: ProvisionPersistent},
		{Number: 2, Storage: StorageBlob, Provision: ProvisionDynamic},
		{Number: 3, Storage: StorageFile, Provision: ProvisionPersistent},
		{Number: 4, Storage: StorageFile, Provision: ProvisionDynamic},
	}
}

// SelectUseCases returns the use cases matching the given filters. An empty
// storage or provision type matches every value of that dimension.
func SelectUseCases(storage StorageType, provision ProvisionType) []UseCase {
	var selected []UseCase
	for _, uc := range AllUseCases() {
		if storage != "" && uc.Storage != storage {
			continue
		}
		if provision != "" && uc.Provision != provision {
			continue
		}
		selected = append(selected, uc)
	}
	return selected
}

// IsStatic reports whether the use case binds a pre-created volume.
func (u UseCase) IsStatic() bool { return u.Provision == ProvisionPersistent }

// Slug identifies the use case in object names, e.g. "static-blob".
func (u UseCase) Slug() string {
	return u.Provision.Slug() + "-" + u.Storage.Slug()
}

// Description is the human-readable form recorded in resource group tags.
func (u UseCase) Description() string {
	mode := "Static"
	if !u.IsStatic() {
		mode = "Dynamic"
	}
	return fmt.Sprintf("%s with %s Provisioning", u.Storage.ServiceName(), mode)
}

// Marker is the line the writer job stores in the test file.
func (u UseCase) Marker() string {
	return fmt.Sprintf("Hello from %s provisioning on %s", u.Provision.Slug(), u.Storage.ServiceName())
}

// MountPath is where the volume is mounted inside the test pods.
func (u UseCase) MountPath() string {
	return "/mnt/" + u.Provision.Slug()
}

// KeylessCandidate reports whether the use case can run without shared key
// access. Only statically provisioned blob volumes mount through the
// workload identity alone.
func (u UseCase) KeylessCandidate() bool {
	return u.Storage == StorageBlob && u.Provision == ProvisionPersistent
}

func (u UseCase) String() string {
	return fmt.Sprintf("UseCase%d (%s/%s)", u.Number, u.Storage, u.Provision)
}
