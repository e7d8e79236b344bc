package manifests

import (
	"fmt"
	"path"
	"time"

	"github.com/imamik/aks-storage/internal/config"
	"github.com/imamik/aks-storage/internal/util/labels"
)

// Storage classes used by the statically provisioned volumes. They are
// created by AKS when the matching CSI driver is enabled.
const (
	StaticBlobStorageClass = "azureblob-fuse-premium"
	StaticFileStorageClass = "azurefile-csi"
)

// Storage classes created for the dynamically provisioned volumes.
const (
	DynamicBlobStorageClass = "aks-storage-blob-fuse"
	DynamicFileStorageClass = "aks-storage-file"
)

const (
	blobStaticCapacity = "1Pi"
	fileStaticCapacity = "10Gi"
	blobRequest        = "5Gi"
	fileStaticRequest  = "10Gi"
	dynamicRequest     = "5Gi"

	readerInterval = 5 * time.Second
)

// Data is the template input for one use case.
type Data struct {
	UseCase   config.UseCase
	Storage   string // "blob" or "file"
	Provision string // "static" or "dynamic"

	Namespace      string
	ServiceAccount string
	ClientID       string
	ResourceGroup  string
	StorageAccount string
	ContainerName  string
	ShareName      string
	Image          string

	StorageClassName string
	PVName           string
	PVCName          string
	ConfigMapName    string
	JobName          string
	PodName          string
	Capacity         string
	Request          string

	MountPath string
	FilePath  string
	Marker    string

	ReaderAttempts        int
	ReaderIntervalSeconds int

	Labels        map[string]string
	CreatorLabels map[string]string
	ReaderLabels  map[string]string
}

// ServiceAccountData is the template input for the workload identity
// service account.
type ServiceAccountData struct {
	Namespace      string
	ServiceAccount string
	ClientID       string
	Labels         map[string]string
}

// JobName is the name of the creator Job of a use case.
func JobName(uc config.UseCase) string {
	return uc.Slug() + "-creator"
}

// PodName is the name of the reader Pod of a use case.
func PodName(uc config.UseCase) string {
	return uc.Slug() + "-reader"
}

// PVCName is the claim shared by the creator and the reader.
func PVCName(uc config.UseCase) string {
	if uc.IsStatic() {
		return fmt.Sprintf("%s-persistent-pvc", uc.Storage.Slug())
	}
	return fmt.Sprintf("%s-dynamic-pvc", uc.Storage.Slug())
}

// PVName is the statically provisioned volume of a use case. Dynamic use
// cases have no fixed volume name.
func PVName(uc config.UseCase) string {
	if !uc.IsStatic() {
		return ""
	}
	return fmt.Sprintf("%s-persistent-pv", uc.Storage.Slug())
}

// StorageClassName returns the class a use case's claim binds through.
func StorageClassName(uc config.UseCase) string {
	switch {
	case uc.IsStatic() && uc.Storage == config.StorageBlob:
		return StaticBlobStorageClass
	case uc.IsStatic():
		return StaticFileStorageClass
	case uc.Storage == config.StorageBlob:
		return DynamicBlobStorageClass
	default:
		return DynamicFileStorageClass
	}
}

// NewData builds the template input for uc. readerTimeout bounds how long
// the reader Pod waits for the creator's file.
func NewData(cfg *config.Config, uc config.UseCase, clientID string, readerTimeout time.Duration) Data {
	names := cfg.Names()
	k := cfg.Kubernetes

	attempts := int(readerTimeout / readerInterval)
	if attempts < 1 {
		attempts = 1
	}

	d := Data{
		UseCase:               uc,
		Storage:               uc.Storage.Slug(),
		Provision:             uc.Provision.Slug(),
		Namespace:             k.Namespace,
		ServiceAccount:        k.ServiceAccount,
		ClientID:              clientID,
		ResourceGroup:         names.ResourceGroup,
		StorageAccount:        names.StorageAccount,
		ContainerName:         k.ContainerName,
		ShareName:             k.ShareName,
		Image:                 k.TestImage,
		StorageClassName:      StorageClassName(uc),
		PVName:                PVName(uc),
		PVCName:               PVCName(uc),
		ConfigMapName:         uc.Slug() + "-scripts",
		JobName:               JobName(uc),
		PodName:               PodName(uc),
		MountPath:             uc.MountPath(),
		FilePath:              path.Join(uc.MountPath(), config.TestFileName),
		Marker:                uc.Marker(),
		ReaderAttempts:        attempts,
		ReaderIntervalSeconds: int(readerInterval / time.Second),
		Labels:                labels.ForObject(cfg.ID, uc.Slug(), ""),
		CreatorLabels:         labels.ForObject(cfg.ID, uc.Slug(), labels.RoleCreator),
		ReaderLabels:          labels.ForObject(cfg.ID, uc.Slug(), labels.RoleReader),
	}

	switch {
	case uc.IsStatic() && uc.Storage == config.StorageBlob:
		d.Capacity, d.Request = blobStaticCapacity, blobRequest
	case uc.IsStatic():
		d.Capacity, d.Request = fileStaticCapacity, fileStaticRequest
	default:
		d.Request = dynamicRequest
	}
	return d
}

// NewServiceAccountData builds the template input for the service account.
func NewServiceAccountData(cfg *config.Config, clientID string) ServiceAccountData {
	return ServiceAccountData{
		Namespace:      cfg.Kubernetes.Namespace,
		ServiceAccount: cfg.Kubernetes.ServiceAccount,
		ClientID:       clientID,
		Labels:         labels.ForObject(cfg.ID, "", ""),
	}
}
