package naming

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Azure naming limits.
const (
	MaxStorageAccountLength = 24
	MinStorageAccountLength = 3
	IDLength                = 6
	idAlphabet              = "abcdefghijklmnopqrstuvwxyz0123456789"
)

func ResourceGroup(group, id string) string {
	return fmt.Sprintf("%s-%s-rg", group, id)
}

func Identity(group, id string) string {
	return fmt.Sprintf("%s-%s-identity", group, id)
}

func Cluster(group, id string) string {
	return fmt.Sprintf("%s-%s-aks", group, id)
}

// StorageAccount returns the storage account name: dashes stripped,
// lowercased and truncated to 24 characters.
func StorageAccount(group, id string) string {
	name := strings.ToLower(strings.ReplaceAll(group+id+"sa", "-", ""))
	if len(name) > MaxStorageAccountLength {
		name = name[:MaxStorageAccountLength]
	}
	return name
}

// DNSPrefix returns the AKS DNS prefix. It must start with a letter and
// be at most 54 characters.
func DNSPrefix(group, id string) string {
	prefix := fmt.Sprintf("%s-%s", group, id)
	if len(prefix) > 54 {
		prefix = prefix[:54]
	}
	return strings.TrimSuffix(prefix, "-")
}

// NodeResourceGroup is the resource group AKS creates for cluster nodes
// when none is requested explicitly.
func NodeResourceGroup(resourceGroup, cluster, location string) string {
	return fmt.Sprintf("MC_%s_%s_%s", resourceGroup, cluster, location)
}

// CaseObject names a Kubernetes object belonging to a use case.
func CaseObject(provision, storage, role string) string {
	return fmt.Sprintf("%s-%s-%s", provision, storage, role)
}

// RandomID returns an id of n characters drawn from [a-z0-9].
func RandomID(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("id length must be positive, got %d", n)
	}
	max := big.NewInt(int64(len(idAlphabet)))
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random id: %w", err)
		}
		b.WriteByte(idAlphabet[idx.Int64()])
	}
	return b.String(), nil
}
