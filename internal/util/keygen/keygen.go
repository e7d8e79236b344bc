package keygen

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/ssh"
)

// DefaultBits is the key size used for AKS node keys.
const DefaultBits = 4096

// KeyPair holds an RSA key pair in ready-to-use formats.
type KeyPair struct {
	// PrivateKey is the RSA private key in PEM-encoded PKCS#1 format.
	PrivateKey []byte
	// PublicKey is the public key in OpenSSH authorized_keys format.
	PublicKey []byte
}

// GenerateRSAKeyPair generates a new RSA key pair with the specified bit size.
func GenerateRSAKeyPair(bits int) (*KeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA private key: %w", err)
	}

	if err := privateKey.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate RSA private key: %w", err)
	}

	privateKeyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	publicKey, err := ssh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH public key: %w", err)
	}

	return &KeyPair{
		PrivateKey: privateKeyPEM,
		PublicKey:  ssh.MarshalAuthorizedKey(publicKey),
	}, nil
}

// AuthorizedKey returns the public key without the trailing newline, the
// form expected by the AKS Linux profile.
func (k *KeyPair) AuthorizedKey() string {
	return strings.TrimSpace(string(k.PublicKey))
}

// Fingerprint returns the SHA256 fingerprint of the public key.
func (k *KeyPair) Fingerprint() (string, error) {
	pub, _, _, _, err := ssh.ParseAuthorizedKey(k.PublicKey)
	if err != nil {
		return "", fmt.Errorf("failed to parse public key: %w", err)
	}
	return ssh.FingerprintSHA256(pub), nil
}

// Save writes the private key to dir/name (0600) and the public key to
// dir/name.pub (0644). It returns the private key path.
func (k *KeyPair) Save(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create key directory: %w", err)
	}
	privPath := filepath.Join(dir, name)
	if err := os.WriteFile(privPath, k.PrivateKey, 0o600); err != nil {
		return "", fmt.Errorf("failed to write private key: %w", err)
	}
	if err := os.WriteFile(privPath+".pub", k.PublicKey, 0o644); err != nil { //nolint:gosec // public key
		return "", fmt.Errorf("failed to write public key: %w", err)
	}
	return privPath, nil
}
