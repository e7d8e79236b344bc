package keygen

import (
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

func TestGenerateRSAKeyPair(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateRSAKeyPair(2048)
	require.NoError(t, err)

	block, _ := pem.Decode(keyPair.PrivateKey)
	require.NotNil(t, block)
	assert.Equal(t, "RSA PRIVATE KEY", block.Type)

	priv, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	require.NoError(t, err)
	assert.Equal(t, 2048, priv.N.BitLen())

	pub, _, _, _, err := ssh.ParseAuthorizedKey(keyPair.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, "ssh-rsa", pub.Type())
}

func TestGenerateRSAKeyPair_InvalidBits(t *testing.T) {
	t.Parallel()
	for _, bits := range []int{0, -1} {
		_, err := GenerateRSAKeyPair(bits)
		assert.Error(t, err, "bits=%d", bits)
	}
}

func TestKeyPair_AuthorizedKey(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateRSAKeyPair(2048)
	require.NoError(t, err)

	key := keyPair.AuthorizedKey()
	assert.True(t, strings.HasPrefix(key, "ssh-rsa "))
	assert.False(t, strings.HasSuffix(key, "\n"))
}

func TestKeyPair_Fingerprint(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateRSAKeyPair(2048)
	require.NoError(t, err)

	fp, err := keyPair.Fingerprint()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(fp, "SHA256:"))
}

func TestKeyPair_Save(t *testing.T) {
	t.Parallel()
	keyPair, err := GenerateRSAKeyPair(2048)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "keys")
	path, err := keyPair.Save(dir, "id_rsa")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	pub, err := os.ReadFile(path + ".pub")
	require.NoError(t, err)
	assert.Equal(t, keyPair.PublicKey, pub)
}
