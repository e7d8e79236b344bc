// Package keygen generates the SSH key pair placed in the AKS Linux profile.
//
// AKS only accepts RSA public keys for node access, so keys are RSA in PEM
// (private) and OpenSSH authorized_keys (public) format.
package keygen
