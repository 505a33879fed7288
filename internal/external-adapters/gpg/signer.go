// Package gpg provides OpenPGP signing of release manifests.
package gpg

import (
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// SignatureSuffix is appended to a file name to form its signature path
const SignatureSuffix = ".asc"

// Signer writes armored detached signatures using ProtonMail's go-crypto
// This is in external-adapters to isolate the external dependency
type Signer struct {
	entity *openpgp.Entity
}

// NewSignerFromFile reads an armored private key from keyPath
func NewSignerFromFile(keyPath string, passphrase []byte) (*Signer, error) {
	//nolint:gosec // G304: key path is provided by the operator
	f, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	return NewSigner(f, passphrase)
}

// NewSigner reads an armored key ring and signs with its first private key,
// decrypting it with passphrase when it is protected
func NewSigner(r io.Reader, passphrase []byte) (*Signer, error) {
	keyring, err := openpgp.ReadArmoredKeyRing(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}

	var entity *openpgp.Entity
	for _, e := range keyring {
		if e.PrivateKey != nil {
			entity = e
			break
		}
	}
	if entity == nil {
		return nil, fmt.Errorf("key ring contains no private key")
	}

	if err := decrypt(entity, passphrase); err != nil {
		return nil, err
	}

	return &Signer{entity: entity}, nil
}

func decrypt(entity *openpgp.Entity, passphrase []byte) error {
	if entity.PrivateKey.Encrypted {
		if len(passphrase) == 0 {
			return fmt.Errorf("private key is encrypted and no passphrase was given")
		}
		if err := entity.PrivateKey.Decrypt(passphrase); err != nil {
			return fmt.Errorf("failed to decrypt private key: %w", err)
		}
	}
	for _, sub := range entity.Subkeys {
		if sub.PrivateKey != nil && sub.PrivateKey.Encrypted {
			if err := sub.PrivateKey.Decrypt(passphrase); err != nil {
				return fmt.Errorf("failed to decrypt subkey: %w", err)
			}
		}
	}
	return nil
}

// Fingerprint returns the signing key's fingerprint in upper-case hex
func (s *Signer) Fingerprint() string {
	return fmt.Sprintf("%X", s.entity.PrimaryKey.Fingerprint)
}

// SignFile writes path.asc containing an armored detached signature of path.
// A partial signature file is removed when signing fails.
func (s *Signer) SignFile(path string) (string, error) {
	//nolint:gosec // G304: path is a manifest this tool wrote
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer in.Close()

	sigPath := path + SignatureSuffix
	//nolint:gosec // G304: signature path is derived from the manifest path
	out, err := os.Create(sigPath)
	if err != nil {
		return "", fmt.Errorf("failed to create signature file: %w", err)
	}

	if err := openpgp.ArmoredDetachSign(out, s.entity, in, nil); err != nil {
		_ = out.Close()
		_ = os.Remove(sigPath)
		return "", fmt.Errorf("failed to sign %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(sigPath)
		return "", fmt.Errorf("failed to write signature file: %w", err)
	}

	return sigPath, nil
}
