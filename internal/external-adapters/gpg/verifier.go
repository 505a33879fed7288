package gpg

import (
	"errors"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Verifier checks detached signatures against a keyring of public keys
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier creates a verifier with an empty keyring
func NewVerifier() *Verifier {
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
	}
}

// ImportKeyFromFile imports public (or private) keys from an armored or binary key file
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath is user-provided for GPG key import
	f, err := os.Open(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	entities, err := openpgp.ReadArmoredKeyRing(f)
	if err != nil {
		// Try reading as binary
		if _, seekErr := f.Seek(0, 0); seekErr != nil {
			return fmt.Errorf("failed to reset file: %w", seekErr)
		}
		entities, err = openpgp.ReadKeyRing(f)
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(entities) == 0 {
		return fmt.Errorf("no keys found in file")
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// KeyCount returns the number of imported keys
func (v *Verifier) KeyCount() int {
	return len(v.keyring)
}

// VerifyFile checks an armored detached signature against the imported keys
func (v *Verifier) VerifyFile(path, sigPath string) error {
	if len(v.keyring) == 0 {
		return errors.New("no keys imported")
	}
	return verifyDetached(v.keyring, path, sigPath)
}

// VerifySignature checks path against its armored signature at path.asc
func (v *Verifier) VerifySignature(path string) error {
	return v.VerifyFile(path, path+SignatureSuffix)
}

func verifyDetached(keyring openpgp.EntityList, path, sigPath string) error {
	//nolint:gosec // G304: path is a staged manifest
	data, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer data.Close()

	//nolint:gosec // G304: signature path is derived from the manifest path
	sig, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("failed to open signature: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer sig.Close()

	if _, err := openpgp.CheckArmoredDetachedSignature(keyring, data, sig, nil); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}
