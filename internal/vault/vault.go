// Package vault bootstraps and caches the two long-lived cryptographic
// trust anchors of the system: the KEK that wraps every submission's DEK,
// and the RSA signing key used for proof-of-existence signatures. Both are
// generated exactly once and reloaded on every subsequent start (spec
// invariant I5).
package vault

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
)

const (
	kekFileName        = "kek.json"
	signingKeyFileName = "signing_key.pem"

	kekSizeBytes  = 32
	rsaKeyBits    = 2048
	filePerm      = 0o600
	dirPerm       = 0o700
)

// Vault holds the process-wide cryptographic trust anchors, loaded once and
// shared read-only across every request worker.
type Vault struct {
	dir        string
	kek        [kekSizeBytes]byte
	signingKey *rsa.PrivateKey
}

type kekFile struct {
	KEK string `json:"kek"`
}

// Bootstrap loads the vault at dir, generating and persisting the KEK and
// signing key on first run. Entropy or I/O failure here is fatal to the
// process — there is no safe way to run without a trust anchor.
func Bootstrap(dir string) (*Vault, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("vault: create directory: %w", err)
	}

	kek, err := loadOrCreateKEK(dir)
	if err != nil {
		return nil, err
	}

	signingKey, err := loadOrCreateSigningKey(dir)
	if err != nil {
		return nil, err
	}

	return &Vault{dir: dir, kek: kek, signingKey: signingKey}, nil
}

func loadOrCreateKEK(dir string) ([kekSizeBytes]byte, error) {
	var out [kekSizeBytes]byte
	path := filepath.Join(dir, kekFileName)

	if data, err := os.ReadFile(path); err == nil {
		var f kekFile
		if err := json.Unmarshal(data, &f); err != nil {
			return out, fmt.Errorf("vault: decode kek.json: %w", err)
		}
		raw, err := hex.DecodeString(f.KEK)
		if err != nil || len(raw) != kekSizeBytes {
			return out, fmt.Errorf("vault: kek.json is corrupt")
		}
		copy(out[:], raw)
		return out, nil
	} else if !os.IsNotExist(err) {
		return out, fmt.Errorf("vault: read kek.json: %w", err)
	}

	if _, err := rand.Read(out[:]); err != nil {
		return out, fmt.Errorf("vault: generate KEK: %w", err)
	}

	data, err := json.MarshalIndent(kekFile{KEK: hex.EncodeToString(out[:])}, "", "  ")
	if err != nil {
		return out, fmt.Errorf("vault: encode kek.json: %w", err)
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return out, fmt.Errorf("vault: write kek.json: %w", err)
	}
	return out, nil
}

func loadOrCreateSigningKey(dir string) (*rsa.PrivateKey, error) {
	path := filepath.Join(dir, signingKeyFileName)

	if data, err := os.ReadFile(path); err == nil {
		block, _ := pem.Decode(data)
		if block == nil {
			return nil, fmt.Errorf("vault: signing_key.pem is not valid PEM")
		}
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("vault: parse signing key: %w", err)
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("vault: signing key is not RSA")
		}
		return rsaKey, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("vault: read signing_key.pem: %w", err)
	}

	key, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("vault: generate RSA signing key: %w", err)
	}

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("vault: marshal signing key: %w", err)
	}
	block := &pem.Block{Type: "PRIVATE KEY", Bytes: der}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), filePerm); err != nil {
		return nil, fmt.Errorf("vault: write signing_key.pem: %w", err)
	}
	return key, nil
}

// KEK returns the 256-bit key-encryption key.
func (v *Vault) KEK() [kekSizeBytes]byte {
	return v.kek
}

// SigningKey returns the server's RSA private key.
func (v *Vault) SigningKey() *rsa.PrivateKey {
	return v.signingKey
}

// SigningPublicKey returns the server's RSA public key.
func (v *Vault) SigningPublicKey() *rsa.PublicKey {
	return &v.signingKey.PublicKey
}

// SigningPublicKeyPEM renders the server's RSA public key as a
// SubjectPublicKeyInfo PEM block, for external verifiers.
func (v *Vault) SigningPublicKeyPEM() (string, error) {
	der, err := x509.MarshalPKIXPublicKey(v.SigningPublicKey())
	if err != nil {
		return "", fmt.Errorf("vault: marshal public key: %w", err)
	}
	block := &pem.Block{Type: "PUBLIC KEY", Bytes: der}
	return string(pem.EncodeToMemory(block)), nil
}
