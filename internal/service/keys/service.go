// Package keys implements the public-key registry used by the chat
// pipeline to resolve recipients (spec §4.7/§6).
package keys

import (
	"vaultchat-backend/internal/storage"
	"vaultchat-backend/internal/vault"
	apperr "vaultchat-backend/pkg/errors"
)

// Service implements public-key registration and lookup.
type Service struct {
	keys  *storage.KeysRepo
	vault *vault.Vault
}

// New returns a keys Service.
func New(keys *storage.KeysRepo, v *vault.Vault) *Service {
	return &Service{keys: keys, vault: v}
}

// Register upserts userID's public key PEM.
func (s *Service) Register(userID, publicKeyPEM string) error {
	if userID == "" || publicKeyPEM == "" {
		return apperr.BadRequest("user_id and public_key are both required")
	}
	if err := s.keys.Upsert(userID, publicKeyPEM); err != nil {
		return apperr.InternalFrom(err)
	}
	return nil
}

// Get returns userID's registered public key PEM.
func (s *Service) Get(userID string) (string, error) {
	pem, ok, err := s.keys.Get(userID)
	if err != nil {
		return "", apperr.InternalFrom(err)
	}
	if !ok {
		return "", apperr.NotFound("user has no registered public key")
	}
	return pem, nil
}

// ServerPublicKeyPEM returns the server's own RSA public key PEM.
func (s *Service) ServerPublicKeyPEM() (string, error) {
	pem, err := s.vault.SigningPublicKeyPEM()
	if err != nil {
		return "", apperr.InternalFrom(err)
	}
	return pem, nil
}
