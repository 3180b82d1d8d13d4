package auth

import (
	"context"
	"fmt"

	"github.com/keepstockhq/keepstock-backend/internal/seed"
	"github.com/keepstockhq/keepstock-backend/pkg/config"
	"github.com/keepstockhq/keepstock-backend/pkg/security"
)

// SeedCredentials serves the embedded credential list, hashing the
// plaintext seed passwords once at construction.
type SeedCredentials struct {
	byUsername map[string]Credential
}

var _ CredentialRepository = (*SeedCredentials)(nil)

// NewSeedCredentials hashes each seed password with the configured
// Argon2id parameters.
func NewSeedCredentials(users []seed.User, cfg config.PasswordConfig) (*SeedCredentials, error) {
	byUsername := make(map[string]Credential, len(users))
	for _, user := range users {
		if user.Username == "" {
			return nil, fmt.Errorf("seed user with empty username")
		}
		hash, err := security.HashPassword(user.Password, cfg)
		if err != nil {
			return nil, fmt.Errorf("hashing password for %s: %w", user.Username, err)
		}
		byUsername[user.Username] = Credential{
			Username:     user.Username,
			PasswordHash: hash,
			Store:        user.Store,
		}
	}
	return &SeedCredentials{byUsername: byUsername}, nil
}

func (s *SeedCredentials) FindByUsername(_ context.Context, username string) (*Credential, error) {
	cred, ok := s.byUsername[username]
	if !ok {
		return nil, nil
	}
	return &cred, nil
}
