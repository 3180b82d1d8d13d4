package auth

import (
	"context"
	"fmt"
	"time"

	pkgauth "github.com/keepstockhq/keepstock-backend/pkg/auth"
	"github.com/keepstockhq/keepstock-backend/pkg/config"
	pkgerrors "github.com/keepstockhq/keepstock-backend/pkg/errors"
	"github.com/keepstockhq/keepstock-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Credential is a store account with its password hash. Plaintext
// passwords exist only in the seed file and are hashed at load time.
type Credential struct {
	Username     string
	PasswordHash string
	Store        string
}

// CredentialRepository looks up store accounts. A missing username
// returns (nil, nil); the service folds that into the uniform
// invalid-credentials error.
type CredentialRepository interface {
	FindByUsername(ctx context.Context, username string) (*Credential, error)
}

// SessionStore persists the active identity snapshot so a restarted
// client can restore its session. The password never reaches it.
type SessionStore interface {
	Save(identity pkgauth.Identity) error
	Load() (*pkgauth.Identity, error)
	Clear() error
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the minted token and the identity it encodes.
type LoginResponse struct {
	Token string           `json:"token"`
	User  pkgauth.Identity `json:"user"`
}

// Service authenticates store accounts and owns the session snapshot.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context) error
	ActiveSession(ctx context.Context) (*pkgauth.Identity, error)
}

type service struct {
	creds    CredentialRepository
	sessions SessionStore
	jwtCfg   config.JWTConfig
	now      func() time.Time
}

// NewService builds the auth service.
func NewService(creds CredentialRepository, sessions SessionStore, jwtCfg config.JWTConfig) (Service, error) {
	if creds == nil {
		return nil, fmt.Errorf("credential repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	return &service{
		creds:    creds,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		now:      time.Now,
	}, nil
}

// Login verifies the username/password pair against the credential
// list. Unknown user and wrong password are indistinguishable to the
// caller.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	cred, err := s.creds.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load credential")
	}
	if cred == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	ok, err := security.VerifyPassword(req.Password, cred.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	identity := pkgauth.Identity{Username: cred.Username, Store: cred.Store}
	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), identity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	if err := s.sessions.Save(identity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist session")
	}

	return &LoginResponse{Token: token, User: identity}, nil
}

// Logout clears the persisted session snapshot. Logging out with no
// active session is a no-op.
func (s *service) Logout(_ context.Context) error {
	if err := s.sessions.Clear(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear session")
	}
	return nil
}

// ActiveSession returns the persisted identity if one restores cleanly.
func (s *service) ActiveSession(_ context.Context) (*pkgauth.Identity, error) {
	identity, err := s.sessions.Load()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session")
	}
	if identity == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active session")
	}
	return identity, nil
}
