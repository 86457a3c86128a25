package identity

import (
	"context"
	"errors"
	"time"

	"github.com/afyalink/afyalink/internal/common"
	"github.com/afyalink/afyalink/internal/server/auth"
	"github.com/afyalink/afyalink/internal/server/models"
	"github.com/afyalink/afyalink/internal/server/repositories/accounts"
	"golang.org/x/crypto/bcrypt"
)

// LocalProvider authenticates against the accounts table with bcrypt hashes
// and mints its own HS256 credential. Used for development and tests, where
// no hosted auth endpoint is reachable.
type LocalProvider struct {
	accounts           accounts.Repository
	secretKey          []byte
	credentialValidity time.Duration
}

func NewLocalProvider(repo accounts.Repository, secretKey []byte, credentialValidity time.Duration) *LocalProvider {
	return &LocalProvider{
		accounts:           repo,
		secretKey:          secretKey,
		credentialValidity: credentialValidity,
	}
}

// SignInWithPassword verifies the password hash and mints a credential.
// Unknown email and wrong password are indistinguishable to the caller.
func (p *LocalProvider) SignInWithPassword(ctx context.Context, email, password string) (*SignInResult, error) {
	account, err := p.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrAuthentication
		}
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrAuthentication
	}

	token, err := auth.GenerateToken(account.ID, p.secretKey, p.credentialValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &SignInResult{
		User:        &User{ID: account.ID, Email: account.Email, FullName: account.FullName},
		AccessToken: token,
	}, nil
}

// SignUp creates an account with a bcrypt password hash. Like the hosted
// provider, it never creates a session. The full name lands on the account
// row, where SignInWithPassword reads it back.
func (p *LocalProvider) SignUp(ctx context.Context, email, password, fullName string) (*User, error) {
	if email == "" || password == "" {
		return nil, common.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	account, err := p.accounts.Create(ctx, &models.Account{Email: email, FullName: fullName, PasswordHash: string(hash)})
	if err != nil {
		return nil, err
	}

	return &User{ID: account.ID, Email: account.Email, FullName: account.FullName}, nil
}
