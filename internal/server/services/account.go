package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/afyalink/afyalink/internal/common"
	"github.com/afyalink/afyalink/internal/dbx"
	"github.com/afyalink/afyalink/internal/server/config"
	"github.com/afyalink/afyalink/internal/server/identity"
	"github.com/afyalink/afyalink/internal/server/models"
	"github.com/afyalink/afyalink/internal/server/repositories/repomanager"
	"github.com/afyalink/afyalink/internal/server/roles"
	"github.com/afyalink/afyalink/internal/server/session"
)

// AccountService handles login, signup, and logout. Login is the only place
// a session is born; logout is the only place one dies.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	provider    identity.Provider
	resolver    *roles.Resolver
	sessions    *session.Store
	config      *config.Config
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, provider identity.Provider,
	resolver *roles.Resolver, sessions *session.Store, cfg *config.Config) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		provider:    provider,
		resolver:    resolver,
		sessions:    sessions,
		config:      cfg,
	}
}

// Login authenticates against the identity provider, resolves the role, and
// creates the session. A missing provider credential is accepted (degraded
// session); an unresolved role is not, since that failure must never fall
// through to an admin view.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *models.Session, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	res, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrAuthentication) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("%w: %v", common.ErrAuthentication, err)
	}
	if res == nil || res.User == nil {
		return "", nil, common.ErrAuthentication
	}

	role, err := s.resolver.Resolve(ctx, res.User.ID)
	if err != nil {
		return "", nil, err
	}

	fullName := res.User.FullName
	if fullName == "" {
		fullName = s.GetUserName(ctx, res.User.ID)
	}

	token, sess, err := s.sessions.Create(res.User.ID, role, fullName, res.AccessToken)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	return token, sess, nil
}

// SignUp registers an identity with the provider and enrolls it in the
// matching membership table. No session is created; the user logs in after.
func (s *AccountService) SignUp(ctx context.Context, email, password, roleName, fullName string) (*identity.User, error) {
	if email == "" || password == "" || fullName == "" {
		return nil, fmt.Errorf("%w: email, password and full name are required", common.ErrValidation)
	}
	role, err := models.ParseRole(roleName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	user, err := s.provider.SignUp(ctx, email, password, fullName)
	if err != nil {
		return nil, err
	}

	opCtx, cancel := storeCtx(ctx, s.config)
	defer cancel()

	err = dbx.WithTx(opCtx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		switch role {
		case models.RolePatient:
			_, err := s.repomanager.Patients(tx).Create(ctx, &models.Patient{UserID: user.ID, Name: fullName})
			return err
		case models.RoleDoctor:
			_, err := s.repomanager.Doctors(tx).Create(ctx, &models.Doctor{UserID: user.ID, FullName: fullName, Email: email})
			return err
		}
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}

	if user.FullName == "" {
		user.FullName = fullName
	}
	return user, nil
}

// Logout destroys the session for token. Destroying an unknown token is a
// no-op, matching a logout racing a timed-out session.
func (s *AccountService) Logout(token string) {
	s.sessions.Destroy(token)
}

// GetUserName returns the display name for userID, falling back to "User"
// when the account is missing or the lookup fails. The dashboard header
// renders either way.
func (s *AccountService) GetUserName(ctx context.Context, userID string) string {
	repo := s.repomanager.Accounts(s.db)

	var name string
	err := readWithRetry(ctx, s.config, func(ctx context.Context) error {
		account, err := repo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		name = account.FullName
		return nil
	})
	if err != nil || name == "" {
		return "User"
	}
	return name
}
