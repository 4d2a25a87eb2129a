// Package services contains server-side business logic. AccountService
// handles registration and login; RecordService manages the encrypted
// credential records; ExportService snapshots a vault to object storage.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
	"github.com/dmitrijs2005/passkeeper/internal/policy"
	"github.com/dmitrijs2005/passkeeper/internal/server/auth"
	"github.com/dmitrijs2005/passkeeper/internal/server/models"
	"github.com/dmitrijs2005/passkeeper/internal/server/repositories/repomanager"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Session is returned by Register and Login.
type Session struct {
	Token     string
	AccountID string
	Email     string
}

// AccountService provides authentication-related operations:
//   - Register: validate, hash and store a new account, then mint a token
//   - Login: verify credentials and mint a token
//   - Authenticate: verify a bearer token
type AccountService struct {
	repomanager repomanager.RepositoryManager
	hasher      *auth.Hasher
	tokens      *auth.TokenService
	logger      logging.Logger
}

func NewAccountService(m repomanager.RepositoryManager, hasher *auth.Hasher, tokens *auth.TokenService, logger logging.Logger) *AccountService {
	return &AccountService{
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger.With("module", "accounts"),
	}
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. The password must satisfy the strength
// policy; the email must be well-formed and unused.
func (s *AccountService) Register(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", common.ErrValidation)
	}
	if res := policy.Validate(password); !res.Valid {
		return nil, fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(res.Violations, "; "))
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if auth.IsTooLong(err) {
			return nil, fmt.Errorf("%w: password is too long", common.ErrValidation)
		}
		return nil, err
	}

	var account *models.Account
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		_, err := repos.Accounts().GetByEmail(ctx, email)
		if err == nil {
			return common.ErrDuplicateAccount
		}
		if !errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("lookup account: %w", err)
		}

		account, err = repos.Accounts().Create(ctx, &models.Account{Email: email, PasswordHash: hash})
		if err != nil {
			if errors.Is(err, common.ErrDuplicateAccount) {
				return err
			}
			return fmt.Errorf("create account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "account registered", "account_id", account.ID)

	return s.newSession(account)
}

// Login checks credentials. Unknown email and wrong password both yield
// common.ErrInvalidCredentials after the same amount of hashing work.
func (s *AccountService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	account, err := s.repomanager.Accounts().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.VerifyMissing(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		s.logger.Warn(ctx, "failed login", "account_id", account.ID)
		return nil, common.ErrInvalidCredentials
	}

	return s.newSession(account)
}

// Authenticate verifies a session token and returns its identity.
func (s *AccountService) Authenticate(token string) (*auth.Identity, error) {
	if token == "" {
		return nil, common.ErrUnauthorized
	}
	return s.tokens.Verify(token)
}

func (s *AccountService) newSession(account *models.Account) (*Session, error) {
	token, err := s.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, AccountID: account.ID, Email: account.Email}, nil
}
