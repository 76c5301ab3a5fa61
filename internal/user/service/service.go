package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/splitroom/backend/internal/common/constants"
	commoncrypto "github.com/splitroom/backend/internal/common/crypto"
	commonerrors "github.com/splitroom/backend/internal/common/errors"
	"github.com/splitroom/backend/internal/common/logger"
	"github.com/splitroom/backend/internal/user/domain"
	userrepo "github.com/splitroom/backend/internal/user/repository"
)

type LoginResult struct {
	User  domain.User
	Token string
}

type UserService struct {
	repo        userrepo.Repository
	idGenerator commoncrypto.IDGenerator
	tokens      *TokenIssuer
	log         *logger.Logger
}

func NewUserService(
	repo userrepo.Repository,
	idGenerator commoncrypto.IDGenerator,
	tokens *TokenIssuer,
	log *logger.Logger,
) *UserService {
	return &UserService{
		repo:        repo,
		idGenerator: idGenerator,
		tokens:      tokens,
		log:         log,
	}
}

// Login resolves the opaque client identifier to a durable user record and
// issues a bearer token. Calling it again with the same open_id yields the
// same user.
func (s *UserService) Login(ctx context.Context, openID, username string) (LoginResult, error) {
	openID = strings.TrimSpace(openID)
	if openID == "" || len(openID) > constants.OpenIDMaxLength {
		return LoginResult{}, commonerrors.ErrEmptyOpenID
	}

	username = strings.TrimSpace(username)
	if len(username) < constants.UsernameMinLength || len(username) > constants.UsernameMaxLength {
		return LoginResult{}, commonerrors.ErrUsernameLength
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to generate user id: %w", err)
	}

	user, err := s.repo.ResolveOrCreate(ctx, domain.User{
		ID:       domain.ID(id),
		OpenID:   openID,
		Username: username,
	})
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "login_failed",
		}).Errorf("resolve or create user failed: %v", err)
		return LoginResult{}, err
	}

	token, err := s.tokens.IssueToken(user)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "user_logged_in",
	}).Info("user logged in")

	return LoginResult{User: user, Token: token}, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, domain.ID(id))
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}
