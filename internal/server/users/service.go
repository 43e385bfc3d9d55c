package users

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/storeconsole/internal/api"
	"github.com/dmitrijs2005/storeconsole/internal/common"
	"github.com/dmitrijs2005/storeconsole/internal/server/auth"
	"github.com/dmitrijs2005/storeconsole/internal/server/config"
	"golang.org/x/crypto/bcrypt"
)

// Session is what a successful login returns to the transport layer.
type Session struct {
	User      User
	Token     string
	ExpiresAt time.Time
}

// LoginResponse renders the session in wire form.
func (s *Session) LoginResponse() api.LoginResponse {
	exp := s.ExpiresAt
	return api.LoginResponse{
		User: api.User{
			ID:       s.User.ID,
			Name:     s.User.Name,
			Username: s.User.Username,
			Role:     s.User.Role,
		},
		Token:  s.Token,
		Expiry: &exp,
	}
}

type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	now                         func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		now:                         time.Now,
	}
}

// checkPassword compares in bcrypt time even for unknown users so response
// timing does not reveal which usernames exist.
func (s *Service) checkPassword(user *User, password []byte) bool {
	if user == nil {
		s.dummyOnce.Do(func() {
			pw, err := common.MakeRandHexString(16)
			if err != nil {
				pw = "no-such-user"
			}
			s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		})
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, password)
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), password) == nil
}

// Login verifies the credentials and issues an access token. Unknown users
// and wrong passwords both yield common.ErrorUnauthorized.
func (s *Service) Login(ctx context.Context, userName string, password []byte) (*Session, error) {
	user, err := s.repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInternal
		}
		user = nil
	}

	if !s.checkPassword(user, password) {
		return nil, common.ErrorUnauthorized
	}

	token, expiresAt, err := auth.GenerateToken(auth.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, s.jwtSecret, s.accessTokenValidityDuration, s.now())
	if err != nil {
		return nil, common.ErrorInternal
	}

	u := *user
	u.PasswordHash = ""
	return &Session{User: u, Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a bearer token to its claims.
func (s *Service) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}
	return auth.ParseToken(token, s.jwtSecret)
}
