package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kingleoa1/Multi-Currency-Wallet/internal/account"
	"github.com/kingleoa1/Multi-Currency-Wallet/internal/config"
)

// ErrInvalidToken indicates the token failed verification or was revoked.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims carried by both access and refresh tokens. The
// token version lets logout invalidate everything issued before it.
type Claims struct {
	TokenVersion int `json:"ver"`
	jwt.RegisteredClaims
}

// Service issues and verifies tokens.
type Service struct {
	cfg  config.Config
	repo account.Repository
}

// NewService builds the token service.
func NewService(cfg config.Config, repo account.Repository) *Service {
	return &Service{cfg: cfg, repo: repo}
}

// TokenPair bundles a fresh access and refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Login issues a token pair for an already-authenticated account.
func (s *Service) Login(acc account.Account) (TokenPair, error) {
	access, err := s.sign(acc, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.sign(acc, s.cfg.RefreshSecret, s.cfg.RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.cfg.AccessTokenTTL.Seconds()),
	}, nil
}

func (s *Service) sign(acc account.Account, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenVersion: acc.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parse(tokenStr, secret string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// VerifyAccess validates an access token and checks it against the
// account's current token version.
func (s *Service) VerifyAccess(ctx context.Context, tokenStr string) (account.Account, error) {
	claims, err := parse(tokenStr, s.cfg.JWTSecret)
	if err != nil {
		return account.Account{}, err
	}
	acc, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil || acc.TokenVersion != claims.TokenVersion {
		return account.Account{}, ErrInvalidToken
	}
	return acc, nil
}

// Refresh verifies the refresh token and returns a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, int64, error) {
	claims, err := parse(refreshToken, s.cfg.RefreshSecret)
	if err != nil {
		return "", 0, ErrInvalidToken
	}
	acc, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		return "", 0, ErrInvalidToken
	}
	if acc.TokenVersion != claims.TokenVersion {
		return "", 0, ErrInvalidToken
	}

	access, err := s.sign(acc, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return "", 0, err
	}
	return access, int64(s.cfg.AccessTokenTTL.Seconds()), nil
}

// Logout bumps the token version so older tokens stop verifying.
func (s *Service) Logout(ctx context.Context, accountID string) error {
	acc, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return err
	}
	return s.repo.UpdateTokenVersion(ctx, acc.ID, acc.TokenVersion+1)
}
