// Package services contains server-side business logic. SessionService issues
// and rotates wallet sessions; LedgerService executes vault transactions.
package services

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/address"
	"github.com/dmitrijs2005/lamportvault/internal/common"
	"github.com/dmitrijs2005/lamportvault/internal/dbx"
	"github.com/dmitrijs2005/lamportvault/internal/server/auth"
	"github.com/dmitrijs2005/lamportvault/internal/server/config"
	"github.com/dmitrijs2005/lamportvault/internal/server/models"
	"github.com/dmitrijs2005/lamportvault/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SessionService authenticates wallets by a signed login challenge and keeps
// their refresh tokens.
type SessionService struct {
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	loginWindow                  time.Duration
	now                          func() time.Time
}

func NewSessionService(m repomanager.RepositoryManager, cfg *config.Config) *SessionService {
	return &SessionService{
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		loginWindow:                  cfg.LoginWindow,
		now:                          time.Now,
	}
}

// Login checks that signature is the owner's ed25519 signature over the login
// challenge for timestamp (unix seconds) and, on success, returns a TokenPair
// whose subject is the owner address.
func (s *SessionService) Login(ctx context.Context, owner string, timestamp int64, signature []byte) (*TokenPair, error) {
	addr, err := address.Parse(owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidLoginProof, err)
	}

	ts := time.Unix(timestamp, 0)
	if d := s.now().Sub(ts); d > s.loginWindow || d < -s.loginWindow {
		return nil, common.ErrLoginExpired
	}
	if len(signature) != ed25519.SignatureSize || !ed25519.Verify(addr.PublicKey(), common.LoginChallenge(ts), signature) {
		return nil, common.ErrInvalidLoginProof
	}

	owner = addr.String()
	var pair *TokenPair
	if err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		// each login leaves one more token behind; drop the dead ones first
		if _, err := s.repomanager.RefreshTokens(tx).DeleteExpired(ctx, owner, s.now()); err != nil {
			return fmt.Errorf("error purging refresh tokens: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, owner, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *SessionService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.repomanager.DB())

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(s.now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.Owner, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *SessionService) generateTokenPair(ctx context.Context, owner string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(owner, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	rt := &models.RefreshToken{Owner: owner, Token: refresh, Expires: s.now().Add(s.refreshTokenValidityDuration)}
	if err := s.repomanager.RefreshTokens(tx).Create(ctx, rt); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
