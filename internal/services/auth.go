package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vietlingo/vietlingo-backend/internal/apierr"
	"github.com/vietlingo/vietlingo-backend/internal/logger"
	"github.com/vietlingo/vietlingo-backend/internal/normalization"
	"github.com/vietlingo/vietlingo-backend/internal/repos"
	"github.com/vietlingo/vietlingo-backend/internal/types"
)

type LoginResult struct {
	User      *types.User `json:"user"`
	Token     string      `json:"token"`
	IsNewUser bool        `json:"is_new_user"`
}

// AuthService issues access tokens for username-only login. There are no
// passwords; a login for an unknown username creates the account.
type AuthService interface {
	Login(ctx context.Context, username string) (*LoginResult, error)
	GetUserFromToken(ctx context.Context, tokenString string) (*types.User, error)
}

type authService struct {
	db            *gorm.DB
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	secret        []byte
	tokenTTL      time.Duration
	log           *logger.Logger
}

func NewAuthService(
	db *gorm.DB,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	secret string,
	tokenTTL time.Duration,
	baseLog *logger.Logger,
) AuthService {
	serviceLog := baseLog.With("service", "AuthService")
	return &authService{
		db:            db,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		secret:        []byte(secret),
		tokenTTL:      tokenTTL,
		log:           serviceLog,
	}
}

type accessClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (as *authService) Login(ctx context.Context, username string) (*LoginResult, error) {
	username = normalization.TrimInputString(username)
	if username == "" {
		return nil, apierr.InvalidInput("username is required")
	}

	var result *LoginResult
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, created, err := as.userRepo.GetOrCreateByUsername(ctx, tx, username)
		if err != nil {
			return err
		}

		expiresAt := time.Now().Add(as.tokenTTL)
		tokenString, err := as.signToken(user, expiresAt)
		if err != nil {
			return err
		}

		tokenRow := &types.UserToken{
			ID:        uuid.New(),
			UserID:    user.ID,
			Token:     tokenString,
			ExpiresAt: expiresAt,
		}
		if err := as.userTokenRepo.Create(ctx, tx, tokenRow); err != nil {
			return err
		}

		result = &LoginResult{User: user, Token: tokenString, IsNewUser: created}
		return nil
	})
	if err != nil {
		return nil, err
	}

	as.log.Info("user logged in", "user_id", result.User.ID, "is_new_user", result.IsNewUser)
	return result, nil
}

func (as *authService) GetUserFromToken(ctx context.Context, tokenString string) (*types.User, error) {
	if tokenString == "" {
		return nil, apierr.Unauthorized("missing token")
	}

	claims := &accessClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apierr.Unauthorized("unexpected signing method %v", t.Header["alg"])
		}
		return as.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apierr.Unauthorized("invalid token")
	}

	tokenRow, err := as.userTokenRepo.GetByToken(ctx, nil, tokenString)
	if err != nil {
		return nil, err
	}
	if tokenRow == nil || time.Now().After(tokenRow.ExpiresAt) {
		return nil, apierr.Unauthorized("token expired or revoked")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apierr.Unauthorized("invalid token subject")
	}
	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.Unauthorized("user no longer exists")
	}
	return user, nil
}

func (as *authService) signToken(user *types.User, expiresAt time.Time) (string, error) {
	claims := accessClaims{
		UserID:   user.ID.String(),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(as.secret)
}
