package services

import (
	"fmt"
	"time"

	intconfig "github.com/stevenadel/iti-events-server/internal/config"
	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/domain/models"
	"github.com/stevenadel/iti-events-server/internal/repositories"
	"github.com/stevenadel/iti-events-server/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenClaims is the payload carried by both access and refresh tokens.
// TokenType keeps the two kinds apart even when the signing secrets are
// configured identically.
type TokenClaims struct {
	UserID    int64       `json:"id"`
	Role      models.Role `json:"role"`
	TokenType string      `json:"typ"`
	jwt.RegisteredClaims
}

// AuthService issues and validates bearer tokens and drives the
// register/login/refresh/verify flow. Secrets and TTLs come from the
// injected Env, never from ad-hoc environment reads.
type AuthService struct {
	Users     repositories.UserRepository
	Tokens    repositories.UserTokenRepository
	Env       intconfig.Env
	RequestID string

	// SendVerification is injected so tests can observe or fail the
	// email step without a real mailer.
	SendVerification func(to, link string) error
}

type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register creates the user, stores a verification token and sends the
// verification link. When the email cannot be sent the created user and
// token are rolled back and the registration fails.
func (s AuthService) Register(firstName, lastName string, birthdate time.Time, email, password string) (models.User, AuthTokens, error) {
	user, err := models.NewUser(firstName, lastName, birthdate, email, password)
	if err != nil {
		return models.User{}, AuthTokens{}, err
	}

	user, err = s.Users.Create(user)
	if err != nil {
		return models.User{}, AuthTokens{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%d", user.ID))

	if s.SendVerification != nil {
		token := uuid.NewString()
		if _, err := s.Tokens.Create(user.ID, token); err != nil {
			_ = s.Users.Delete(user.ID)
			return models.User{}, AuthTokens{}, err
		}

		link := fmt.Sprintf("%s/api/v1/auth/verify?token=%s&id=%d", s.Env.BaseURL, token, user.ID)
		if err := s.SendVerification(user.Email, link); err != nil {
			utils.LogEvent(s.RequestID, "auth", "verify_email_failed", err.Error())
			_ = s.Tokens.Delete(user.ID, token)
			_ = s.Users.Delete(user.ID)
			return models.User{}, AuthTokens{}, domain.InternalError{Msg: "Failed to send email verification.", Err: err}
		}
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return models.User{}, AuthTokens{}, err
	}
	return user, tokens, nil
}

// Login exchanges credentials for an access/refresh token pair. Unknown
// email and wrong password are indistinguishable to the caller.
func (s AuthService) Login(email, password string) (AuthTokens, error) {
	user, err := s.Users.GetByEmail(email)
	if err != nil {
		if domain.IsNotFound(err) {
			return AuthTokens{}, domain.UnauthorizedError{Msg: "Invalid email or password."}
		}
		return AuthTokens{}, err
	}
	if !user.VerifyPassword(password) {
		return AuthTokens{}, domain.UnauthorizedError{Msg: "Invalid email or password."}
	}

	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d", user.ID))
	return s.issueTokens(user)
}

// Refresh validates a refresh token and issues a new access token.
// Tampered or expired tokens are Forbidden; a token whose user no longer
// resolves to an active account is NotFound.
func (s AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := parseToken(refreshToken, tokenTypeRefresh, s.Env.JWTRefreshSecret)
	if err != nil {
		return "", domain.ForbiddenError{Msg: "Invalid or expired refresh token."}
	}

	user, err := s.Users.GetByID(claims.UserID)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.NotFoundError{Resource: "User"}
		}
		return "", err
	}
	if !user.IsActive {
		return "", domain.NotFoundError{Resource: "User"}
	}

	return s.IssueAccessToken(user)
}

// VerifyEmail consumes a verification token and marks the user verified.
func (s AuthService) VerifyEmail(userID int64, token string) error {
	if _, err := s.Tokens.Get(userID, token); err != nil {
		return err
	}
	if err := s.Users.SetEmailVerified(userID); err != nil {
		return err
	}
	if err := s.Tokens.Delete(userID, token); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "auth", "email_verified", fmt.Sprintf("user_id=%d", userID))
	return nil
}

func (s AuthService) IssueAccessToken(u models.User) (string, error) {
	return s.signToken(u, tokenTypeAccess, s.Env.JWTAccessSecret, s.Env.AccessTokenTTL)
}

func (s AuthService) IssueRefreshToken(u models.User) (string, error) {
	return s.signToken(u, tokenTypeRefresh, s.Env.JWTRefreshSecret, s.Env.RefreshTokenTTL)
}

// ParseAccessToken validates an access token's signature, kind and expiry.
func (s AuthService) ParseAccessToken(token string) (TokenClaims, error) {
	claims, err := parseToken(token, tokenTypeAccess, s.Env.JWTAccessSecret)
	if err != nil {
		return TokenClaims{}, domain.ForbiddenError{Msg: "Invalid or expired access token."}
	}
	return claims, nil
}

func (s AuthService) issueTokens(u models.User) (AuthTokens, error) {
	access, err := s.IssueAccessToken(u)
	if err != nil {
		return AuthTokens{}, err
	}
	refresh, err := s.IssueRefreshToken(u)
	if err != nil {
		return AuthTokens{}, err
	}
	return AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s AuthService) signToken(u models.User, typ, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:    u.ID,
		Role:      u.Role,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", domain.InternalError{Msg: "failed to sign token", Err: err}
	}
	return signed, nil
}

func parseToken(token, wantTyp, secret string) (TokenClaims, error) {
	var claims TokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return TokenClaims{}, err
	}
	if !parsed.Valid || claims.TokenType != wantTyp {
		return TokenClaims{}, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
