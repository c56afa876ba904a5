package services

import (
	"errors"
	"testing"
	"time"

	intconfig "github.com/stevenadel/iti-events-server/internal/config"
	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/domain/models"
	"github.com/stevenadel/iti-events-server/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

func testEnv() intconfig.Env {
	return intconfig.Env{
		BaseURL:          "http://localhost:8080",
		JWTAccessSecret:  "access-secret",
		JWTRefreshSecret: "refresh-secret",
		AccessTokenTTL:   time.Minute,
		RefreshTokenTTL:  time.Hour,
	}
}

func userRow(id int64, email, passwordHash string, active bool) *sqlmock.Rows {
	now := time.Now()
	birth := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "birthdate", "email", "password_hash",
		"role", "is_active", "email_verified", "created_at", "updated_at",
	}).AddRow(id, "Jane", "Doe", birth, email, passwordHash, "guest", active, false, now, now)
}

func TestRegisterRollsBackWhenEmailFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int64(42)).
		WillReturnRows(userRow(42, "jane@example.com", "hash", true))
	mock.ExpectExec("INSERT INTO user_tokens").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("DELETE FROM user_tokens").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM users").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := AuthService{
		Users:  repositories.UserRepository{DB: db},
		Tokens: repositories.UserTokenRepository{DB: db},
		Env:    testEnv(),
		SendVerification: func(to, link string) error {
			return errors.New("smtp down")
		},
	}

	birth := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	_, _, err = svc.Register("Jane", "Doe", birth, "jane@example.com", "supersecret")
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("user and token must be rolled back: %v", err)
	}
}

func TestRegisterSendsVerificationLink(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int64(42)).
		WillReturnRows(userRow(42, "jane@example.com", "hash", true))
	mock.ExpectExec("INSERT INTO user_tokens").
		WillReturnResult(sqlmock.NewResult(5, 1))

	var sentTo, sentLink string
	svc := AuthService{
		Users:  repositories.UserRepository{DB: db},
		Tokens: repositories.UserTokenRepository{DB: db},
		Env:    testEnv(),
		SendVerification: func(to, link string) error {
			sentTo, sentLink = to, link
			return nil
		},
	}

	birth := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	user, tokens, err := svc.Register("Jane", "Doe", birth, "jane@example.com", "supersecret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sentTo != "jane@example.com" {
		t.Fatalf("verification mail went to %q", sentTo)
	}
	if sentLink == "" {
		t.Fatalf("verification link missing")
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("token pair missing")
	}
	if user.ID != 42 {
		t.Fatalf("unexpected user id %d", user.ID)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("jane@example.com").
		WillReturnRows(userRow(42, "jane@example.com", string(hash), true))

	svc := AuthService{Users: repositories.UserRepository{DB: db}, Env: testEnv()}
	_, err = svc.Login("jane@example.com", "wrongpassword")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmailIsIndistinguishable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "first_name", "last_name", "birthdate", "email", "password_hash",
			"role", "is_active", "email_verified", "created_at", "updated_at",
		}))

	svc := AuthService{Users: repositories.UserRepository{DB: db}, Env: testEnv()}
	_, err = svc.Login("nobody@example.com", "whatever")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := AuthService{Env: testEnv()}
	user := models.User{ID: 42, Role: models.RoleAdmin}

	token, err := svc.IssueAccessToken(user)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	claims, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.UserID != 42 || claims.Role != models.RoleAdmin {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	svc := AuthService{Env: testEnv()}
	user := models.User{ID: 42, Role: models.RoleGuest}

	refresh, err := svc.IssueRefreshToken(user)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := svc.ParseAccessToken(refresh); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden for cross-secret token, got %v", err)
	}
}

func TestTokenKindCheckedEvenWithSharedSecret(t *testing.T) {
	env := testEnv()
	env.JWTAccessSecret = "shared-secret"
	env.JWTRefreshSecret = "shared-secret"
	svc := AuthService{Env: env}
	user := models.User{ID: 42, Role: models.RoleGuest}

	refresh, err := svc.IssueRefreshToken(user)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := svc.ParseAccessToken(refresh); !domain.IsForbidden(err) {
		t.Fatalf("refresh token must not pass as access token, got %v", err)
	}

	access, err := svc.IssueAccessToken(user)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := svc.Refresh(access); !domain.IsForbidden(err) {
		t.Fatalf("access token must not pass as refresh token, got %v", err)
	}
}

func TestRefreshTamperedTokenIsForbidden(t *testing.T) {
	svc := AuthService{Env: testEnv()}
	user := models.User{ID: 42}

	refresh, err := svc.IssueRefreshToken(user)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	tampered := refresh[:len(refresh)-2] + "xx"

	if _, err := svc.Refresh(tampered); !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestRefreshInactiveUserIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := AuthService{Users: repositories.UserRepository{DB: db}, Env: testEnv()}
	refresh, err := svc.IssueRefreshToken(models.User{ID: 42})
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int64(42)).
		WillReturnRows(userRow(42, "jane@example.com", "hash", false))

	if _, err := svc.Refresh(refresh); !domain.IsNotFound(err) {
		t.Fatalf("expected not found for inactive user, got %v", err)
	}
}
