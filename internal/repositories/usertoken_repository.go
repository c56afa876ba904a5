package repositories

import (
	"database/sql"
	"errors"

	intconfig "github.com/stevenadel/iti-events-server/internal/config"
	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/domain/models"
)

// UserTokenRepository stores single-use email verification tokens.
type UserTokenRepository struct {
	DB *sql.DB
}

func (r UserTokenRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserTokenRepository) Create(userID int64, token string) (models.UserToken, error) {
	res, err := r.db().Exec(`INSERT INTO user_tokens (user_id, token, created_at) VALUES (?, ?, NOW())`,
		userID, token)
	if err != nil {
		return models.UserToken{}, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.UserToken{}, domain.InternalError{Err: err}
	}
	return models.UserToken{ID: id, UserID: userID, Token: token}, nil
}

func (r UserTokenRepository) Get(userID int64, token string) (models.UserToken, error) {
	var ut models.UserToken
	err := r.db().QueryRow(`SELECT id, user_id, token, created_at FROM user_tokens WHERE user_id = ? AND token = ?`,
		userID, token).Scan(&ut.ID, &ut.UserID, &ut.Token, &ut.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserToken{}, domain.NotFoundError{Resource: "verification token", Msg: "Invalid or expired verification link"}
		}
		return models.UserToken{}, domain.InternalError{Err: err}
	}
	return ut, nil
}

func (r UserTokenRepository) Delete(userID int64, token string) error {
	_, err := r.db().Exec(`DELETE FROM user_tokens WHERE user_id = ? AND token = ?`, userID, token)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
