package repositories

import (
	"database/sql"
	"errors"

	intconfig "github.com/stevenadel/iti-events-server/internal/config"
	intdb "github.com/stevenadel/iti-events-server/internal/db"
	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `id, first_name, last_name, birthdate, email, password_hash, role, is_active, email_verified, created_at, updated_at`

func (r UserRepository) Create(u models.User) (models.User, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (first_name, last_name, birthdate, email, password_hash, role, is_active, email_verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, u.FirstName, u.LastName, u.Birthdate, u.Email, u.PasswordHash, string(u.Role), u.IsActive, u.EmailVerified)
	if err != nil {
		if intdb.IsDuplicateEntry(err) {
			return models.User{}, domain.ConflictError{Resource: "user", Msg: "Email already exists. Please use a different email.", Err: err}
		}
		return models.User{}, domain.InternalError{Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	return r.GetByID(id)
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r UserRepository) List() ([]models.User, error) {
	rows, err := r.db().Query(`SELECT ` + userColumns + ` FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r UserRepository) Update(u models.User) (models.User, error) {
	res, err := r.db().Exec(`
		UPDATE users
		SET first_name = ?, last_name = ?, birthdate = ?, email = ?, password_hash = ?, role = ?, is_active = ?, email_verified = ?, updated_at = NOW()
		WHERE id = ?
	`, u.FirstName, u.LastName, u.Birthdate, u.Email, u.PasswordHash, string(u.Role), u.IsActive, u.EmailVerified, u.ID)
	if err != nil {
		if intdb.IsDuplicateEntry(err) {
			return models.User{}, domain.ConflictError{Resource: "user", Msg: "Email already exists. Please use a different email.", Err: err}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// zero rows can also mean a no-op update, so confirm existence
		if _, err := r.GetByID(u.ID); err != nil {
			return models.User{}, err
		}
	}
	return r.GetByID(u.ID)
}

// Deactivate soft-disables a user. Records stay behind for the ledger.
func (r UserRepository) Deactivate(id int64) error {
	res, err := r.db().Exec(`UPDATE users SET is_active = 0, updated_at = NOW() WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
	}
	return nil
}

func (r UserRepository) SetEmailVerified(id int64) error {
	res, err := r.db().Exec(`UPDATE users SET email_verified = 1, updated_at = NOW() WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the row entirely. Used to roll back a registration whose
// verification email could not be sent.
func (r UserRepository) Delete(id int64) error {
	_, err := r.db().Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	var role string
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Birthdate, &u.Email, &u.PasswordHash,
		&role, &u.IsActive, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "User", Err: err}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	u.Role = models.Role(role)
	return u, nil
}
