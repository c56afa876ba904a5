package repositories

import (
	"database/sql"
	"errors"

	intconfig "github.com/stevenadel/iti-events-server/internal/config"
	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/domain/models"
)

// BusUserRepository is the seat coordinator. Every change to
// bus_lines.remaining_seats goes through the conditional UPDATEs below,
// inside one transaction per subscribe/unsubscribe, so the counter can
// never be overdrawn by concurrent requests.
type BusUserRepository struct {
	DB *sql.DB
}

func (r BusUserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Subscribe reserves a seat on the given line for the user. An existing
// subscription to another line is replaced and its seat released in the
// same transaction; subscribing to the current line again is a conflict.
func (r BusUserRepository) Subscribe(userID, busLineID int64) (models.BusUser, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return models.BusUser{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	var prior sql.NullInt64
	err = tx.QueryRow(`SELECT bus_line_id FROM bus_users WHERE user_id = ? FOR UPDATE`, userID).Scan(&prior)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.BusUser{}, domain.InternalError{Err: err}
	}
	if prior.Valid && prior.Int64 == busLineID {
		return models.BusUser{}, domain.ConflictError{Resource: "subscription", Msg: "User is already subscribed to this bus line"}
	}

	if err := reserveSeat(tx, busLineID); err != nil {
		return models.BusUser{}, err
	}

	if prior.Valid {
		if err := releaseSeat(tx, prior.Int64); err != nil {
			return models.BusUser{}, err
		}
		if _, err := tx.Exec(`UPDATE bus_users SET bus_line_id = ? WHERE user_id = ?`, busLineID, userID); err != nil {
			return models.BusUser{}, domain.InternalError{Err: err}
		}
	} else {
		if _, err := tx.Exec(`INSERT INTO bus_users (user_id, bus_line_id, created_at) VALUES (?, ?, NOW())`,
			userID, busLineID); err != nil {
			return models.BusUser{}, domain.InternalError{Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return models.BusUser{}, domain.InternalError{Err: err}
	}
	return r.GetByUser(userID)
}

// Unsubscribe deletes the matching subscription and returns the seat to
// the line's pool.
func (r BusUserRepository) Unsubscribe(userID, busLineID int64) error {
	tx, err := r.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM bus_users WHERE user_id = ? AND bus_line_id = ?`, userID, busLineID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "subscription", Msg: "User is not subscribed to this bus line"}
	}

	if err := releaseSeat(tx, busLineID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

func (r BusUserRepository) GetByUser(userID int64) (models.BusUser, error) {
	var bu models.BusUser
	err := r.db().QueryRow(`SELECT id, user_id, bus_line_id, created_at FROM bus_users WHERE user_id = ?`,
		userID).Scan(&bu.ID, &bu.UserID, &bu.BusLineID, &bu.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BusUser{}, domain.NotFoundError{Resource: "subscription", Msg: "User is not subscribed to any bus line"}
		}
		return models.BusUser{}, domain.InternalError{Err: err}
	}
	return bu, nil
}

// ListSubscribers returns the users subscribed to a line, for the
// passenger manifest.
func (r BusUserRepository) ListSubscribers(busLineID int64) ([]models.User, error) {
	rows, err := r.db().Query(`
		SELECT u.id, u.first_name, u.last_name, u.birthdate, u.email, u.password_hash,
		       u.role, u.is_active, u.email_verified, u.created_at, u.updated_at
		FROM bus_users b
		JOIN users u ON u.id = b.user_id
		WHERE b.bus_line_id = ?
		ORDER BY u.last_name ASC, u.first_name ASC
	`, busLineID)
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

// reserveSeat is the atomic conditional decrement: it succeeds only while
// seats remain, never via read-modify-write.
func reserveSeat(tx *sql.Tx, busLineID int64) error {
	res, err := tx.Exec(`
		UPDATE bus_lines SET remaining_seats = remaining_seats - 1
		WHERE id = ? AND remaining_seats > 0
	`, busLineID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	// zero rows means either a full line or a missing one
	var exists int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM bus_lines WHERE id = ?`, busLineID).Scan(&exists); err != nil {
		return domain.InternalError{Err: err}
	}
	if exists == 0 {
		return domain.NotFoundError{Resource: "Bus Line"}
	}
	return domain.CapacityError{Msg: "No remaining seats available"}
}

// releaseSeat increments the counter, capped at capacity.
func releaseSeat(tx *sql.Tx, busLineID int64) error {
	_, err := tx.Exec(`
		UPDATE bus_lines SET remaining_seats = remaining_seats + 1
		WHERE id = ? AND remaining_seats < capacity
	`, busLineID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
