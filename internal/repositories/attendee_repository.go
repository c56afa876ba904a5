package repositories

import (
	"database/sql"
	"errors"

	intconfig "github.com/stevenadel/iti-events-server/internal/config"
	intdb "github.com/stevenadel/iti-events-server/internal/db"
	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/domain/models"
)

type AttendeeRepository struct {
	DB *sql.DB
}

func (r AttendeeRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const attendeeColumns = `id, user_id, event_id, is_approved, receipt_image_url, receipt_public_id, created_at, updated_at`

// Exists reports whether a ledger entry exists for the (user, event) pair.
func (r AttendeeRepository) Exists(userID, eventID int64) (bool, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM event_attendees WHERE user_id = ? AND event_id = ?`,
		userID, eventID).Scan(&n)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n > 0, nil
}

// Register inserts the ledger entry inside one transaction that locks the
// event row and re-checks capacity, so concurrent registrations cannot
// overfill an event. The unique (user_id, event_id) index backs up the
// caller's duplicate pre-check.
func (r AttendeeRepository) Register(userID, eventID int64, approved bool, receipt models.Receipt) (models.EventAttendee, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return models.EventAttendee{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	var capacity int
	err = tx.QueryRow(`SELECT capacity FROM events WHERE id = ? FOR UPDATE`, eventID).Scan(&capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EventAttendee{}, domain.NotFoundError{Resource: "Event", Err: err}
		}
		return models.EventAttendee{}, domain.InternalError{Err: err}
	}

	var registered int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM event_attendees WHERE event_id = ?`, eventID).Scan(&registered); err != nil {
		return models.EventAttendee{}, domain.InternalError{Err: err}
	}
	if registered >= capacity {
		return models.EventAttendee{}, domain.CapacityError{Msg: "Event is full"}
	}

	var img, pub any
	if receipt.ImageURL != nil {
		img = *receipt.ImageURL
	}
	if receipt.CloudinaryPublicID != nil {
		pub = *receipt.CloudinaryPublicID
	}

	res, err := tx.Exec(`
		INSERT INTO event_attendees (user_id, event_id, is_approved, receipt_image_url, receipt_public_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`, userID, eventID, approved, img, pub)
	if err != nil {
		if intdb.IsDuplicateEntry(err) {
			return models.EventAttendee{}, domain.ConflictError{Resource: "registration", Msg: "User is already registered to this event", Err: err}
		}
		return models.EventAttendee{}, domain.InternalError{Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.EventAttendee{}, domain.InternalError{Err: err}
	}
	if err := tx.Commit(); err != nil {
		return models.EventAttendee{}, domain.InternalError{Err: err}
	}
	return r.GetByID(id)
}

func (r AttendeeRepository) GetByID(id int64) (models.EventAttendee, error) {
	row := r.db().QueryRow(`SELECT `+attendeeColumns+` FROM event_attendees WHERE id = ?`, id)
	return scanAttendee(row)
}

func (r AttendeeRepository) GetByPair(userID, eventID int64) (models.EventAttendee, error) {
	row := r.db().QueryRow(`SELECT `+attendeeColumns+` FROM event_attendees WHERE user_id = ? AND event_id = ?`,
		userID, eventID)
	return scanAttendee(row)
}

// DeleteByPair removes the ledger entry and returns the deleted record so
// callers can clean up an attached receipt asset.
func (r AttendeeRepository) DeleteByPair(userID, eventID int64) (models.EventAttendee, error) {
	rec, err := r.GetByPair(userID, eventID)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.EventAttendee{}, domain.NotFoundError{Resource: "registration", Msg: "User is not registered to this event"}
		}
		return models.EventAttendee{}, err
	}
	res, err := r.db().Exec(`DELETE FROM event_attendees WHERE id = ?`, rec.ID)
	if err != nil {
		return models.EventAttendee{}, domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.EventAttendee{}, domain.NotFoundError{Resource: "registration"}
	}
	return rec, nil
}

func (r AttendeeRepository) SetApproval(id int64, approved bool) (models.EventAttendee, error) {
	res, err := r.db().Exec(`UPDATE event_attendees SET is_approved = ?, updated_at = NOW() WHERE id = ?`, approved, id)
	if err != nil {
		return models.EventAttendee{}, domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return models.EventAttendee{}, err
		}
	}
	return r.GetByID(id)
}

const attendeeDetailSelect = `
	SELECT a.id, a.user_id, a.event_id, a.is_approved, a.receipt_image_url, a.receipt_public_id,
	       a.created_at, a.updated_at,
	       u.id, u.first_name, u.last_name, u.birthdate, u.email, u.role, u.is_active, u.email_verified,
	       e.id, e.name, e.description, e.start_date, e.duration_hours, e.end_date, e.capacity,
	       e.price, e.is_paid, e.min_age, e.max_age, e.is_active, e.registration_closed, e.category_id
	FROM event_attendees a
	JOIN users u ON u.id = a.user_id
	JOIN events e ON e.id = a.event_id`

func (r AttendeeRepository) ListByEvent(eventID int64) ([]models.AttendeeDetail, error) {
	return r.queryDetails(attendeeDetailSelect+` WHERE a.event_id = ? ORDER BY a.created_at ASC`, eventID)
}

func (r AttendeeRepository) ListAll() ([]models.AttendeeDetail, error) {
	return r.queryDetails(attendeeDetailSelect + ` ORDER BY a.created_at ASC`)
}

func (r AttendeeRepository) queryDetails(query string, args ...any) ([]models.AttendeeDetail, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.AttendeeDetail{}
	for rows.Next() {
		var d models.AttendeeDetail
		var img, pub sql.NullString
		var u models.User
		var role string
		var ev models.Event
		var catID sql.NullInt64
		err := rows.Scan(&d.ID, &d.UserID, &d.EventID, &d.IsApproved, &img, &pub,
			&d.CreatedAt, &d.UpdatedAt,
			&u.ID, &u.FirstName, &u.LastName, &u.Birthdate, &u.Email, &role, &u.IsActive, &u.EmailVerified,
			&ev.ID, &ev.Name, &ev.Description, &ev.StartDate, &ev.DurationHours, &ev.EndDate, &ev.Capacity,
			&ev.Price, &ev.IsPaid, &ev.MinAge, &ev.MaxAge, &ev.IsActive, &ev.RegistrationClosed, &catID)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		u.Role = models.Role(role)
		ev.CategoryID = catID.Int64
		d.Receipt = models.Receipt{ImageURL: intdb.StringPtr(img), CloudinaryPublicID: intdb.StringPtr(pub)}
		d.User = &u
		d.Event = &ev
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func scanAttendee(row rowScanner) (models.EventAttendee, error) {
	var a models.EventAttendee
	var img, pub sql.NullString
	err := row.Scan(&a.ID, &a.UserID, &a.EventID, &a.IsApproved, &img, &pub, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EventAttendee{}, domain.NotFoundError{Resource: "Attendee record", Err: err}
		}
		return models.EventAttendee{}, domain.InternalError{Err: err}
	}
	a.Receipt = models.Receipt{ImageURL: intdb.StringPtr(img), CloudinaryPublicID: intdb.StringPtr(pub)}
	return a, nil
}
