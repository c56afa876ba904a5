package repositories

import (
	"database/sql"
	"errors"
	"time"

	intconfig "github.com/stevenadel/iti-events-server/internal/config"
	intdb "github.com/stevenadel/iti-events-server/internal/db"
	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/domain/models"
)

type EventRepository struct {
	DB *sql.DB
}

func (r EventRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const eventSelect = `
	SELECT e.id, e.name, e.description, e.start_date, e.duration_hours, e.end_date,
	       e.capacity, e.price, e.is_paid, e.min_age, e.max_age, e.is_active,
	       e.registration_closed, e.category_id, e.created_at, e.updated_at,
	       c.id, c.name, c.image_url
	FROM events e
	LEFT JOIN event_categories c ON c.id = e.category_id`

func (r EventRepository) Create(ev models.Event) (models.Event, error) {
	res, err := r.db().Exec(`
		INSERT INTO events (name, description, start_date, duration_hours, end_date, capacity, price,
		                    is_paid, min_age, max_age, is_active, registration_closed, category_id,
		                    created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, ev.Name, ev.Description, ev.StartDate, ev.DurationHours, ev.EndDate, ev.Capacity, ev.Price,
		ev.IsPaid, ev.MinAge, ev.MaxAge, ev.IsActive, ev.RegistrationClosed, ev.CategoryID)
	if err != nil {
		return models.Event{}, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Event{}, domain.InternalError{Err: err}
	}
	return r.GetByID(id)
}

func (r EventRepository) GetByID(id int64) (models.Event, error) {
	row := r.db().QueryRow(eventSelect+` WHERE e.id = ?`, id)
	return scanEvent(row)
}

func (r EventRepository) List() ([]models.Event, error) {
	return r.queryEvents(eventSelect + ` ORDER BY e.start_date ASC`)
}

// ListUpcoming returns active events that have not started yet.
func (r EventRepository) ListUpcoming(now time.Time) ([]models.Event, error) {
	return r.queryEvents(eventSelect+` WHERE e.start_date > ? AND e.is_active = 1 ORDER BY e.start_date ASC`, now)
}

// ListHappening returns active events where startDate <= now <= endDate.
func (r EventRepository) ListHappening(now time.Time) ([]models.Event, error) {
	return r.queryEvents(eventSelect+` WHERE e.start_date <= ? AND e.end_date >= ? AND e.is_active = 1 ORDER BY e.start_date ASC`, now, now)
}

// ListFinished returns active events that already ended.
func (r EventRepository) ListFinished(now time.Time) ([]models.Event, error) {
	return r.queryEvents(eventSelect+` WHERE e.end_date < ? AND e.is_active = 1 ORDER BY e.start_date ASC`, now)
}

func (r EventRepository) ListByCategory(categoryID int64) ([]models.Event, error) {
	return r.queryEvents(eventSelect+` WHERE e.category_id = ? ORDER BY e.start_date ASC`, categoryID)
}

func (r EventRepository) Update(ev models.Event) (models.Event, error) {
	res, err := r.db().Exec(`
		UPDATE events
		SET name = ?, description = ?, start_date = ?, duration_hours = ?, end_date = ?, capacity = ?,
		    price = ?, is_paid = ?, min_age = ?, max_age = ?, is_active = ?, registration_closed = ?,
		    category_id = ?, updated_at = NOW()
		WHERE id = ?
	`, ev.Name, ev.Description, ev.StartDate, ev.DurationHours, ev.EndDate, ev.Capacity,
		ev.Price, ev.IsPaid, ev.MinAge, ev.MaxAge, ev.IsActive, ev.RegistrationClosed,
		ev.CategoryID, ev.ID)
	if err != nil {
		return models.Event{}, domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ev.ID); err != nil {
			return models.Event{}, err
		}
	}
	return r.GetByID(ev.ID)
}

func (r EventRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Event"}
	}
	return nil
}

func (r EventRepository) queryEvents(query string, args ...any) ([]models.Event, error) {
	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func scanEvent(row rowScanner) (models.Event, error) {
	var ev models.Event
	var evCatID, catID sql.NullInt64
	var catName, catImg sql.NullString
	err := row.Scan(&ev.ID, &ev.Name, &ev.Description, &ev.StartDate, &ev.DurationHours, &ev.EndDate,
		&ev.Capacity, &ev.Price, &ev.IsPaid, &ev.MinAge, &ev.MaxAge, &ev.IsActive,
		&ev.RegistrationClosed, &evCatID, &ev.CreatedAt, &ev.UpdatedAt,
		&catID, &catName, &catImg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Event{}, domain.NotFoundError{Resource: "Event", Err: err}
		}
		return models.Event{}, domain.InternalError{Err: err}
	}
	ev.CategoryID = evCatID.Int64
	if catID.Valid {
		ev.Category = &models.EventCategory{
			ID:       catID.Int64,
			Name:     catName.String,
			ImageURL: intdb.StringPtr(catImg),
		}
	}
	return ev, nil
}
