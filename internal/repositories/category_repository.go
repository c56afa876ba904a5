package repositories

import (
	"database/sql"
	"errors"

	intconfig "github.com/stevenadel/iti-events-server/internal/config"
	intdb "github.com/stevenadel/iti-events-server/internal/db"
	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/domain/models"
)

type CategoryRepository struct {
	DB *sql.DB
}

func (r CategoryRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r CategoryRepository) Create(c models.EventCategory) (models.EventCategory, error) {
	var img, pub any
	if c.ImageURL != nil {
		img = *c.ImageURL
	}
	if c.CloudinaryPublicID != nil {
		pub = *c.CloudinaryPublicID
	}
	res, err := r.db().Exec(`
		INSERT INTO event_categories (name, image_url, cloudinary_public_id)
		VALUES (?, ?, ?)
	`, c.Name, img, pub)
	if err != nil {
		if intdb.IsDuplicateEntry(err) {
			return models.EventCategory{}, domain.ConflictError{Resource: "category", Msg: "Another category with the same name exists"}
		}
		return models.EventCategory{}, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.EventCategory{}, domain.InternalError{Err: err}
	}
	return r.GetByID(id)
}

func (r CategoryRepository) GetByID(id int64) (models.EventCategory, error) {
	row := r.db().QueryRow(`SELECT id, name, image_url, cloudinary_public_id FROM event_categories WHERE id = ?`, id)
	return scanCategory(row)
}

func (r CategoryRepository) List() ([]models.EventCategory, error) {
	rows, err := r.db().Query(`SELECT id, name, image_url, cloudinary_public_id FROM event_categories ORDER BY name ASC`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.EventCategory{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r CategoryRepository) Update(c models.EventCategory) (models.EventCategory, error) {
	var img, pub any
	if c.ImageURL != nil {
		img = *c.ImageURL
	}
	if c.CloudinaryPublicID != nil {
		pub = *c.CloudinaryPublicID
	}
	res, err := r.db().Exec(`
		UPDATE event_categories SET name = ?, image_url = ?, cloudinary_public_id = ? WHERE id = ?
	`, c.Name, img, pub, c.ID)
	if err != nil {
		if intdb.IsDuplicateEntry(err) {
			return models.EventCategory{}, domain.ConflictError{Resource: "category", Msg: "Another category with the same name exists"}
		}
		return models.EventCategory{}, domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(c.ID); err != nil {
			return models.EventCategory{}, err
		}
	}
	return r.GetByID(c.ID)
}

// Delete removes a category and reports the deleted row so callers can
// clean up an attached cloudinary asset.
func (r CategoryRepository) Delete(id int64) (models.EventCategory, error) {
	c, err := r.GetByID(id)
	if err != nil {
		return models.EventCategory{}, err
	}
	if _, err := r.db().Exec(`DELETE FROM event_categories WHERE id = ?`, id); err != nil {
		return models.EventCategory{}, domain.InternalError{Err: err}
	}
	return c, nil
}

func scanCategory(row rowScanner) (models.EventCategory, error) {
	var c models.EventCategory
	var img, pub sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &img, &pub); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EventCategory{}, domain.NotFoundError{Resource: "Category", Err: err}
		}
		return models.EventCategory{}, domain.InternalError{Err: err}
	}
	c.ImageURL = intdb.StringPtr(img)
	c.CloudinaryPublicID = intdb.StringPtr(pub)
	return c, nil
}
