package repositories

import (
	"database/sql"
	"errors"

	intconfig "github.com/stevenadel/iti-events-server/internal/config"
	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/domain/models"
)

type DriverRepository struct {
	DB *sql.DB
}

func (r DriverRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r DriverRepository) Create(d models.Driver) (models.Driver, error) {
	res, err := r.db().Exec(`INSERT INTO drivers (name, phone_number) VALUES (?, ?)`, d.Name, d.PhoneNumber)
	if err != nil {
		return models.Driver{}, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Driver{}, domain.InternalError{Err: err}
	}
	d.ID = id
	return d, nil
}

func (r DriverRepository) GetByID(id int64) (models.Driver, error) {
	var d models.Driver
	err := r.db().QueryRow(`SELECT id, name, phone_number FROM drivers WHERE id = ?`, id).
		Scan(&d.ID, &d.Name, &d.PhoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Driver{}, domain.NotFoundError{Resource: "Driver", Err: err}
		}
		return models.Driver{}, domain.InternalError{Err: err}
	}
	return d, nil
}

func (r DriverRepository) List() ([]models.Driver, error) {
	rows, err := r.db().Query(`SELECT id, name, phone_number FROM drivers ORDER BY name ASC`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.PhoneNumber); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r DriverRepository) Update(d models.Driver) (models.Driver, error) {
	res, err := r.db().Exec(`UPDATE drivers SET name = ?, phone_number = ? WHERE id = ?`,
		d.Name, d.PhoneNumber, d.ID)
	if err != nil {
		return models.Driver{}, domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(d.ID); err != nil {
			return models.Driver{}, err
		}
	}
	return r.GetByID(d.ID)
}

func (r DriverRepository) Delete(id int64) (models.Driver, error) {
	d, err := r.GetByID(id)
	if err != nil {
		return models.Driver{}, err
	}
	if _, err := r.db().Exec(`DELETE FROM drivers WHERE id = ?`, id); err != nil {
		return models.Driver{}, domain.InternalError{Err: err}
	}
	return d, nil
}
