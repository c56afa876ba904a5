package repositories

import (
	"database/sql"
	"errors"

	intconfig "github.com/stevenadel/iti-events-server/internal/config"
	intdb "github.com/stevenadel/iti-events-server/internal/db"
	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/domain/models"
)

type BusLineRepository struct {
	DB *sql.DB
}

func (r BusLineRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const busLineSelect = `
	SELECT l.id, l.name, l.is_active, l.capacity, l.remaining_seats, l.departure_time, l.arrival_time,
	       l.driver_id, d.id, d.name, d.phone_number
	FROM bus_lines l
	LEFT JOIN drivers d ON d.id = l.driver_id`

func (r BusLineRepository) Create(line models.BusLine) (models.BusLine, error) {
	var driverID any
	if line.DriverID != nil {
		driverID = *line.DriverID
	}
	res, err := r.db().Exec(`
		INSERT INTO bus_lines (name, is_active, capacity, remaining_seats, departure_time, arrival_time, driver_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, line.Name, line.IsActive, line.Capacity, line.RemainingSeats, line.DepartureTime, line.ArrivalTime, driverID)
	if err != nil {
		return models.BusLine{}, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.BusLine{}, domain.InternalError{Err: err}
	}

	for _, p := range line.BusPoints {
		if _, err := r.AddPoint(id, p); err != nil {
			return models.BusLine{}, err
		}
	}
	return r.GetByID(id)
}

func (r BusLineRepository) GetByID(id int64) (models.BusLine, error) {
	row := r.db().QueryRow(busLineSelect+` WHERE l.id = ?`, id)
	line, err := scanBusLine(row)
	if err != nil {
		return models.BusLine{}, err
	}
	points, err := r.ListPoints(id)
	if err != nil {
		return models.BusLine{}, err
	}
	line.BusPoints = points
	return line, nil
}

func (r BusLineRepository) List() ([]models.BusLine, error) {
	rows, err := r.db().Query(busLineSelect + ` ORDER BY l.departure_time ASC`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.BusLine{}
	for rows.Next() {
		line, err := scanBusLine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}

	for i := range out {
		points, err := r.ListPoints(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].BusPoints = points
	}
	return out, nil
}

// Update changes descriptive fields only. remaining_seats belongs to the
// seat coordinator and is never written here.
func (r BusLineRepository) Update(line models.BusLine) (models.BusLine, error) {
	var driverID any
	if line.DriverID != nil {
		driverID = *line.DriverID
	}
	res, err := r.db().Exec(`
		UPDATE bus_lines
		SET name = ?, is_active = ?, departure_time = ?, arrival_time = ?, driver_id = ?
		WHERE id = ?
	`, line.Name, line.IsActive, line.DepartureTime, line.ArrivalTime, driverID, line.ID)
	if err != nil {
		return models.BusLine{}, domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(line.ID); err != nil {
			return models.BusLine{}, err
		}
	}
	return r.GetByID(line.ID)
}

func (r BusLineRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM bus_lines WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Bus Line"}
	}
	return nil
}

func (r BusLineRepository) ListPoints(busLineID int64) ([]models.BusPoint, error) {
	rows, err := r.db().Query(`
		SELECT id, bus_line_id, name, latitude, longitude, pickup_time
		FROM bus_points WHERE bus_line_id = ? ORDER BY pickup_time ASC
	`, busLineID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.BusPoint{}
	for rows.Next() {
		var p models.BusPoint
		if err := rows.Scan(&p.ID, &p.BusLineID, &p.Name, &p.Latitude, &p.Longitude, &p.PickupTime); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (r BusLineRepository) AddPoint(busLineID int64, p models.BusPoint) (models.BusPoint, error) {
	res, err := r.db().Exec(`
		INSERT INTO bus_points (bus_line_id, name, latitude, longitude, pickup_time)
		VALUES (?, ?, ?, ?, ?)
	`, busLineID, p.Name, p.Latitude, p.Longitude, p.PickupTime)
	if err != nil {
		return models.BusPoint{}, domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.BusPoint{}, domain.InternalError{Err: err}
	}
	p.ID = id
	p.BusLineID = busLineID
	return p, nil
}

func (r BusLineRepository) UpdatePoint(busLineID, pointID int64, p models.BusPoint) (models.BusPoint, error) {
	res, err := r.db().Exec(`
		UPDATE bus_points SET name = ?, latitude = ?, longitude = ?, pickup_time = ?
		WHERE id = ? AND bus_line_id = ?
	`, p.Name, p.Latitude, p.Longitude, p.PickupTime, pointID, busLineID)
	if err != nil {
		return models.BusPoint{}, domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if !r.pointExists(busLineID, pointID) {
			return models.BusPoint{}, domain.NotFoundError{Resource: "Bus Point"}
		}
	}
	p.ID = pointID
	p.BusLineID = busLineID
	return p, nil
}

func (r BusLineRepository) DeletePoint(busLineID, pointID int64) error {
	res, err := r.db().Exec(`DELETE FROM bus_points WHERE id = ? AND bus_line_id = ?`, pointID, busLineID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "Bus Point"}
	}
	return nil
}

func (r BusLineRepository) pointExists(busLineID, pointID int64) bool {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM bus_points WHERE id = ? AND bus_line_id = ?`,
		pointID, busLineID).Scan(&n); err != nil {
		return false
	}
	return n > 0
}

func scanBusLine(row rowScanner) (models.BusLine, error) {
	var line models.BusLine
	var driverID, dID sql.NullInt64
	var dName, dPhone sql.NullString
	err := row.Scan(&line.ID, &line.Name, &line.IsActive, &line.Capacity, &line.RemainingSeats,
		&line.DepartureTime, &line.ArrivalTime, &driverID, &dID, &dName, &dPhone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BusLine{}, domain.NotFoundError{Resource: "Bus Line", Err: err}
		}
		return models.BusLine{}, domain.InternalError{Err: err}
	}
	line.DriverID = intdb.Int64Ptr(driverID)
	if dID.Valid {
		line.Driver = &models.Driver{ID: dID.Int64, Name: dName.String, PhoneNumber: dPhone.String}
	}
	line.BusPoints = []models.BusPoint{}
	return line, nil
}
