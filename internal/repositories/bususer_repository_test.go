package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stevenadel/iti-events-server/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSubscribeReservesSeatForNewSubscriber(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT bus_line_id FROM bus_users").
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("UPDATE bus_lines SET remaining_seats = remaining_seats -").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bus_users").
		WithArgs(int64(7), int64(3)).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT id, user_id, bus_line_id, created_at FROM bus_users").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "bus_line_id", "created_at"}).
			AddRow(11, 7, 3, time.Now()))

	sub, err := BusUserRepository{DB: db}.Subscribe(7, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sub.BusLineID != 3 {
		t.Fatalf("subscribed to wrong line: %d", sub.BusLineID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSubscribeSameLineIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT bus_line_id FROM bus_users").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"bus_line_id"}).AddRow(3))
	mock.ExpectRollback()

	_, err = BusUserRepository{DB: db}.Subscribe(7, 3)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("seat counter must not be touched: %v", err)
	}
}

func TestSubscribeFullLineIsCapacityError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT bus_line_id FROM bus_users").
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("UPDATE bus_lines SET remaining_seats = remaining_seats -").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err = BusUserRepository{DB: db}.Subscribe(7, 3)
	if !domain.IsCapacity(err) {
		t.Fatalf("expected capacity error, got %v", err)
	}
}

func TestSubscribeMissingLineIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT bus_line_id FROM bus_users").
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("UPDATE bus_lines SET remaining_seats = remaining_seats -").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	_, err = BusUserRepository{DB: db}.Subscribe(7, 99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSubscribeSwapReleasesOldSeat(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT bus_line_id FROM bus_users").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"bus_line_id"}).AddRow(2))
	mock.ExpectExec("UPDATE bus_lines SET remaining_seats = remaining_seats -").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE bus_lines SET remaining_seats = remaining_seats \+ 1`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bus_users SET bus_line_id").
		WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT id, user_id, bus_line_id, created_at FROM bus_users").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "bus_line_id", "created_at"}).
			AddRow(11, 7, 3, time.Now()))

	sub, err := BusUserRepository{DB: db}.Subscribe(7, 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sub.BusLineID != 3 {
		t.Fatalf("swap landed on wrong line: %d", sub.BusLineID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUnsubscribeReleasesSeat(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bus_users").
		WithArgs(int64(7), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE bus_lines SET remaining_seats = remaining_seats \+ 1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := (BusUserRepository{DB: db}).Unsubscribe(7, 3); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUnsubscribeWithoutSubscriptionIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bus_users").
		WithArgs(int64(7), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = BusUserRepository{DB: db}.Unsubscribe(7, 3)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
