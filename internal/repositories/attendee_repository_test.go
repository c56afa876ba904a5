package repositories

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func attendeeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "event_id", "is_approved", "receipt_image_url", "receipt_public_id", "created_at", "updated_at",
	})
}

func TestSchemaDefinesAttendeeColumns(t *testing.T) {
	ddl, err := os.ReadFile(filepath.Join("..", "..", "schema.sql"))
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	start := strings.Index(string(ddl), "CREATE TABLE IF NOT EXISTS event_attendees")
	if start < 0 {
		t.Fatalf("event_attendees table missing from schema")
	}
	table := string(ddl)[start:]
	if end := strings.Index(table, "ENGINE"); end >= 0 {
		table = table[:end]
	}
	for _, col := range strings.Split(attendeeColumns, ", ") {
		if !strings.Contains(table, col) {
			t.Fatalf("schema lacks event_attendees column %q", col)
		}
	}
}

func TestRegisterInsertsApprovedEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT capacity FROM events").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(100))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(40))
	mock.ExpectExec("INSERT INTO event_attendees").
		WithArgs(int64(9), int64(5), true, nil, nil).
		WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM event_attendees WHERE id").
		WithArgs(int64(77)).
		WillReturnRows(attendeeRows().AddRow(77, 9, 5, true, nil, nil, now, now))

	rec, err := AttendeeRepository{DB: db}.Register(9, 5, true, models.Receipt{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !rec.IsApproved {
		t.Fatalf("free registration should come back approved")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterFullEventIsCapacityError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT capacity FROM events").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(50))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(50))
	mock.ExpectRollback()

	_, err = AttendeeRepository{DB: db}.Register(9, 5, true, models.Receipt{})
	if !domain.IsCapacity(err) {
		t.Fatalf("expected capacity error, got %v", err)
	}
}

func TestRegisterDuplicateIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT capacity FROM events").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(100))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec("INSERT INTO event_attendees").
		WithArgs(int64(9), int64(5), false, nil, nil).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	_, err = AttendeeRepository{DB: db}.Register(9, 5, false, models.Receipt{})
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDeleteByPairReturnsDeletedRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM event_attendees WHERE user_id").
		WithArgs(int64(9), int64(5)).
		WillReturnRows(attendeeRows().AddRow(77, 9, 5, true, "https://img/r.png", "uploads/r", now, now))
	mock.ExpectExec("DELETE FROM event_attendees").
		WithArgs(int64(77)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec, err := AttendeeRepository{DB: db}.DeleteByPair(9, 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !rec.Receipt.HasImage() {
		t.Fatalf("deleted record should carry its receipt for cleanup")
	}
}

func TestDeleteByPairMissingIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM event_attendees WHERE user_id").
		WithArgs(int64(9), int64(5)).
		WillReturnRows(attendeeRows())

	_, err = AttendeeRepository{DB: db}.DeleteByPair(9, 5)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
