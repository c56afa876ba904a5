package services

import (
	"testing"
	"time"

	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/domain/models"
	"github.com/stevenadel/iti-events-server/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUpdateRederivesEndDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	start := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM events e").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(eventColumns).AddRow(
			5, "GoConf", "A conference", start, 8, start.Add(8*time.Hour),
			100, 0.0, false, 18, 60, true, false, 1, now, now,
			1, "Tech", nil,
		))

	wantEnd := start.Add(10 * time.Hour)
	mock.ExpectExec("UPDATE events").
		WithArgs("GoConf", "A conference", start, 10, wantEnd, 100,
			0.0, false, 18, 60, true, false, int64(1), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM events e").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(eventColumns).AddRow(
			5, "GoConf", "A conference", start, 10, wantEnd,
			100, 0.0, false, 18, 60, true, false, 1, now, now,
			1, "Tech", nil,
		))

	duration := 10
	svc := EventService{
		Events:     repositories.EventRepository{DB: db},
		Categories: repositories.CategoryRepository{DB: db},
	}
	updated, err := svc.Update(5, models.EventInput{DurationHours: &duration})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !updated.EndDate.Equal(wantEnd) {
		t.Fatalf("end date not rederived: got %v want %v", updated.EndDate, wantEnd)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateRejectsInvertedAgeBounds(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	start := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM events e").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(eventColumns).AddRow(
			5, "GoConf", "A conference", start, 8, start.Add(8*time.Hour),
			100, 0.0, false, 18, 60, true, false, 1, now, now,
			1, "Tech", nil,
		))

	minAge := 50
	maxAge := 30
	svc := EventService{
		Events:     repositories.EventRepository{DB: db},
		Categories: repositories.CategoryRepository{DB: db},
	}
	_, err = svc.Update(5, models.EventInput{MinAge: &minAge, MaxAge: &maxAge})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM event_categories WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image_url", "cloudinary_public_id"}))

	svc := EventService{
		Events:     repositories.EventRepository{DB: db},
		Categories: repositories.CategoryRepository{DB: db},
	}
	_, err = svc.Create(models.EventInput{Name: "GoConf", Capacity: 100, CategoryID: 99})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
