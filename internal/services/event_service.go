package services

import (
	"fmt"
	"time"

	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/domain/models"
	"github.com/stevenadel/iti-events-server/internal/repositories"
	"github.com/stevenadel/iti-events-server/internal/utils"
)

// EventService owns event CRUD and the temporal catalog queries.
type EventService struct {
	Events     repositories.EventRepository
	Categories repositories.CategoryRepository
	RequestID  string
}

func (s EventService) Create(in models.EventInput) (models.Event, error) {
	if err := s.checkCategory(in.CategoryID); err != nil {
		return models.Event{}, err
	}

	event, err := models.NewEvent(in)
	if err != nil {
		return models.Event{}, err
	}

	created, err := s.Events.Create(event)
	if err != nil {
		return models.Event{}, err
	}
	utils.LogEvent(s.RequestID, "event", "create", fmt.Sprintf("event_id=%d", created.ID))
	return created, nil
}

// Update applies the input over the stored event and re-derives EndDate,
// so the derived field can never drift from startDate + duration.
func (s EventService) Update(id int64, in models.EventInput) (models.Event, error) {
	existing, err := s.Events.GetByID(id)
	if err != nil {
		return models.Event{}, err
	}

	if in.CategoryID != 0 && in.CategoryID != existing.CategoryID {
		if err := s.checkCategory(in.CategoryID); err != nil {
			return models.Event{}, err
		}
		existing.CategoryID = in.CategoryID
	}
	if in.Name != "" {
		existing.Name = in.Name
	}
	if in.Description != "" {
		existing.Description = in.Description
	}
	if !in.StartDate.IsZero() {
		existing.StartDate = in.StartDate
	}
	if in.DurationHours != nil {
		existing.DurationHours = *in.DurationHours
	}
	if in.Capacity > 0 {
		existing.Capacity = in.Capacity
	}
	if in.Price != nil {
		existing.Price = *in.Price
	}
	if in.IsPaid != nil {
		existing.IsPaid = *in.IsPaid
	}
	if in.MinAge != nil {
		existing.MinAge = *in.MinAge
	}
	if in.MaxAge != nil {
		existing.MaxAge = *in.MaxAge
	}
	if in.IsActive != nil {
		existing.IsActive = *in.IsActive
	}
	if in.RegistrationClosed != nil {
		existing.RegistrationClosed = *in.RegistrationClosed
	}

	if existing.MinAge > existing.MaxAge {
		return models.Event{}, domain.NewFieldError("minAge", "Age bounds must satisfy minAge <= maxAge")
	}
	if existing.DurationHours <= 0 {
		return models.Event{}, domain.NewFieldError("duration", "Duration must be a positive number of hours")
	}

	existing.DeriveEndDate()

	updated, err := s.Events.Update(existing)
	if err != nil {
		return models.Event{}, err
	}
	utils.LogEvent(s.RequestID, "event", "update", fmt.Sprintf("event_id=%d", id))
	return updated, nil
}

func (s EventService) Delete(id int64) error {
	if err := s.Events.Delete(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "event", "delete", fmt.Sprintf("event_id=%d", id))
	return nil
}

func (s EventService) Get(id int64) (models.Event, error) {
	return s.Events.GetByID(id)
}

func (s EventService) List() ([]models.Event, error) {
	return s.Events.List()
}

// Upcoming lists active events that start after now.
func (s EventService) Upcoming(now time.Time) ([]models.Event, error) {
	return s.Events.ListUpcoming(now)
}

// Happening lists active events whose date range contains now.
func (s EventService) Happening(now time.Time) ([]models.Event, error) {
	return s.Events.ListHappening(now)
}

// Finished lists active events that ended before now.
func (s EventService) Finished(now time.Time) ([]models.Event, error) {
	return s.Events.ListFinished(now)
}

func (s EventService) checkCategory(categoryID int64) error {
	if categoryID <= 0 {
		return domain.NewFieldError("category", "Category is required")
	}
	if _, err := s.Categories.GetByID(categoryID); err != nil {
		if domain.IsNotFound(err) {
			return domain.NewFieldError("category", "Category doesn't exist")
		}
		return err
	}
	return nil
}
