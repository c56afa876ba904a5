package models

import (
	"strings"
	"time"

	"github.com/stevenadel/iti-events-server/internal/domain"
)

type Event struct {
	ID                 int64          `json:"id"`
	Name               string         `json:"name"`
	Description        string         `json:"description"`
	StartDate          time.Time      `json:"startDate"`
	DurationHours      int            `json:"duration"`
	EndDate            time.Time      `json:"endDate"`
	Capacity           int            `json:"capacity"`
	Price              float64        `json:"price"`
	IsPaid             bool           `json:"isPaid"`
	MinAge             int            `json:"minAge"`
	MaxAge             int            `json:"maxAge"`
	IsActive           bool           `json:"isActive"`
	RegistrationClosed bool           `json:"registrationClosed"`
	CategoryID         int64          `json:"-"`
	Category           *EventCategory `json:"category,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// EventInput carries the mutable event fields from create/update requests.
type EventInput struct {
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	StartDate          time.Time `json:"startDate"`
	DurationHours      *int      `json:"duration"`
	Capacity           int       `json:"capacity"`
	Price              *float64  `json:"price"`
	IsPaid             *bool     `json:"isPaid"`
	MinAge             *int      `json:"minAge"`
	MaxAge             *int      `json:"maxAge"`
	IsActive           *bool     `json:"isActive"`
	RegistrationClosed *bool     `json:"registrationClosed"`
	CategoryID         int64     `json:"category"`
}

// NewEvent validates input, applies defaults and derives EndDate.
// EndDate is never accepted from callers.
func NewEvent(in EventInput) (Event, error) {
	ev := Event{
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		StartDate:     in.StartDate,
		DurationHours: 24,
		Capacity:      in.Capacity,
		MinAge:        18,
		MaxAge:        60,
		IsActive:      true,
		CategoryID:    in.CategoryID,
	}
	if in.DurationHours != nil {
		ev.DurationHours = *in.DurationHours
	}
	if in.Price != nil {
		ev.Price = *in.Price
	}
	if in.IsPaid != nil {
		ev.IsPaid = *in.IsPaid
	}
	if in.MinAge != nil {
		ev.MinAge = *in.MinAge
	}
	if in.MaxAge != nil {
		ev.MaxAge = *in.MaxAge
	}
	if in.IsActive != nil {
		ev.IsActive = *in.IsActive
	}
	if in.RegistrationClosed != nil {
		ev.RegistrationClosed = *in.RegistrationClosed
	}

	if err := ev.validate(); err != nil {
		return Event{}, err
	}

	ev.DeriveEndDate()
	return ev, nil
}

// DeriveEndDate recomputes EndDate from StartDate and DurationHours.
// Must be called after any mutation of either field.
func (e *Event) DeriveEndDate() {
	e.EndDate = e.StartDate.Add(time.Duration(e.DurationHours) * time.Hour)
}

func (e Event) validate() error {
	fields := map[string]string{}
	if e.Name == "" {
		fields["name"] = "Name is required"
	}
	if e.Description == "" {
		fields["description"] = "Description is required"
	}
	if e.StartDate.IsZero() {
		fields["startDate"] = "Start date is required"
	}
	if e.Capacity <= 0 {
		fields["capacity"] = "Capacity must be a positive number"
	}
	if e.DurationHours <= 0 {
		fields["duration"] = "Duration must be a positive number of hours"
	}
	if e.Price < 0 {
		fields["price"] = "Price cannot be negative"
	}
	if e.MinAge < 0 || e.MaxAge < 0 || e.MinAge > e.MaxAge {
		fields["minAge"] = "Age bounds must satisfy 0 <= minAge <= maxAge"
	}
	if e.CategoryID <= 0 {
		fields["category"] = "Category is required"
	}
	if len(fields) > 0 {
		return domain.ValidationError{Msg: "Validation Error", Fields: fields}
	}
	return nil
}

// AdmitsAge reports whether an attendee of the given age fits the
// event's age bounds.
func (e Event) AdmitsAge(age int) bool {
	return age >= e.MinAge && age <= e.MaxAge
}
