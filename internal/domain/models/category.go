package models

import (
	"strings"

	"github.com/stevenadel/iti-events-server/internal/domain"
)

type EventCategory struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	ImageURL           *string `json:"imageUrl,omitempty"`
	CloudinaryPublicID *string `json:"-"`
}

func NewEventCategory(name string) (EventCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return EventCategory{}, domain.NewFieldError("name", "Name is required")
	}
	if len(name) > 50 {
		return EventCategory{}, domain.NewFieldError("name", "Name must be at most 50 characters long")
	}
	return EventCategory{Name: name}, nil
}
