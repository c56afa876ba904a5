package models

import "time"

// Receipt is the proof-of-payment image attached to a paid-event
// registration. The cloudinary public id stays server-side only.
type Receipt struct {
	ImageURL           *string `json:"imageUrl"`
	CloudinaryPublicID *string `json:"-"`
}

func (r Receipt) HasImage() bool {
	return r.CloudinaryPublicID != nil && *r.CloudinaryPublicID != ""
}

// EventAttendee is one ledger entry tying a user to an event. At most one
// entry exists per (user, event) pair.
type EventAttendee struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"-"`
	EventID    int64     `json:"-"`
	IsApproved bool      `json:"isApproved"`
	Receipt    Receipt   `json:"receipt"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AttendeeDetail is the admin-facing view joining the ledger entry with
// the user and event it references.
type AttendeeDetail struct {
	EventAttendee
	User  *User  `json:"user,omitempty"`
	Event *Event `json:"event,omitempty"`
}
