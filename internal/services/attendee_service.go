package services

import (
	"fmt"
	"time"

	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/domain/models"
	"github.com/stevenadel/iti-events-server/internal/repositories"
	"github.com/stevenadel/iti-events-server/internal/utils"
)

// AttendeeService drives the event registration workflow: eligibility
// checks, approval gating for paid events and receipt cleanup.
type AttendeeService struct {
	Attendees repositories.AttendeeRepository
	Events    repositories.EventRepository
	RequestID string

	// DeleteAsset removes an uploaded receipt from remote storage.
	// Failures are logged, never surfaced: unregistration must not
	// depend on the asset store being up.
	DeleteAsset func(publicID string) error

	// Now is swappable in tests.
	Now func() time.Time
}

func (s AttendeeService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register adds the user to the event's ledger. Free events are approved
// immediately; paid events stay pending until an admin approves them.
func (s AttendeeService) Register(user models.User, eventID int64, receipt models.Receipt) (models.EventAttendee, error) {
	event, err := s.Events.GetByID(eventID)
	if err != nil {
		return models.EventAttendee{}, err
	}

	if !event.IsActive {
		return models.EventAttendee{}, domain.ConflictError{Resource: "event", Msg: "Event is not active"}
	}
	if event.RegistrationClosed {
		return models.EventAttendee{}, domain.ConflictError{Resource: "event", Msg: "Registration is closed for this event"}
	}
	if age := user.Age(s.now()); !event.AdmitsAge(age) {
		return models.EventAttendee{}, domain.NewFieldError("birthdate",
			fmt.Sprintf("Attendees must be between %d and %d years old", event.MinAge, event.MaxAge))
	}

	registered, err := s.Attendees.Exists(user.ID, eventID)
	if err != nil {
		return models.EventAttendee{}, err
	}
	if registered {
		return models.EventAttendee{}, domain.ConflictError{Resource: "registration", Msg: "User is already registered to this event"}
	}

	attendee, err := s.Attendees.Register(user.ID, eventID, !event.IsPaid, receipt)
	if err != nil {
		return models.EventAttendee{}, err
	}

	utils.LogEvent(s.RequestID, "attendee", "register",
		fmt.Sprintf("user_id=%d event_id=%d approved=%t", user.ID, eventID, attendee.IsApproved))
	return attendee, nil
}

// IsRegistered reports whether a ledger entry exists for the pair.
func (s AttendeeService) IsRegistered(userID, eventID int64) (bool, error) {
	return s.Attendees.Exists(userID, eventID)
}

// Unregister removes the ledger entry and schedules best-effort deletion
// of any uploaded receipt.
func (s AttendeeService) Unregister(userID, eventID int64) (models.EventAttendee, error) {
	deleted, err := s.Attendees.DeleteByPair(userID, eventID)
	if err != nil {
		return models.EventAttendee{}, err
	}

	if deleted.Receipt.HasImage() && s.DeleteAsset != nil {
		if err := s.DeleteAsset(*deleted.Receipt.CloudinaryPublicID); err != nil {
			utils.LogEvent(s.RequestID, "attendee", "receipt_cleanup_failed",
				fmt.Sprintf("public_id=%s err=%v", *deleted.Receipt.CloudinaryPublicID, err))
		}
	}

	utils.LogEvent(s.RequestID, "attendee", "unregister",
		fmt.Sprintf("user_id=%d event_id=%d", userID, eventID))
	return deleted, nil
}

// SetApproval flips the admin approval flag on a ledger entry.
func (s AttendeeService) SetApproval(attendeeID int64, approved bool) (models.EventAttendee, error) {
	attendee, err := s.Attendees.SetApproval(attendeeID, approved)
	if err != nil {
		return models.EventAttendee{}, err
	}
	utils.LogEvent(s.RequestID, "attendee", "set_approval",
		fmt.Sprintf("attendee_id=%d approved=%t", attendeeID, approved))
	return attendee, nil
}

func (s AttendeeService) ListByEvent(eventID int64) ([]models.AttendeeDetail, error) {
	if _, err := s.Events.GetByID(eventID); err != nil {
		return nil, err
	}
	return s.Attendees.ListByEvent(eventID)
}

func (s AttendeeService) ListAll() ([]models.AttendeeDetail, error) {
	return s.Attendees.ListAll()
}
