package services

import (
	"fmt"
	"time"

	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/domain/models"
	"github.com/stevenadel/iti-events-server/internal/repositories"
	"github.com/stevenadel/iti-events-server/internal/utils"
)

type UserService struct {
	Users     repositories.UserRepository
	RequestID string
}

// Create registers a user on behalf of an admin. The role is assigned
// directly and the email skips verification.
func (s UserService) Create(firstName, lastName string, birthdate time.Time, email, password string, role models.Role) (models.User, error) {
	user, err := models.NewUser(firstName, lastName, birthdate, email, password)
	if err != nil {
		return models.User{}, err
	}
	if role != "" {
		if !models.ValidRole(role) {
			return models.User{}, domain.NewFieldError("role", "Invalid role")
		}
		user.Role = role
	}
	user.EmailVerified = true

	created, err := s.Users.Create(user)
	if err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "users", "create", fmt.Sprintf("user_id=%d role=%s", created.ID, created.Role))
	return created, nil
}

func (s UserService) Get(id int64) (models.User, error) {
	return s.Users.GetByID(id)
}

func (s UserService) List() ([]models.User, error) {
	return s.Users.List()
}

// Update applies the provided fields to an existing user.
func (s UserService) Update(id int64, in models.UserUpdateInput) (models.User, error) {
	user, err := s.Users.GetByID(id)
	if err != nil {
		return models.User{}, err
	}
	if err := user.ApplyUpdate(in); err != nil {
		return models.User{}, err
	}
	updated, err := s.Users.Update(user)
	if err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "users", "update", fmt.Sprintf("user_id=%d", id))
	return updated, nil
}

// Deactivate disables the account without removing its history.
func (s UserService) Deactivate(id int64) error {
	if _, err := s.Users.GetByID(id); err != nil {
		return err
	}
	if err := s.Users.Deactivate(id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "users", "deactivate", fmt.Sprintf("user_id=%d", id))
	return nil
}
