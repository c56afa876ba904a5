package services

import (
	"fmt"

	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/domain/models"
	"github.com/stevenadel/iti-events-server/internal/repositories"
	"github.com/stevenadel/iti-events-server/internal/utils"
)

// BusService fronts the seat coordinator with line-level checks.
type BusService struct {
	Lines     repositories.BusLineRepository
	BusUsers  repositories.BusUserRepository
	RequestID string
}

// Subscribe reserves a seat for the user on an active line. A prior
// subscription to another line is swapped atomically by the repository.
func (s BusService) Subscribe(userID, busLineID int64) (models.BusUser, error) {
	line, err := s.Lines.GetByID(busLineID)
	if err != nil {
		return models.BusUser{}, err
	}
	if !line.IsActive {
		return models.BusUser{}, domain.ConflictError{Resource: "bus line", Msg: "Bus line is not active"}
	}

	sub, err := s.BusUsers.Subscribe(userID, busLineID)
	if err != nil {
		return models.BusUser{}, err
	}

	utils.LogEvent(s.RequestID, "bus", "subscribe",
		fmt.Sprintf("user_id=%d bus_line_id=%d", userID, busLineID))
	return sub, nil
}

// Unsubscribe releases the user's seat on the line.
func (s BusService) Unsubscribe(userID, busLineID int64) error {
	if err := s.BusUsers.Unsubscribe(userID, busLineID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "bus", "unsubscribe",
		fmt.Sprintf("user_id=%d bus_line_id=%d", userID, busLineID))
	return nil
}
