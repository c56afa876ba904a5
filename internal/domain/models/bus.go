package models

import (
	"strings"
	"time"

	"github.com/stevenadel/iti-events-server/internal/domain"
)

const minBusLineCapacity = 5

type BusLine struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	IsActive       bool       `json:"isActive"`
	Capacity       int        `json:"capacity"`
	RemainingSeats int        `json:"remainingSeats"`
	DepartureTime  time.Time  `json:"departureTime"`
	ArrivalTime    time.Time  `json:"arrivalTime"`
	DriverID       *int64     `json:"driverId,omitempty"`
	Driver         *Driver    `json:"driver,omitempty"`
	BusPoints      []BusPoint `json:"busPoints"`
}

type BusPoint struct {
	ID         int64     `json:"id"`
	BusLineID  int64     `json:"-"`
	Name       string    `json:"name"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	PickupTime time.Time `json:"pickupTime"`
}

// BusUser is a user's single active subscription to a bus line.
type BusUser struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	BusLineID int64     `json:"busLineId"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewBusLine validates input and initializes RemainingSeats to the full
// capacity. The counter only changes afterwards through the seat
// coordinator's conditional updates.
func NewBusLine(name string, capacity int, departure, arrival time.Time, driverID *int64) (BusLine, error) {
	name = strings.TrimSpace(name)

	fields := map[string]string{}
	if name == "" {
		fields["name"] = "Name is required"
	}
	if capacity < minBusLineCapacity {
		fields["capacity"] = "Capacity must be at least 5"
	}
	if departure.IsZero() {
		fields["departureTime"] = "Departure time is required"
	}
	if arrival.IsZero() {
		fields["arrivalTime"] = "Arrival time is required"
	} else if !departure.IsZero() && !arrival.After(departure) {
		fields["arrivalTime"] = "Arrival time must be after departure time"
	}
	if len(fields) > 0 {
		return BusLine{}, domain.ValidationError{Msg: "Validation Error", Fields: fields}
	}

	return BusLine{
		Name:           name,
		IsActive:       true,
		Capacity:       capacity,
		RemainingSeats: capacity,
		DepartureTime:  departure,
		ArrivalTime:    arrival,
		DriverID:       driverID,
		BusPoints:      []BusPoint{},
	}, nil
}

func (p BusPoint) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		fields["name"] = "Name is required"
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		fields["latitude"] = "Latitude must be between -90 and 90"
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		fields["longitude"] = "Longitude must be between -180 and 180"
	}
	if p.PickupTime.IsZero() {
		fields["pickupTime"] = "Pickup time is required"
	}
	if len(fields) > 0 {
		return domain.ValidationError{Msg: "Validation Error", Fields: fields}
	}
	return nil
}
