package models

import (
	"testing"
	"time"

	"github.com/stevenadel/iti-events-server/internal/domain"
)

func TestNewBusLineInitializesRemainingSeats(t *testing.T) {
	departure := time.Date(2025, 9, 1, 7, 30, 0, 0, time.UTC)
	line, err := NewBusLine("Campus Express", 40, departure, departure.Add(time.Hour), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if line.RemainingSeats != 40 {
		t.Fatalf("remaining seats must start at capacity, got %d", line.RemainingSeats)
	}
	if !line.IsActive {
		t.Fatalf("lines must default to active")
	}
}

func TestNewBusLineRejectsSmallCapacity(t *testing.T) {
	departure := time.Date(2025, 9, 1, 7, 30, 0, 0, time.UTC)
	if _, err := NewBusLine("Campus Express", 4, departure, departure.Add(time.Hour), nil); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewBusLineRejectsArrivalBeforeDeparture(t *testing.T) {
	departure := time.Date(2025, 9, 1, 7, 30, 0, 0, time.UTC)
	if _, err := NewBusLine("Campus Express", 40, departure, departure.Add(-time.Hour), nil); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBusPointValidateChecksCoordinates(t *testing.T) {
	p := BusPoint{Name: "Gate 1", Latitude: 95, Longitude: 10, PickupTime: time.Now()}
	if err := p.Validate(); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for latitude, got %v", err)
	}

	p = BusPoint{Name: "Gate 1", Latitude: 30, Longitude: 31, PickupTime: time.Now()}
	if err := p.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
