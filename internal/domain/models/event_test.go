package models

import (
	"testing"
	"time"

	"github.com/stevenadel/iti-events-server/internal/domain"
)

func validEventInput() EventInput {
	return EventInput{
		Name:        "GoConf",
		Description: "A conference",
		StartDate:   time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
		Capacity:    100,
		CategoryID:  1,
	}
}

func TestNewEventAppliesDefaultsAndDerivesEndDate(t *testing.T) {
	ev, err := NewEvent(validEventInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ev.DurationHours != 24 || ev.MinAge != 18 || ev.MaxAge != 60 {
		t.Fatalf("defaults not applied: %+v", ev)
	}
	if !ev.IsActive {
		t.Fatalf("events must default to active")
	}
	want := ev.StartDate.Add(24 * time.Hour)
	if !ev.EndDate.Equal(want) {
		t.Fatalf("end date: got %v want %v", ev.EndDate, want)
	}
}

func TestNewEventIgnoresCallerEndDate(t *testing.T) {
	in := validEventInput()
	duration := 6
	in.DurationHours = &duration

	ev, err := NewEvent(in)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := in.StartDate.Add(6 * time.Hour)
	if !ev.EndDate.Equal(want) {
		t.Fatalf("end date must derive from duration: got %v want %v", ev.EndDate, want)
	}
}

func TestNewEventRejectsInvertedAgeBounds(t *testing.T) {
	in := validEventInput()
	minAge := 40
	maxAge := 20
	in.MinAge = &minAge
	in.MaxAge = &maxAge

	if _, err := NewEvent(in); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewEventRejectsNonPositiveValues(t *testing.T) {
	in := validEventInput()
	in.Capacity = 0
	if _, err := NewEvent(in); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for capacity, got %v", err)
	}

	in = validEventInput()
	duration := 0
	in.DurationHours = &duration
	if _, err := NewEvent(in); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for duration, got %v", err)
	}
}

func TestAdmitsAgeIsInclusive(t *testing.T) {
	ev := Event{MinAge: 18, MaxAge: 60}
	for _, tc := range []struct {
		age  int
		want bool
	}{
		{17, false}, {18, true}, {60, true}, {61, false},
	} {
		if got := ev.AdmitsAge(tc.age); got != tc.want {
			t.Fatalf("AdmitsAge(%d) = %t, want %t", tc.age, got, tc.want)
		}
	}
}
