package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stevenadel/iti-events-server/internal/domain"
)

func TestNewUserHashesPasswordAndDefaultsToGuest(t *testing.T) {
	birth := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	user, err := NewUser("Jane", "Doe", birth, "jane@example.com", "supersecret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Role != RoleGuest {
		t.Fatalf("new users must default to guest, got %s", user.Role)
	}
	if user.PasswordHash == "supersecret" || user.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
	if !user.VerifyPassword("supersecret") {
		t.Fatalf("hash does not verify against original password")
	}
	if user.EmailVerified {
		t.Fatalf("email must start unverified")
	}
}

func TestNewUserCollectsFieldErrors(t *testing.T) {
	_, err := NewUser("J", "Doe123", time.Now().Add(24*time.Hour), "not-an-email", "short")
	var ve domain.ValidationError
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError type")
	}
	for _, field := range []string{"firstName", "lastName", "birthdate", "email", "password"} {
		if _, ok := ve.Fields[field]; !ok {
			t.Fatalf("missing field error for %s: %v", field, ve.Fields)
		}
	}
}

func TestAgeCountsCompletedYears(t *testing.T) {
	birth := time.Date(2001, 6, 15, 0, 0, 0, 0, time.UTC)
	u := User{Birthdate: birth}

	before := time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)
	after := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	if got := u.Age(before); got != 24 {
		t.Fatalf("age before birthday: got %d want 24", got)
	}
	if got := u.Age(after); got != 25 {
		t.Fatalf("age on birthday: got %d want 25", got)
	}
}

func TestApplyUpdateValidatesRole(t *testing.T) {
	u := User{FirstName: "Jane", Role: RoleGuest}
	bad := Role("superuser")
	if err := u.ApplyUpdate(UserUpdateInput{Role: &bad}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown role, got %v", err)
	}

	student := RoleStudent
	if err := u.ApplyUpdate(UserUpdateInput{Role: &student}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if u.Role != RoleStudent {
		t.Fatalf("role not applied")
	}
}
