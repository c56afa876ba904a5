package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/stevenadel/iti-events-server/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleGuest        Role = "guest"
	RoleStudent      Role = "student"
	RoleEmployee     Role = "employee"
	RoleOrganization Role = "organization"
	RoleAdmin        Role = "admin"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleGuest, RoleStudent, RoleEmployee, RoleOrganization, RoleAdmin:
		return true
	}
	return false
}

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z]+$`)
	emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

type User struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Birthdate     time.Time `json:"birthdate"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"role"`
	IsActive      bool      `json:"isActive"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewUser validates registration input and returns a user with the
// password already hashed, so callers persist exactly what they see.
func NewUser(firstName, lastName string, birthdate time.Time, email, password string) (User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)

	fields := map[string]string{}
	if msg := validateName(firstName, "First name"); msg != "" {
		fields["firstName"] = msg
	}
	if msg := validateName(lastName, "Last name"); msg != "" {
		fields["lastName"] = msg
	}
	if birthdate.IsZero() {
		fields["birthdate"] = "Birthdate is required"
	} else if birthdate.After(time.Now()) {
		fields["birthdate"] = "Birthdate cannot be in the future"
	}
	if email == "" {
		fields["email"] = "Email is required"
	} else if !emailRe.MatchString(email) {
		fields["email"] = "Please enter a valid email"
	}
	if len(password) < 8 || len(password) > 25 {
		fields["password"] = "Password must be between 8 and 25 characters long"
	}
	if len(fields) > 0 {
		return User{}, domain.ValidationError{Msg: "Validation Error", Fields: fields}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, domain.InternalError{Msg: "Error saving password", Err: err}
	}

	return User{
		FirstName:     firstName,
		LastName:      lastName,
		Birthdate:     birthdate,
		Email:         email,
		PasswordHash:  string(hash),
		Role:          RoleGuest,
		IsActive:      true,
		EmailVerified: false,
	}, nil
}

// UserUpdateInput carries optional profile fields. Nil pointers keep the
// current value.
type UserUpdateInput struct {
	FirstName *string    `json:"firstName"`
	LastName  *string    `json:"lastName"`
	Birthdate *time.Time `json:"-"`
	Email     *string    `json:"email"`
	Password  *string    `json:"password"`
	Role      *Role      `json:"role"`
	IsActive  *bool      `json:"isActive"`
}

// ApplyUpdate validates the provided fields and copies them onto the user.
func (u *User) ApplyUpdate(in UserUpdateInput) error {
	fields := map[string]string{}

	if in.FirstName != nil {
		name := strings.TrimSpace(*in.FirstName)
		if msg := validateName(name, "First name"); msg != "" {
			fields["firstName"] = msg
		} else {
			u.FirstName = name
		}
	}
	if in.LastName != nil {
		name := strings.TrimSpace(*in.LastName)
		if msg := validateName(name, "Last name"); msg != "" {
			fields["lastName"] = msg
		} else {
			u.LastName = name
		}
	}
	if in.Birthdate != nil {
		if in.Birthdate.After(time.Now()) {
			fields["birthdate"] = "Birthdate cannot be in the future"
		} else {
			u.Birthdate = *in.Birthdate
		}
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if !emailRe.MatchString(email) {
			fields["email"] = "Please enter a valid email"
		} else {
			u.Email = email
		}
	}
	if in.Password != nil {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			fields["password"] = "Password must be between 8 and 25 characters long"
		} else {
			u.PasswordHash = hash
		}
	}
	if in.Role != nil {
		if !ValidRole(*in.Role) {
			fields["role"] = "Invalid role"
		} else {
			u.Role = *in.Role
		}
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}

	if len(fields) > 0 {
		return domain.ValidationError{Msg: "Validation Error", Fields: fields}
	}
	return nil
}

// HashPassword validates and hashes a replacement password on profile update.
func HashPassword(password string) (string, error) {
	if len(password) < 8 || len(password) > 25 {
		return "", domain.NewFieldError("password", "Password must be between 8 and 25 characters long")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.InternalError{Msg: "Error saving password", Err: err}
	}
	return string(hash), nil
}

func (u User) VerifyPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// Age returns the user's age in whole years at the given instant.
func (u User) Age(now time.Time) int {
	years := now.Year() - u.Birthdate.Year()
	if now.YearDay() < u.Birthdate.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func validateName(name, label string) string {
	switch {
	case name == "":
		return label + " is required"
	case len(name) < 2:
		return label + " must be at least 2 characters long"
	case len(name) > 20:
		return label + " must be at most 20 characters long"
	case !nameRe.MatchString(name):
		return "Name can only contain letters"
	}
	return ""
}
