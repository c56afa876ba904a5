package models

import (
	"strings"

	"github.com/stevenadel/iti-events-server/internal/domain"
)

type Driver struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

func NewDriver(name, phoneNumber string) (Driver, error) {
	name = strings.TrimSpace(name)
	phoneNumber = strings.TrimSpace(phoneNumber)

	fields := map[string]string{}
	if name == "" {
		fields["name"] = "Name is required"
	}
	if phoneNumber == "" {
		fields["phoneNumber"] = "Phone number is required"
	}
	if len(fields) > 0 {
		return Driver{}, domain.ValidationError{Msg: "Validation Error", Fields: fields}
	}

	return Driver{Name: name, PhoneNumber: phoneNumber}, nil
}
