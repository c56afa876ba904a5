package db

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestIsDuplicateEntry(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	if !IsDuplicateEntry(dup) {
		t.Fatalf("1062 must be recognized as duplicate")
	}
	other := &mysql.MySQLError{Number: 1452, Message: "FK fails"}
	if IsDuplicateEntry(other) {
		t.Fatalf("non-1062 must not be duplicate")
	}
	if IsDuplicateEntry(errors.New("plain")) {
		t.Fatalf("plain errors must not be duplicate")
	}
}

func TestStringPtr(t *testing.T) {
	if StringPtr(sql.NullString{}) != nil {
		t.Fatalf("invalid NullString must map to nil")
	}
	got := StringPtr(sql.NullString{String: "x", Valid: true})
	if got == nil || *got != "x" {
		t.Fatalf("valid NullString must round-trip")
	}
}
