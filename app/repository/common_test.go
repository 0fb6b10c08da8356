package repository

import (
	"errors"
	"testing"

	mysqlDriver "github.com/go-sql-driver/mysql"
)

func TestSerializeStrings(t *testing.T) {
	raw, err := serializeStrings(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if raw != "[]" {
		t.Fatalf("expected empty array, got %s", raw)
	}

	raw, err = serializeStrings([]string{"a", "b"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	values, err := parseStrings(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(values) != 2 || values[0] != "a" || values[1] != "b" {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestParseStringsEmpty(t *testing.T) {
	for _, raw := range []string{"", "null"} {
		values, err := parseStrings(raw)
		if err != nil {
			t.Fatalf("expected no error for %q, got %v", raw, err)
		}
		if values == nil || len(values) != 0 {
			t.Fatalf("expected empty slice for %q, got %v", raw, values)
		}
	}
}

func TestParseStringsInvalid(t *testing.T) {
	if _, err := parseStrings("{"); err == nil {
		t.Fatal("expected error for malformed json")
	}
}

func TestIsDuplicateEntryError(t *testing.T) {
	if !isDuplicateEntryError(&mysqlDriver.MySQLError{Number: 1062}) {
		t.Fatal("expected duplicate entry error")
	}
	if isDuplicateEntryError(&mysqlDriver.MySQLError{Number: 1045}) {
		t.Fatal("expected other mysql errors to be ignored")
	}
	if isDuplicateEntryError(errors.New("boom")) {
		t.Fatal("expected plain errors to be ignored")
	}
}
