// Package store persists cases, variants, genes, panels and events.
package store

import (
	"fmt"
	"strings"
)

// IntegrityError signals a uniqueness violation, such as creating a
// case that already exists or a duplicate key in a bulk insert.
type IntegrityError struct {
	Message string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity error: %s", e.Message)
}

// DataNotFoundError signals a lookup of a document that does not
// exist, such as attaching a report to an unknown case.
type DataNotFoundError struct {
	Kind string
	ID   string
}

func (e *DataNotFoundError) Error() string {
	return fmt.Sprintf("%s %q does not exist", e.Kind, e.ID)
}

// ValidationError signals an attempt to overwrite existing data
// without the explicit update flag.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// isDuplicateKey reports whether err is a uniqueness violation from
// the SQLite driver.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed")
}
