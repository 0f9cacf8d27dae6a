package domain

import "fmt"

// IntegrityError signals a violated data invariant (duplicate ids, matrix
// rows not found, alignment mismatch after a trim step). It aborts the run;
// there is no partial-failure recovery anywhere in the pipeline.
type IntegrityError struct {
	// Check names the invariant that failed, e.g. "matrix/row-alignment".
	Check string
	// Entity identifies the offending row, column, or artifact.
	Entity string
	Detail string
}

func (e *IntegrityError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("data integrity: check %s failed on %s", e.Check, e.Entity)
	}
	return fmt.Sprintf("data integrity: check %s failed on %s: %s", e.Check, e.Entity, e.Detail)
}

// Integrity builds an IntegrityError.
func Integrity(check, entity, format string, args ...any) error {
	return &IntegrityError{Check: check, Entity: entity, Detail: fmt.Sprintf(format, args...)}
}
