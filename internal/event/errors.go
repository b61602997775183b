package event

import (
	"errors"
	"fmt"
)

// ValidationError marks a listing item that cannot become a calendar entry,
// as opposed to infrastructure failures. Callers catch it per item so one bad
// item does not abort a batch.
type ValidationError struct {
	ItemID string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("invalid listing item %s: %s", e.ItemID, e.Reason)
	}
	return "invalid listing item: " + e.Reason
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
