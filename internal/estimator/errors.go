package estimator

import (
	"errors"
	"fmt"
)

var (
	ErrSchemaMismatch = errors.New("schema mismatch")
	ErrNotReady       = errors.New("estimator is not ready")
)

// SchemaMismatchError reports a feature vector whose fields differ from the
// ones the estimator was trained on.
type SchemaMismatchError struct {
	Expected []string
	Got      []string
}

func (e *SchemaMismatchError) Error() string {
	if len(e.Expected) != len(e.Got) {
		return fmt.Sprintf("schema mismatch: expected %d fields, got %d", len(e.Expected), len(e.Got))
	}
	for i := range e.Expected {
		if e.Expected[i] != e.Got[i] {
			return fmt.Sprintf("schema mismatch: field %d is %q, expected %q", i, e.Got[i], e.Expected[i])
		}
	}
	return "schema mismatch"
}

func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}
