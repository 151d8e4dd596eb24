package shuffle

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange matches every *IndexOutOfRangeError.
	ErrIndexOutOfRange = errors.New("shuffle: index out of range")
	// ErrDuplicateMapping matches every *DuplicateMappingError.
	ErrDuplicateMapping = errors.New("shuffle: duplicate mapping")
)

// IndexOutOfRangeError reports an element whose image falls outside [0, N).
type IndexOutOfRangeError struct {
	Element int64
	Value   int64
	N       int64
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("id of element %d: %d out of range [0;%d)", e.Element, e.Value, e.N)
}

func (e *IndexOutOfRangeError) Unwrap() error { return ErrIndexOutOfRange }

// DuplicateMappingError reports two elements sharing the same image.
// ElementA is the earlier of the two.
type DuplicateMappingError struct {
	ElementA int64
	ElementB int64
	Value    int64
}

func (e *DuplicateMappingError) Error() string {
	return fmt.Sprintf("id of element %d: %d already used by element: %d", e.ElementB, e.Value, e.ElementA)
}

func (e *DuplicateMappingError) Unwrap() error { return ErrDuplicateMapping }
