package obslist

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrTypeMismatch    = errors.New("type mismatch")
)

const (
	TYPE_MISMATCH_PARAM_NAME = "value"
)

// A TypeMismatchError is returned by the untyped entry points of List when the passed value
// is not of the element type.
type TypeMismatchError struct {
	Value       any
	ElementType reflect.Type
	ParamName   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("The value \"%v\" is not of type \"%s\" and cannot be used in this generic collection.\nParameter name: %s",
		e.Value, e.ElementType, e.ParamName)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

func fmtIndexOutOfRange(index int, length int) error {
	return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, length)
}
