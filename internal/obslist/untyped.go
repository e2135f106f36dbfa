package obslist

import (
	"reflect"
)

// AddAny is the untyped version of Add.
func (l *List[T]) AddAny(value any) error {
	item, err := l.assertItem(value)
	if err != nil {
		return err
	}
	l.Add(item)
	return nil
}

// InsertAny is the untyped version of Insert.
func (l *List[T]) InsertAny(index int, value any) error {
	item, err := l.assertItem(value)
	if err != nil {
		return err
	}
	return l.Insert(index, item)
}

// SetAny is the untyped version of Set.
func (l *List[T]) SetAny(index int, value any) error {
	item, err := l.assertItem(value)
	if err != nil {
		return err
	}
	return l.Set(index, item)
}

// IndexOfAny returns -1 if value is not a T.
func (l *List[T]) IndexOfAny(value any) int {
	item, ok := value.(T)
	if !ok {
		return -1
	}
	return l.IndexOf(item)
}

func (l *List[T]) ContainsAny(value any) bool {
	return l.IndexOfAny(value) >= 0
}

// RemoveAny returns false if value is not a T.
func (l *List[T]) RemoveAny(value any) bool {
	item, ok := value.(T)
	if !ok {
		return false
	}
	return l.Remove(item)
}

func (l *List[T]) assertItem(value any) (T, error) {
	item, ok := value.(T)
	if ok {
		return item, nil
	}

	//a nil value is accepted by element types that have nil as their zero value.
	if value == nil {
		var zero T
		switch reflect.ValueOf(&zero).Elem().Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Chan:
			return zero, nil
		}
	}

	var zero T
	return zero, &TypeMismatchError{
		Value:       value,
		ElementType: reflect.TypeOf((*T)(nil)).Elem(),
		ParamName:   TYPE_MISMATCH_PARAM_NAME,
	}
}
