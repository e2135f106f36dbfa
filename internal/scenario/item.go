package scenario

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/listsync/listsync/internal/listfilter"
	"github.com/listsync/listsync/internal/utils"
)

const (
	ALL_PREDICATE_NAME  = "all"
	NONE_PREDICATE_NAME = "none"
	EVEN_PREDICATE_NAME = "even"
	ODD_PREDICATE_NAME  = "odd"

	//parametrized predicates
	GT_PREDICATE_NAME  = "gt"  //gt:N
	LT_PREDICATE_NAME  = "lt"  //lt:N
	MOD_PREDICATE_NAME = "mod" //mod:N:R

	PREDICATE_PARAM_SEPARATOR = ":"
)

var (
	ErrUnknownPredicate = errors.New("unknown predicate")
	ErrInvalidPredicate = errors.New("invalid predicate")

	PREDICATE_NAMES = []string{
		ALL_PREDICATE_NAME, NONE_PREDICATE_NAME, EVEN_PREDICATE_NAME, ODD_PREDICATE_NAME,
		GT_PREDICATE_NAME + ":N", LT_PREDICATE_NAME + ":N", MOD_PREDICATE_NAME + ":N:R",
	}
)

// An Item is a mutable reference item, two items with the same value are distinct items.
type Item struct {
	Value int
}

func (i *Item) String() string {
	return strconv.Itoa(i.Value)
}

func newItems(values []int) []*Item {
	return utils.MapSlice(values, func(v int) *Item { return &Item{Value: v} })
}

func itemValues(items []*Item) []int {
	return utils.MapSlice(items, func(item *Item) int { return item.Value })
}

// ParsePredicate returns the predicate named by s, see PREDICATE_NAMES.
func ParsePredicate(s string) (listfilter.Predicate[*Item], error) {
	name, params, _ := strings.Cut(strings.TrimSpace(s), PREDICATE_PARAM_SEPARATOR)

	var args []int
	if params != "" {
		for _, param := range strings.Split(params, PREDICATE_PARAM_SEPARATOR) {
			arg, err := strconv.Atoi(param)
			if err != nil {
				return nil, fmt.Errorf("%w %q: %q is not an integer", ErrInvalidPredicate, s, param)
			}
			args = append(args, arg)
		}
	}

	expectArgs := func(count int) error {
		if len(args) != count {
			return fmt.Errorf("%w %q: %d parameter(s) expected", ErrInvalidPredicate, s, count)
		}
		return nil
	}

	switch name {
	case ALL_PREDICATE_NAME:
		if err := expectArgs(0); err != nil {
			return nil, err
		}
		return listfilter.AllPass[*Item], nil
	case NONE_PREDICATE_NAME:
		if err := expectArgs(0); err != nil {
			return nil, err
		}
		return func(*Item) bool { return false }, nil
	case EVEN_PREDICATE_NAME:
		if err := expectArgs(0); err != nil {
			return nil, err
		}
		return func(item *Item) bool { return item.Value%2 == 0 }, nil
	case ODD_PREDICATE_NAME:
		if err := expectArgs(0); err != nil {
			return nil, err
		}
		return func(item *Item) bool { return item.Value%2 != 0 }, nil
	case GT_PREDICATE_NAME:
		if err := expectArgs(1); err != nil {
			return nil, err
		}
		n := args[0]
		return func(item *Item) bool { return item.Value > n }, nil
	case LT_PREDICATE_NAME:
		if err := expectArgs(1); err != nil {
			return nil, err
		}
		n := args[0]
		return func(item *Item) bool { return item.Value < n }, nil
	case MOD_PREDICATE_NAME:
		if err := expectArgs(2); err != nil {
			return nil, err
		}
		n, r := args[0], args[1]
		if n == 0 {
			return nil, fmt.Errorf("%w %q: the modulus should not be zero", ErrInvalidPredicate, s)
		}
		return func(item *Item) bool { return utils.Abs(item.Value%n) == utils.Abs(r) }, nil
	default:
		return nil, fmt.Errorf("%w %q, known predicates are: %s", ErrUnknownPredicate, s, strings.Join(PREDICATE_NAMES, ", "))
	}
}
