package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

const (
	SOURCE_LIST_NAME   = "source"
	FILTERED_LIST_NAME = "filtered"

	DEFAULT_PREDICATE = ALL_PREDICATE_NAME
)

// operations on a list
const (
	ADD_OP       = "add"       //add [value]
	INSERT_OP    = "insert"    //insert [index, value]
	REMOVE_OP    = "remove"    //remove [value], removes the first item having the value
	REMOVE_AT_OP = "remove-at" //remove-at [index]
	MOVE_OP      = "move"      //move [old index, new index]
	SET_OP       = "set"       //set [index, value]
	CLEAR_OP     = "clear"     //clear []
	UPDATE_OP    = "update"    //update [index, value], mutates the item then signals the update
)

// operations on the filter
const (
	FILTER_OP = "filter" //sets the filter function to the step's predicate
	DETACH_OP = "detach" //sets ItemsSource to nil
	ATTACH_OP = "attach" //sets ItemsSource back to the scenario's source
)

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrInvalidStep      = errors.New("invalid step")

	LIST_OP_ARG_COUNTS = map[string]int{
		ADD_OP:       1,
		INSERT_OP:    2,
		REMOVE_OP:    1,
		REMOVE_AT_OP: 1,
		MOVE_OP:      2,
		SET_OP:       2,
		CLEAR_OP:     0,
		UPDATE_OP:    2,
	}

	FILTER_OPS = []string{FILTER_OP, DETACH_OP, ATTACH_OP}
)

// A Scenario describes an initial items source, a predicate and a sequence of steps
// applied to the source or to the filtered items.
type Scenario struct {
	Name      string `yaml:"name"`
	Source    []int  `yaml:"source"`
	Predicate string `yaml:"predicate"`
	Steps     []Step `yaml:"steps"`
}

type Step struct {
	List      string       `yaml:"list"`
	Op        string       `yaml:"op"`
	Args      []int        `yaml:"args"`
	Predicate string       `yaml:"predicate"`
	Expect    *Expectation `yaml:"expect"`
}

// Expectation is the expected content of the lists after a step, a nil slice is not checked.
type Expectation struct {
	Source   []int `yaml:"source"`
	Filtered []int `yaml:"filtered"`
}

func (s Step) String() string {
	switch s.Op {
	case FILTER_OP:
		return FILTER_OP + " " + s.Predicate
	case DETACH_OP, ATTACH_OP:
		return s.Op
	}

	args := make([]string, len(s.Args))
	for i, arg := range s.Args {
		args[i] = fmt.Sprint(arg)
	}
	return strings.TrimSpace(s.Op+" "+strings.Join(args, " ")) + " on " + s.List
}

func (s Step) isListOperation() bool {
	_, ok := LIST_OP_ARG_COUNTS[s.Op]
	return ok
}

// Load reads a YAML scenario and checks its steps.
func Load(r io.Reader) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.NewDecoder(r, yaml.Strict()).Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}

	if scenario.Predicate == "" {
		scenario.Predicate = DEFAULT_PREDICATE
	}

	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scenario, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if scenario.Name == "" {
		scenario.Name = path
	}
	return scenario, nil
}

func (s *Scenario) Validate() error {
	if _, err := ParsePredicate(s.Predicate); err != nil {
		return err
	}

	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (s Step) validate() error {
	switch {
	case s.isListOperation():
		if s.List != SOURCE_LIST_NAME && s.List != FILTERED_LIST_NAME {
			return fmt.Errorf("%w: the list should be %q or %q, not %q", ErrInvalidStep, SOURCE_LIST_NAME, FILTERED_LIST_NAME, s.List)
		}
		if expected := LIST_OP_ARG_COUNTS[s.Op]; len(s.Args) != expected {
			return fmt.Errorf("%w: %s expects %d argument(s) but got %d", ErrInvalidStep, s.Op, expected, len(s.Args))
		}
		if s.Predicate != "" {
			return fmt.Errorf("%w: a predicate is only allowed for the %s operation", ErrInvalidStep, FILTER_OP)
		}
	case slices.Contains(FILTER_OPS, s.Op):
		if s.List != "" || len(s.Args) != 0 {
			return fmt.Errorf("%w: %s does not accept a list or arguments", ErrInvalidStep, s.Op)
		}
		if s.Op == FILTER_OP {
			if _, err := ParsePredicate(s.Predicate); err != nil {
				return err
			}
		} else if s.Predicate != "" {
			return fmt.Errorf("%w: a predicate is only allowed for the %s operation", ErrInvalidStep, FILTER_OP)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownOperation, s.Op)
	}
	return nil
}
