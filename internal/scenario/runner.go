package scenario

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/listsync/listsync/internal/listfilter"
	"github.com/listsync/listsync/internal/obslist"
	"github.com/listsync/listsync/internal/utils"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

const (
	SOURCE_ITEMS_LIST_NAME = "items-source"
	RUN_ID_LOG_FIELD_NAME  = "run"
)

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrInconsistentState = errors.New("filtered items are not consistent with the items source")
)

// An ExpectationError is returned when the content of a list differs from the expected one after a step.
type ExpectationError struct {
	Step     int
	List     string
	Expected []int
	Actual   []int
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("step %d: %s list is %v, expected %v", e.Step, e.List, e.Actual, e.Expected)
}

// A Snapshot is the state of the lists after a step, Step is 0 for the initial state.
type Snapshot struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
	Source      []int  `json:"source"`
	Filtered    []int  `json:"filtered"`

	// Passing[i] is true if the i-th source item passes the current predicate.
	Passing    []bool `json:"passing"`
	Attached   bool   `json:"attached"`
	Consistent bool   `json:"consistent"`
}

// A Runner applies the steps of a scenario to a filter.
type Runner struct {
	id       ulid.ULID
	scenario *Scenario
	source   *obslist.List[*Item]
	filter   *listfilter.Filter[*Item]
	logger   zerolog.Logger
}

type RunnerConfig struct {
	// defaults to a disabled logger.
	Logger *zerolog.Logger
}

func NewRunner(scenario *Scenario, config RunnerConfig) (*Runner, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	id := ulid.Make()

	//the lists and the filter log with the run ID too.
	var runLogger *zerolog.Logger
	logger := zerolog.Nop()

	if config.Logger != nil {
		l := config.Logger.With().Str(RUN_ID_LOG_FIELD_NAME, id.String()).Logger()
		runLogger = &l
		logger = l.With().Str(obslist.SOURCE_LOG_FIELD_NAME, "scenario").Logger()
	}

	source := obslist.NewListWithConfig[*Item](obslist.ListConfig{
		Name:   SOURCE_ITEMS_LIST_NAME,
		Logger: runLogger,
	})
	for _, item := range newItems(scenario.Source) {
		source.Add(item)
	}

	filter := listfilter.NewFilterWithConfig[*Item](listfilter.FilterConfig{Logger: runLogger})
	filter.SetFilterFunction(utils.Must(ParsePredicate(scenario.Predicate)))
	filter.SetItemsSource(source)

	return &Runner{
		id:       id,
		scenario: scenario,
		source:   source,
		filter:   filter,
		logger:   logger,
	}, nil
}

// ID returns the identifier of the run, it is added to the logs of the runner.
func (r *Runner) ID() ulid.ULID {
	return r.id
}

func (r *Runner) Filter() *listfilter.Filter[*Item] {
	return r.filter
}

// Run applies the steps in order, ctx is checked before each step. The returned snapshots start
// with the initial state and stop at the first failing step: the failing step has a snapshot if the
// failure is a failed expectation or an inconsistent state.
func (r *Runner) Run(ctx context.Context) (snapshots []Snapshot, finalErr error) {
	defer func() {
		if e := recover(); e != nil {
			finalErr = fmt.Errorf("panic while running scenario: %w", utils.ConvertPanicValueToError(e))
		}
	}()

	snapshots = append(snapshots, r.snapshot(0, "initial state"))

	for i, step := range r.scenario.Steps {
		stepNumber := i + 1

		select {
		case <-ctx.Done():
			return snapshots, ctx.Err()
		default:
		}

		r.logger.Debug().Int("step", stepNumber).Stringer("op", step).Msg("running step")

		if err := r.apply(step); err != nil {
			return snapshots, fmt.Errorf("step %d (%s): %w", stepNumber, step, err)
		}

		snapshot := r.snapshot(stepNumber, step.String())
		snapshots = append(snapshots, snapshot)

		if !snapshot.Consistent {
			return snapshots, fmt.Errorf("step %d (%s): %w", stepNumber, step, ErrInconsistentState)
		}

		if err := checkExpectation(stepNumber, step.Expect, snapshot); err != nil {
			return snapshots, err
		}
	}

	return snapshots, nil
}

func (r *Runner) apply(step Step) error {
	switch step.Op {
	case FILTER_OP:
		r.filter.SetFilterFunction(utils.Must(ParsePredicate(step.Predicate)))
		return nil
	case DETACH_OP:
		r.filter.SetItemsSource(nil)
		return nil
	case ATTACH_OP:
		r.filter.SetItemsSource(r.source)
		return nil
	}

	list := r.source
	if step.List == FILTERED_LIST_NAME {
		list = r.filter.FilteredItems()
	}
	args := step.Args

	switch step.Op {
	case ADD_OP:
		list.Add(&Item{Value: args[0]})
		return nil
	case INSERT_OP:
		return list.Insert(args[0], &Item{Value: args[1]})
	case REMOVE_OP:
		index := slices.IndexFunc(list.Items(), func(item *Item) bool { return item.Value == args[0] })
		if index < 0 {
			return fmt.Errorf("%w: no item has the value %d", ErrItemNotFound, args[0])
		}
		list.Remove(list.At(index))
		return nil
	case REMOVE_AT_OP:
		return list.RemoveAt(args[0])
	case MOVE_OP:
		return list.Move(args[0], args[1])
	case SET_OP:
		return list.Set(args[0], &Item{Value: args[1]})
	case CLEAR_OP:
		list.Clear()
		return nil
	case UPDATE_OP:
		item, err := list.Get(args[0])
		if err != nil {
			return err
		}
		item.Value = args[1]
		return list.ItemUpdateAt(args[0])
	default:
		return fmt.Errorf("%w %q", ErrUnknownOperation, step.Op)
	}
}

func (r *Runner) snapshot(stepNumber int, description string) Snapshot {
	sourceItems := r.source.Items()
	predicate := r.filter.FilterFunction()

	return Snapshot{
		Step:        stepNumber,
		Description: description,
		Source:      itemValues(sourceItems),
		Filtered:    itemValues(r.filter.FilteredItems().Items()),
		Passing: utils.MapSlice(sourceItems, func(item *Item) bool {
			return predicate != nil && predicate(item)
		}),
		Attached:   r.filter.ItemsSource() != nil,
		Consistent: r.filter.Consistent(),
	}
}

func checkExpectation(stepNumber int, expectation *Expectation, snapshot Snapshot) error {
	if expectation == nil {
		return nil
	}

	if expectation.Source != nil && !slices.Equal(expectation.Source, snapshot.Source) {
		return &ExpectationError{
			Step:     stepNumber,
			List:     SOURCE_LIST_NAME,
			Expected: expectation.Source,
			Actual:   snapshot.Source,
		}
	}

	if expectation.Filtered != nil && !slices.Equal(expectation.Filtered, snapshot.Filtered) {
		return &ExpectationError{
			Step:     stepNumber,
			List:     FILTERED_LIST_NAME,
			Expected: expectation.Filtered,
			Actual:   snapshot.Filtered,
		}
	}

	return nil
}
